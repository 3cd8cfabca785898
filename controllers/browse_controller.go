package controllers

import (
	"net/http"
	"strconv"

	"techshop/models"
	"techshop/services"

	"github.com/gin-gonic/gin"
)

type BrowseController struct {
	Sessions *services.BrowseService
}

func sessionView(s *services.BrowseSession, result models.QueryResult, pending bool) gin.H {
	return gin.H{
		"session_id":     s.ID,
		"spec":           s.Spec(),
		"products":       result.Products,
		"total":          result.Total,
		"active_filters": result.ActiveFilters,
		"pending":        pending,
	}
}

// @Summary Create browse session
// @Description Start a browse session with the default query
// @Tags Browse
// @Produce json
// @Success 201 {object} models.Response
// @Router /browse/sessions [post]
func (ctrl *BrowseController) CreateSession(c *gin.Context) {
	session := ctrl.Sessions.Create()
	result, pending := session.Result()
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Browse session created", "data": sessionView(session, result, pending)})
}

// @Summary Get browse session
// @Description Get the session query and its last computed products. refresh=true recomputes now.
// @Tags Browse
// @Produce json
// @Param id path string true "Session ID"
// @Param refresh query bool false "Recompute immediately"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /browse/sessions/{id} [get]
func (ctrl *BrowseController) GetSession(c *gin.Context) {
	session, err := ctrl.Sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, "Failed to get browse session", err)
		return
	}

	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))
	var (
		result  models.QueryResult
		pending bool
	)
	if refresh {
		result = session.Refresh()
	} else {
		result, pending = session.Result()
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Browse session retrieved", "data": sessionView(session, result, pending)})
}

// @Summary Update browse session
// @Description Change search, filters or sort. Products are recomputed after the debounce delay.
// @Tags Browse
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body models.QuerySpecPatch true "Query changes"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /browse/sessions/{id} [patch]
func (ctrl *BrowseController) UpdateSession(c *gin.Context) {
	var patch models.QuerySpecPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	session, err := ctrl.Sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, "Failed to update browse session", err)
		return
	}

	session.Update(patch)
	result, pending := session.Result()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Browse session updated", "data": sessionView(session, result, pending)})
}

// @Summary Navigate to category
// @Description Select a category from the navigation menu
// @Tags Browse
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body models.NavigateRequest true "Category"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /browse/sessions/{id}/navigate [post]
func (ctrl *BrowseController) Navigate(c *gin.Context) {
	var req models.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	session, err := ctrl.Sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, "Failed to navigate", err)
		return
	}

	session.OnCategorySelected(req.Category)
	result, pending := session.Result()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category selected", "data": sessionView(session, result, pending)})
}

// @Summary Close browse session
// @Tags Browse
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /browse/sessions/{id} [delete]
func (ctrl *BrowseController) CloseSession(c *gin.Context) {
	if err := ctrl.Sessions.Close(c.Param("id")); err != nil {
		respondError(c, "Failed to close browse session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Browse session closed"})
}
