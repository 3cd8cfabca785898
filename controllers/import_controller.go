package controllers

import (
	"bytes"
	"net/http"

	"techshop/models"
	"techshop/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ImportController struct {
	Import *services.ImportService
}

// @Summary Download import template
// @Tags Admin - Import
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /admin/import/template [get]
func (ctrl *ImportController) Template(c *gin.Context) {
	var buf bytes.Buffer
	if err := services.WriteTemplate(&buf); err != nil {
		respondError(c, "Failed to build template", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+services.TemplateFilename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// @Summary Preview import
// @Description Map the first sheet of an .xlsx or .csv file to products without saving them
// @Tags Admin - Import
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet"
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/import/preview [post]
func (ctrl *ImportController) Preview(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "File is required", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, "Failed to read file", err)
		return
	}
	defer file.Close()

	products, err := ctrl.Import.Preview(fileHeader.Filename, file)
	if err != nil {
		badRequest(c, "Failed to parse file", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Preview ready", "data": products, "total": len(products)})
}

// @Summary Import products
// @Description Append a confirmed preview list to the catalog
// @Tags Admin - Import
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ImportRequest true "Products"
// @Success 201 {object} models.ListResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/import [post]
func (ctrl *ImportController) Commit(c *gin.Context) {
	var req models.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	imported, err := ctrl.Import.Commit(c.Request.Context(), req.Products)
	if err != nil {
		respondError(c, "Failed to import products", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Products imported", "data": imported, "total": len(imported)})
}
