package services

import (
	"context"
	"sync"
	"time"

	"techshop/models"
	"techshop/utils"

	"github.com/google/uuid"
)

// BrowseSession owns one shopper's query specification and the product list derived from it.
// Spec changes are debounced; the visible result is recomputed once input settles.
type BrowseSession struct {
	ID string

	mu        sync.RWMutex
	source    ProductSource
	spec      models.QuerySpec
	result    models.QueryResult
	debouncer *utils.Debouncer
	lastSeen  time.Time
}

func NewBrowseSession(id string, source ProductSource, debounce time.Duration) *BrowseSession {
	s := &BrowseSession{
		ID:        id,
		source:    source,
		spec:      models.DefaultQuerySpec(),
		debouncer: utils.NewDebouncer(debounce),
		lastSeen:  time.Now(),
	}
	s.recompute()
	return s
}

func (s *BrowseSession) recompute() {
	s.mu.RLock()
	spec := s.spec
	s.mu.RUnlock()

	result := RunQuery(s.source.Products(), spec)

	s.mu.Lock()
	if s.spec == spec {
		s.result = result
	}
	s.mu.Unlock()
}

func (s *BrowseSession) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *BrowseSession) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}

// Spec returns the current query specification.
func (s *BrowseSession) Spec() models.QuerySpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spec
}

// Update applies patch and schedules a recomputation.
func (s *BrowseSession) Update(patch models.QuerySpecPatch) models.QuerySpec {
	s.mu.Lock()
	if patch.Reset {
		search := s.spec.Search
		s.spec = models.DefaultQuerySpec()
		s.spec.Search = search
	}
	if patch.Search != nil {
		s.spec.Search = *patch.Search
	}
	if patch.Category != nil {
		s.spec.Category = *patch.Category
	}
	if patch.Brand != nil {
		s.spec.Brand = *patch.Brand
	}
	if patch.Sort != nil {
		s.spec.Sort = *patch.Sort
	}
	if patch.MinPrice != nil {
		s.spec.MinPrice = *patch.MinPrice
	}
	if patch.MaxPrice != nil {
		s.spec.MaxPrice = *patch.MaxPrice
	}
	s.spec = s.spec.Normalize()
	s.lastSeen = time.Now()
	spec := s.spec
	s.mu.Unlock()

	s.debouncer.Trigger(s.recompute)
	return spec
}

// OnCategorySelected is the callback handed to category navigation.
func (s *BrowseSession) OnCategorySelected(category string) {
	s.Update(models.QuerySpecPatch{Category: &category})
}

// Result returns the last computed result and whether a recomputation is still pending.
func (s *BrowseSession) Result() (models.QueryResult, bool) {
	pending := s.debouncer.Pending()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result, pending
}

// Refresh cancels any pending recomputation and recomputes now.
func (s *BrowseSession) Refresh() models.QueryResult {
	s.debouncer.Cancel()
	s.recompute()
	result, _ := s.Result()
	return result
}

// SourceChanged schedules a recomputation of the current spec against fresh products.
func (s *BrowseSession) SourceChanged() {
	s.debouncer.Trigger(s.recompute)
}

func (s *BrowseSession) Close() {
	s.debouncer.Cancel()
}

// BrowseService keeps the live browse sessions and drops the ones left idle.
type BrowseService struct {
	mu       sync.Mutex
	source   ProductSource
	debounce time.Duration
	idleTTL  time.Duration
	sessions map[string]*BrowseSession
}

func NewBrowseService(source ProductSource, debounce, idleTTL time.Duration) *BrowseService {
	return &BrowseService{
		source:   source,
		debounce: debounce,
		idleTTL:  idleTTL,
		sessions: make(map[string]*BrowseSession),
	}
}

func (s *BrowseService) Create() *BrowseSession {
	// Built before taking s.mu: catalog changes notify sessions while holding the catalog lock.
	session := NewBrowseSession(uuid.NewString(), s.source, s.debounce)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictIdle()
	s.sessions[session.ID] = session
	return session
}

func (s *BrowseService) Get(id string) (*BrowseSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.touch()
	return session, nil
}

func (s *BrowseService) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.Close()
	delete(s.sessions, id)
	return nil
}

// CatalogChanged is a CatalogChangeFunc that reschedules every live session.
func (s *BrowseService) CatalogChanged(ctx context.Context, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, session := range s.sessions {
		session.SourceChanged()
	}
}

func (s *BrowseService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *BrowseService) evictIdle() {
	if s.idleTTL <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.idleTTL)
	for id, session := range s.sessions {
		if session.idleSince().Before(cutoff) {
			session.Close()
			delete(s.sessions, id)
		}
	}
}
