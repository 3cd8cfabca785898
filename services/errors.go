package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid or expired admin session")
	ErrSessionNotFound = errors.New("browse session not found")
	ErrImportFormat    = errors.New("file must contain at least a header row and one data row")
	ErrEmptyImport     = errors.New("no products to import")
)

// ValidationError lists the fields that blocked a product form submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
