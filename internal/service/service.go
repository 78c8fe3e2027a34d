// Package service implements the portal use cases on top of the repositories
// and the object store.
//
// Every tenant-facing method takes the verified caller as its first argument
// after the context and applies caller.AccountID as the ownership filter or
// stamp itself. Identity is never read from input structs. Errors leaving this
// package wrap one of the apperr kinds.
package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bizportal/internal/apperr"
	"bizportal/internal/auth"
	"bizportal/internal/model"
	"bizportal/internal/repository"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ListResult is the service-level DTO for paginated collections.
type ListResult[T any] struct {
	Items  []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func pageQuery(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

func listResult[T any](res *repository.PageResult[T], pq repository.PageQuery) *ListResult[T] {
	return &ListResult[T]{Items: res.Items, Total: res.Total, Limit: pq.Limit, Offset: pq.Offset}
}

// requireRole re-checks the gate's decision so services stay safe when
// called from somewhere other than a gated route.
func requireRole(caller auth.Principal, role model.Role) error {
	if caller.AccountID == "" {
		return apperr.Unauthenticated("authentication required")
	}
	if caller.Role != role {
		return apperr.Forbidden(fmt.Sprintf("%s role required", role))
	}
	return nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Validation("id is required")
	}
	return nil
}

// notFound maps a missing (or foreign-owned) row to apperr.ErrNotFound and
// passes every other error through unchanged.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(what + " not found")
	}
	return err
}
