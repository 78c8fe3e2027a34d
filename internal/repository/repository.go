// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
//
// Every lookup or mutation of tenant data takes the owner identity as an
// explicit argument and applies it in the query itself. No method accepts a
// bare resource ID for tenant-owned rows. A row that exists but belongs to
// another owner is reported exactly like a missing row: sql.ErrNoRows.
package repository

import "errors"

// ErrDuplicateKey is returned when an insert violates a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
