// Package repository implements persistence for the catalog on PostgreSQL.
//
// Queries are built with squirrel and scanned with sqlx. The repository
// translates rows to domain types; database errors are returned as-is and
// mapped to domain errors in the service layer.
package repository

import (
	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repository bundles all database access.
type Repository struct {
	db *sqlx.DB
}

// New creates a Repository over an open database handle.
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}
