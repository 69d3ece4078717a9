// Package service contains the business logic layer.
//
// Services orchestrate repositories, the image store and domain logic:
// input validation, rule enforcement and error translation (database
// errors -> domain errors).
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/multimark/motos/internal/domain"
	"github.com/multimark/motos/internal/repository"
)

// MotoFilter narrows catalog listings.
type MotoFilter struct {
	// Marca restricts results to a single brand.
	Marca string

	// Query is a free-text search over marca and nombre. Matching is a
	// linear substring scan, case- and accent-insensitive.
	Query string

	// HeroOnly restricts results to models flagged for the hero carousel.
	HeroOnly bool
}

// CleanupResult summarizes a duplicate-removal pass.
type CleanupResult struct {
	Total      int      `json:"totalMotos"`
	DeletedIDs []string `json:"deletedIds"`
}

// MotoService defines catalog inventory operations.
type MotoService interface {
	// List returns catalog entries matching the filter.
	List(ctx context.Context, filter MotoFilter) ([]domain.Moto, error)

	// Create validates and stores a new entry, deriving the ID from
	// marca and nombre when absent. Returns domain.ECONFLICT when the
	// ID is already taken.
	Create(ctx context.Context, moto domain.Moto) (domain.Moto, error)

	// Update replaces an existing entry. Returns domain.ENOTFOUND when
	// the ID does not exist.
	Update(ctx context.Context, moto domain.Moto) (domain.Moto, error)

	// Delete removes an entry. Idempotent.
	Delete(ctx context.Context, id string) error

	// CleanupDuplicates removes entries sharing marca+nombre with an
	// older entry, keeping the oldest of each group.
	CleanupDuplicates(ctx context.Context) (*CleanupResult, error)
}

// MotoRepository is the persistence surface MotoService needs.
type MotoRepository interface {
	ListMotos(ctx context.Context, filter repository.MotoFilter) ([]domain.Moto, error)
	GetMoto(ctx context.Context, id string) (domain.Moto, error)
	CreateMoto(ctx context.Context, moto domain.Moto) error
	UpdateMoto(ctx context.Context, moto domain.Moto) (int64, error)
	DeleteMoto(ctx context.Context, id string) error
	DeleteMotosByIDs(ctx context.Context, ids []string) error
}

type motoService struct {
	repo   MotoRepository
	logger *slog.Logger
}

// NewMotoService creates a MotoService.
func NewMotoService(repo MotoRepository, logger *slog.Logger) MotoService {
	return &motoService{repo: repo, logger: logger}
}

func (s *motoService) List(ctx context.Context, filter MotoFilter) ([]domain.Moto, error) {
	const op = "MotoService.List"

	motos, err := s.repo.ListMotos(ctx, repository.MotoFilter{
		Marca:    strings.ToLower(strings.TrimSpace(filter.Marca)),
		HeroOnly: filter.HeroOnly,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to list motos")
	}

	query := searchNormalize(filter.Query)
	if query == "" {
		return motos, nil
	}

	// Search is a plain scan over the already-fetched rows. The catalog
	// is small; no index needed.
	matched := make([]domain.Moto, 0, len(motos))
	for _, moto := range motos {
		if strings.Contains(searchNormalize(moto.Marca), query) ||
			strings.Contains(searchNormalize(moto.Nombre), query) {
			matched = append(matched, moto)
		}
	}
	return matched, nil
}

func (s *motoService) Create(ctx context.Context, moto domain.Moto) (domain.Moto, error) {
	const op = "MotoService.Create"

	moto.Nombre = strings.TrimSpace(moto.Nombre)
	moto.Marca = strings.TrimSpace(moto.Marca)

	if err := moto.Validate(); err != nil {
		return domain.Moto{}, err
	}

	if moto.ID == "" {
		moto.ID = moto.DefaultID()
	}

	if _, err := s.repo.GetMoto(ctx, moto.ID); err == nil {
		return domain.Moto{}, domain.Conflict(op, "A moto with this ID already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return domain.Moto{}, domain.Internal(err, op, "Failed to check moto ID")
	}

	if err := s.repo.CreateMoto(ctx, moto); err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return domain.Moto{}, domain.Conflict(op, "A moto with this ID already exists")
		}
		return domain.Moto{}, domain.Internal(err, op, "Failed to create moto")
	}

	s.logger.Info("moto created", "id", moto.ID, "marca", moto.Marca)

	return moto, nil
}

func (s *motoService) Update(ctx context.Context, moto domain.Moto) (domain.Moto, error) {
	const op = "MotoService.Update"

	if moto.ID == "" {
		return domain.Moto{}, domain.Invalid(op, "ID is required")
	}
	if err := moto.Validate(); err != nil {
		return domain.Moto{}, err
	}

	affected, err := s.repo.UpdateMoto(ctx, moto)
	if err != nil {
		return domain.Moto{}, domain.Internal(err, op, "Failed to update moto")
	}
	if affected == 0 {
		return domain.Moto{}, domain.NotFound(op, "Moto", moto.ID)
	}

	s.logger.Info("moto updated", "id", moto.ID)

	return moto, nil
}

func (s *motoService) Delete(ctx context.Context, id string) error {
	const op = "MotoService.Delete"

	if id == "" {
		return domain.Invalid(op, "ID required")
	}

	if err := s.repo.DeleteMoto(ctx, id); err != nil {
		return domain.Internal(err, op, "Failed to delete moto")
	}

	s.logger.Info("moto deleted", "id", id)

	return nil
}

// CleanupDuplicates scans the catalog oldest-first and deletes every entry
// whose marca+nombre key was already seen, so the oldest record of each
// model survives.
func (s *motoService) CleanupDuplicates(ctx context.Context) (*CleanupResult, error) {
	const op = "MotoService.CleanupDuplicates"

	motos, err := s.repo.ListMotos(ctx, repository.MotoFilter{})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to list motos")
	}

	seen := make(map[string]bool, len(motos))
	var duplicates []string
	for _, moto := range motos {
		key := moto.DuplicateKey()
		if seen[key] {
			duplicates = append(duplicates, moto.ID)
			continue
		}
		seen[key] = true
	}

	if len(duplicates) > 0 {
		if err := s.repo.DeleteMotosByIDs(ctx, duplicates); err != nil {
			return nil, domain.Internal(err, op, "Failed to delete duplicates")
		}
		s.logger.Info("duplicate motos removed", "count", len(duplicates))
	}

	return &CleanupResult{Total: len(motos), DeletedIDs: duplicates}, nil
}

// stripAccents removes combining marks so "Ciclón" matches "ciclon".
var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// searchNormalize lowercases and de-accents a search term.
func searchNormalize(s string) string {
	normalized, _, err := transform.String(stripAccents, strings.TrimSpace(s))
	if err != nil {
		normalized = s
	}
	return strings.ToLower(normalized)
}
