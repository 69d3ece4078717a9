package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multimark/motos/internal/domain"
	"github.com/multimark/motos/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeMotoRepo is an in-memory MotoRepository backed by a slice, preserving
// insertion order the way the real repository orders by created_at.
type fakeMotoRepo struct {
	motos   []domain.Moto
	listErr error
	deleted []string
}

func (f *fakeMotoRepo) ListMotos(ctx context.Context, filter repository.MotoFilter) ([]domain.Moto, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Moto
	for _, m := range f.motos {
		if filter.Marca != "" && m.Marca != filter.Marca {
			continue
		}
		if filter.HeroOnly && !m.ShowInHero {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMotoRepo) GetMoto(ctx context.Context, id string) (domain.Moto, error) {
	for _, m := range f.motos {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Moto{}, sql.ErrNoRows
}

func (f *fakeMotoRepo) CreateMoto(ctx context.Context, moto domain.Moto) error {
	f.motos = append(f.motos, moto)
	return nil
}

func (f *fakeMotoRepo) UpdateMoto(ctx context.Context, moto domain.Moto) (int64, error) {
	for i, m := range f.motos {
		if m.ID == moto.ID {
			f.motos[i] = moto
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeMotoRepo) DeleteMoto(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeMotoRepo) DeleteMotosByIDs(ctx context.Context, ids []string) error {
	f.deleted = append(f.deleted, ids...)
	return nil
}

func moto(id, marca, nombre string) domain.Moto {
	return domain.Moto{ID: id, Marca: marca, Nombre: nombre, Tipo: domain.TipoUrbana}
}

func TestList_Search(t *testing.T) {
	repo := &fakeMotoRepo{motos: []domain.Moto{
		moto("motomel-ciclon", "motomel", "Ciclón 125"),
		moto("honda-wave", "honda", "Wave 110"),
		moto("zanella-zb", "zanella", "ZB 110"),
	}}
	svc := NewMotoService(repo, testLogger())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns all", "", []string{"motomel-ciclon", "honda-wave", "zanella-zb"}},
		{"case insensitive", "WAVE", []string{"honda-wave"}},
		{"accent insensitive", "ciclon", []string{"motomel-ciclon"}},
		{"accented query matches plain", "Wáve", []string{"honda-wave"}},
		{"matches marca", "honda", []string{"honda-wave"}},
		{"substring across models", "110", []string{"honda-wave", "zanella-zb"}},
		{"no match", "yamaha", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(context.Background(), MotoFilter{Query: tt.query})
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, m := range got {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestList_RepoError(t *testing.T) {
	repo := &fakeMotoRepo{listErr: errors.New("connection refused")}
	svc := NewMotoService(repo, testLogger())

	_, err := svc.List(context.Background(), MotoFilter{})
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
}

func TestCreate_DerivesID(t *testing.T) {
	repo := &fakeMotoRepo{}
	svc := NewMotoService(repo, testLogger())

	created, err := svc.Create(context.Background(), domain.Moto{
		Nombre: "  Wave 110  ",
		Marca:  " Honda ",
		Tipo:   domain.TipoUrbana,
	})
	require.NoError(t, err)
	assert.Equal(t, "honda-wave-110", created.ID)
	assert.Equal(t, "Wave 110", created.Nombre)
}

func TestCreate_Conflict(t *testing.T) {
	repo := &fakeMotoRepo{motos: []domain.Moto{moto("honda-wave-110", "Honda", "Wave 110")}}
	svc := NewMotoService(repo, testLogger())

	_, err := svc.Create(context.Background(), domain.Moto{
		Nombre: "Wave 110",
		Marca:  "Honda",
		Tipo:   domain.TipoUrbana,
	})
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func TestCreate_Validation(t *testing.T) {
	svc := NewMotoService(&fakeMotoRepo{}, testLogger())

	tests := []struct {
		name string
		moto domain.Moto
	}{
		{"missing nombre", domain.Moto{Marca: "Honda", Tipo: domain.TipoUrbana}},
		{"missing marca", domain.Moto{Nombre: "Wave", Tipo: domain.TipoUrbana}},
		{"bad tipo", domain.Moto{Nombre: "Wave", Marca: "Honda", Tipo: "cruiser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.moto)
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewMotoService(&fakeMotoRepo{}, testLogger())

	_, err := svc.Update(context.Background(), moto("no-such-id", "Honda", "Wave"))
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestCleanupDuplicates_KeepsOldest(t *testing.T) {
	// Slice order is creation order; the oldest of each marca+nombre pair
	// comes first and must survive.
	repo := &fakeMotoRepo{motos: []domain.Moto{
		moto("honda-wave-110", "Honda", "Wave 110"),
		moto("honda-wave-110-copy", "honda", "wave 110"),
		moto("zanella-zb", "Zanella", "ZB"),
		moto("honda-wave-110-copy-2", "HONDA", "WAVE 110"),
	}}
	svc := NewMotoService(repo, testLogger())

	result, err := svc.CleanupDuplicates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, []string{"honda-wave-110-copy", "honda-wave-110-copy-2"}, result.DeletedIDs)
	assert.Equal(t, result.DeletedIDs, repo.deleted)
}

func TestCleanupDuplicates_NoDuplicates(t *testing.T) {
	repo := &fakeMotoRepo{motos: []domain.Moto{
		moto("honda-wave-110", "Honda", "Wave 110"),
		moto("zanella-zb", "Zanella", "ZB"),
	}}
	svc := NewMotoService(repo, testLogger())

	result, err := svc.CleanupDuplicates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Empty(t, result.DeletedIDs)
	assert.Empty(t, repo.deleted)
}
