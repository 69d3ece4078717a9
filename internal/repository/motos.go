package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/multimark/motos/internal/domain"
)

// motoRow mirrors the motos table. Specs columns are flattened in the table
// and folded back into the domain struct on scan.
type motoRow struct {
	ID                 string    `db:"id"`
	Nombre             string    `db:"nombre"`
	Marca              string    `db:"marca"`
	Tipo               string    `db:"tipo"`
	Imagen             string    `db:"imagen"`
	CloudinaryPublicID string    `db:"cloudinary_public_id"`
	Cilindrada         string    `db:"cilindrada"`
	Motor              string    `db:"motor"`
	Frenos             string    `db:"frenos"`
	Arranque           string    `db:"arranque"`
	CapacidadTanque    string    `db:"capacidad_tanque"`
	Destacada          bool      `db:"destacada"`
	ShowInHero         bool      `db:"show_in_hero"`
	CreatedAt          time.Time `db:"created_at"`
}

var motoColumns = []string{
	"id", "nombre", "marca", "tipo", "imagen", "cloudinary_public_id",
	"cilindrada", "motor", "frenos", "arranque", "capacidad_tanque",
	"destacada", "show_in_hero", "created_at",
}

func (r motoRow) toDomain() domain.Moto {
	return domain.Moto{
		ID:                 r.ID,
		Nombre:             r.Nombre,
		Marca:              r.Marca,
		Tipo:               domain.MotoTipo(r.Tipo),
		Imagen:             r.Imagen,
		CloudinaryPublicID: r.CloudinaryPublicID,
		Specs: domain.MotoSpecs{
			Cilindrada:      r.Cilindrada,
			Motor:           r.Motor,
			Frenos:          r.Frenos,
			Arranque:        r.Arranque,
			CapacidadTanque: r.CapacidadTanque,
		},
		Destacada:  r.Destacada,
		ShowInHero: r.ShowInHero,
		CreatedAt:  r.CreatedAt,
	}
}

// MotoFilter narrows ListMotos. Zero values mean "no filter".
type MotoFilter struct {
	Marca    string
	HeroOnly bool
}

// ListMotos returns catalog entries matching the filter, oldest first so
// duplicate cleanup can keep the earliest record.
func (r *Repository) ListMotos(ctx context.Context, filter MotoFilter) ([]domain.Moto, error) {
	q := psql.Select(motoColumns...).
		From("motos").
		OrderBy("created_at ASC")

	if filter.Marca != "" {
		q = q.Where(squirrel.Eq{"marca": filter.Marca})
	}
	if filter.HeroOnly {
		q = q.Where(squirrel.Eq{"show_in_hero": true})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []motoRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	motos := make([]domain.Moto, 0, len(rows))
	for _, row := range rows {
		motos = append(motos, row.toDomain())
	}
	return motos, nil
}

// GetMoto returns a single catalog entry. sql.ErrNoRows when absent.
func (r *Repository) GetMoto(ctx context.Context, id string) (domain.Moto, error) {
	query, args, err := psql.Select(motoColumns...).
		From("motos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Moto{}, err
	}

	var row motoRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return domain.Moto{}, err
	}
	return row.toDomain(), nil
}

// CreateMoto inserts a new catalog entry.
func (r *Repository) CreateMoto(ctx context.Context, moto domain.Moto) error {
	query, args, err := psql.Insert("motos").
		Columns("id", "nombre", "marca", "tipo", "imagen", "cloudinary_public_id",
			"cilindrada", "motor", "frenos", "arranque", "capacidad_tanque",
			"destacada", "show_in_hero").
		Values(moto.ID, moto.Nombre, moto.Marca, string(moto.Tipo), moto.Imagen, moto.CloudinaryPublicID,
			moto.Specs.Cilindrada, moto.Specs.Motor, moto.Specs.Frenos, moto.Specs.Arranque, moto.Specs.CapacidadTanque,
			moto.Destacada, moto.ShowInHero).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// UpdateMoto replaces a catalog entry. Returns the number of rows affected
// so the caller can distinguish "not found".
func (r *Repository) UpdateMoto(ctx context.Context, moto domain.Moto) (int64, error) {
	query, args, err := psql.Update("motos").
		Set("nombre", moto.Nombre).
		Set("marca", moto.Marca).
		Set("tipo", string(moto.Tipo)).
		Set("imagen", moto.Imagen).
		Set("cloudinary_public_id", moto.CloudinaryPublicID).
		Set("cilindrada", moto.Specs.Cilindrada).
		Set("motor", moto.Specs.Motor).
		Set("frenos", moto.Specs.Frenos).
		Set("arranque", moto.Specs.Arranque).
		Set("capacidad_tanque", moto.Specs.CapacidadTanque).
		Set("destacada", moto.Destacada).
		Set("show_in_hero", moto.ShowInHero).
		Where(squirrel.Eq{"id": moto.ID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteMoto removes a catalog entry. Idempotent.
func (r *Repository) DeleteMoto(ctx context.Context, id string) error {
	query, args, err := psql.Delete("motos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteMotosByIDs removes the given catalog entries in one statement.
func (r *Repository) DeleteMotosByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := psql.Delete("motos").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// UpdateMotoImageByPath rewrites the image URL and CDN public ID for every
// moto currently pointing at the given image path. Used by the one-time
// image migration. Returns the IDs of the updated rows.
func (r *Repository) UpdateMotoImageByPath(ctx context.Context, oldPath, newURL, publicID string) ([]string, error) {
	query, args, err := psql.Update("motos").
		Set("imagen", newURL).
		Set("cloudinary_public_id", publicID).
		Where(squirrel.Eq{"imagen": oldPath}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, err
	}
	return ids, nil
}
