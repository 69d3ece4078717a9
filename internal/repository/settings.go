package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/multimark/motos/internal/domain"
)

type settingRow struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ListSettings returns every site_settings row.
func (r *Repository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	query, args, err := psql.Select("key", "value", "updated_at").
		From("site_settings").
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []settingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	settings := make([]domain.Setting, 0, len(rows))
	for _, row := range rows {
		settings = append(settings, domain.Setting{Key: row.Key, Value: row.Value, UpdatedAt: row.UpdatedAt})
	}
	return settings, nil
}

// GetSettingsByKeys returns the requested settings as a key→value map.
// Missing keys are simply absent from the result.
func (r *Repository) GetSettingsByKeys(ctx context.Context, keys []string) (map[string]string, error) {
	query, args, err := psql.Select("key", "value").
		From("site_settings").
		Where(squirrel.Eq{"key": keys}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []settingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

// UpsertSetting inserts or replaces a setting and returns the stored row.
func (r *Repository) UpsertSetting(ctx context.Context, key, value string) (domain.Setting, error) {
	query, args, err := psql.Insert("site_settings").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		Suffix("RETURNING key, value, updated_at").
		ToSql()
	if err != nil {
		return domain.Setting{}, err
	}

	var row settingRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return domain.Setting{}, err
	}
	return domain.Setting{Key: row.Key, Value: row.Value, UpdatedAt: row.UpdatedAt}, nil
}
