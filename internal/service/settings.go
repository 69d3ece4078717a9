package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/multimark/motos/internal/domain"
)

// SettingsService manages site-wide configuration values.
type SettingsService interface {
	// All returns every setting as a key/value map.
	All(ctx context.Context) (map[string]string, error)

	// Public returns the public subset with defaults filled in. Never
	// fails: on a storage error the defaults are returned so the public
	// site keeps rendering.
	Public(ctx context.Context) domain.PublicSettings

	// Upsert creates or replaces a setting.
	Upsert(ctx context.Context, key, value string) (domain.Setting, error)
}

// SettingsRepository is the persistence surface SettingsService needs.
type SettingsRepository interface {
	ListSettings(ctx context.Context) ([]domain.Setting, error)
	GetSettingsByKeys(ctx context.Context, keys []string) (map[string]string, error)
	UpsertSetting(ctx context.Context, key, value string) (domain.Setting, error)
}

type settingsService struct {
	repo   SettingsRepository
	logger *slog.Logger
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(repo SettingsRepository, logger *slog.Logger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) All(ctx context.Context) (map[string]string, error) {
	const op = "SettingsService.All"

	settings, err := s.repo.ListSettings(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to load settings")
	}

	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}
	return values, nil
}

func (s *settingsService) Public(ctx context.Context) domain.PublicSettings {
	values, err := s.repo.GetSettingsByKeys(ctx, domain.PublicSettingKeys)
	if err != nil {
		s.logger.Error("failed to load public settings, serving defaults", "error", err)
		return domain.DefaultPublicSettings()
	}
	return domain.BuildPublicSettings(values)
}

func (s *settingsService) Upsert(ctx context.Context, key, value string) (domain.Setting, error) {
	const op = "SettingsService.Upsert"

	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Setting{}, domain.Invalid(op, "Key is required")
	}

	setting, err := s.repo.UpsertSetting(ctx, key, value)
	if err != nil {
		return domain.Setting{}, domain.Internal(err, op, "Failed to save setting")
	}

	s.logger.Info("setting updated", "key", key)

	return setting, nil
}
