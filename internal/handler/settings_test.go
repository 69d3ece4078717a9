package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multimark/motos/internal/auth"
	"github.com/multimark/motos/internal/domain"
)

// mockSettingsService implements service.SettingsService.
type mockSettingsService struct {
	AllFunc    func(ctx context.Context) (map[string]string, error)
	UpsertFunc func(ctx context.Context, key, value string) (domain.Setting, error)
}

func (m *mockSettingsService) All(ctx context.Context) (map[string]string, error) {
	if m.AllFunc != nil {
		return m.AllFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSettingsService) Public(ctx context.Context) domain.PublicSettings {
	return domain.DefaultPublicSettings()
}

func (m *mockSettingsService) Upsert(ctx context.Context, key, value string) (domain.Setting, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, key, value)
	}
	return domain.Setting{}, errors.New("not implemented")
}

func newSettingsMux(t *testing.T, settings *mockSettingsService) (*http.ServeMux, string) {
	t.Helper()
	manager := newTestManager(t)
	token, err := manager.Login("admin@example.com", "correct-password")
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewSettingsHandler(settings, manager, newTestLogger()).RegisterRoutes(mux)
	return mux, token
}

func TestPublicSettings_Open(t *testing.T) {
	mux, _ := newSettingsMux(t, &mockSettingsService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/settings/public", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "whatsappNumber")
}

func TestAllSettings_RequiresSession(t *testing.T) {
	mux, token := newSettingsMux(t, &mockSettingsService{
		AllFunc: func(ctx context.Context) (map[string]string, error) {
			return map[string]string{"phone": "123"}, nil
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/settings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	r := httptest.NewRequest("GET", "/api/settings", nil)
	r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "phone")
}

func TestUpsertSetting(t *testing.T) {
	var gotKey, gotValue string
	mux, token := newSettingsMux(t, &mockSettingsService{
		UpsertFunc: func(ctx context.Context, key, value string) (domain.Setting, error) {
			gotKey, gotValue = key, value
			return domain.Setting{Key: key, Value: value}, nil
		},
	})

	body := `{"key":"phone","value":"+54 11 5555-5555"}`

	rec := postJSON(t, mux, "/api/settings", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := postJSONRequest("/api/settings", body)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "phone", gotKey)
	assert.Equal(t, "+54 11 5555-5555", gotValue)
}
