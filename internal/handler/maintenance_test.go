package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multimark/motos/internal/auth"
	"github.com/multimark/motos/internal/service"
)

func newMaintenanceMux(t *testing.T, motos service.MotoService) (*http.ServeMux, string) {
	t.Helper()
	manager := newTestManager(t)
	token, err := manager.Login("admin@example.com", "correct-password")
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewMaintenanceHandler(motos, nil, &mockRewriter{}, manager, newTestLogger(), "test", "local").RegisterRoutes(mux)
	return mux, token
}

type mockRewriter struct {
	updated []string
}

func (m *mockRewriter) UpdateMotoImageByPath(ctx context.Context, oldPath, newURL, publicID string) ([]string, error) {
	return m.updated, nil
}

func TestSeedEndpoints_Gone(t *testing.T) {
	mux, token := newMaintenanceMux(t, &mockMotoService{})

	for _, path := range []string{"/api/seed", "/api/reseed"} {
		t.Run(path, func(t *testing.T) {
			// 410 regardless of session state.
			r := httptest.NewRequest("POST", path, nil)
			r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, r)

			assert.Equal(t, http.StatusGone, rec.Code)
		})
	}
}

func TestCleanup_RequiresSession(t *testing.T) {
	mux, _ := newMaintenanceMux(t, &mockMotoService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/cleanup", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMigrateImages(t *testing.T) {
	mux, token := newMaintenanceMux(t, &mockMotoService{})

	body := `{"oldPath":"/images/wave.png","newUrl":"https://res.cloudinary.com/demo/image/upload/v1/wave.png","publicId":"multimark-motos/wave"}`

	rec := postJSON(t, mux, "/api/migrate-images", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := postJSONRequest("/api/migrate-images", body)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "updatedIds")

	// Missing fields are rejected.
	req = postJSONRequest("/api/migrate-images", `{"oldPath":""}`)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCleanup_WithSession(t *testing.T) {
	motos := &mockMotoService{
		CleanupFunc: func(ctx context.Context) (*service.CleanupResult, error) {
			return &service.CleanupResult{Total: 3, DeletedIDs: []string{"dup-1"}}, nil
		},
	}
	mux, token := newMaintenanceMux(t, motos)

	r := httptest.NewRequest("POST", "/api/cleanup", nil)
	r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dup-1")
}
