package auth

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multimark/motos/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret:        "test-secret",
		AdminEmail:    "admin@example.com",
		AdminPassword: "correct-password",
	}, testLogger())
	require.NoError(t, err)
	return m
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager(Config{AdminEmail: "a@b.c", AdminPassword: "x"}, testLogger())
	assert.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	m := newTestManager(t)

	token, err := m.Login("admin@example.com", "correct-password")
	require.NoError(t, err)

	claims := m.Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Greater(t, claims.Exp, time.Now().Unix())
	assert.NotEmpty(t, claims.Nonce)
}

func TestLogin_EmailNormalization(t *testing.T) {
	m := newTestManager(t)

	token, err := m.Login("  Admin@Example.COM  ", "correct-password")
	require.NoError(t, err)

	claims := m.Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestLogin_MissingCredentials(t *testing.T) {
	m := newTestManager(t)

	for _, pair := range [][2]string{
		{"", "correct-password"},
		{"admin@example.com", ""},
		{"", ""},
	} {
		_, err := m.Login(pair[0], pair[1])
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	m := newTestManager(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong email", "other@example.com", "correct-password"},
		{"wrong password", "admin@example.com", "wrong-password"},
		{"both wrong", "other@example.com", "wrong-password"},
		{"password case mismatch", "admin@example.com", "Correct-Password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Login(tt.email, tt.password)
			assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
			// One generic message regardless of which field was wrong.
			assert.Equal(t, "Invalid credentials", domain.ErrorMessage(err))
		})
	}
}

func TestLogin_UnconfiguredAdmin(t *testing.T) {
	m, err := NewManager(Config{Secret: "test-secret"}, testLogger())
	require.NoError(t, err)

	_, err = m.Login("admin@example.com", "anything")
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
	// Internal errors surface a generic message only.
	assert.NotContains(t, domain.ErrorMessage(err), "configured")
}

func TestLogin_TokensAreUnique(t *testing.T) {
	m := newTestManager(t)

	first, err := m.Login("admin@example.com", "correct-password")
	require.NoError(t, err)
	second, err := m.Login("admin@example.com", "correct-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify_Malformed(t *testing.T) {
	m := newTestManager(t)

	token, err := m.Login("admin@example.com", "correct-password")
	require.NoError(t, err)
	payload, signature, _ := strings.Cut(token, ".")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no separator", payload + signature},
		{"missing payload", "." + signature},
		{"missing signature", payload + "."},
		{"extra separator", token + ".extra"},
		{"garbage", "not-a-token"},
		{"payload not base64", "ab!cd." + signature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, m.Verify(tt.token))
		})
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	m := newTestManager(t)

	token, err := m.Login("admin@example.com", "correct-password")
	require.NoError(t, err)
	_, signature, _ := strings.Cut(token, ".")

	// Re-encode different claims under the original signature.
	forged := EncodeSegment([]byte(`{"email":"attacker@example.com","exp":9999999999,"nonce":"x"}`))

	assert.Nil(t, m.Verify(forged+"."+signature))
}

func TestVerify_WrongSecret(t *testing.T) {
	m := newTestManager(t)

	other, err := NewManager(Config{
		Secret:        "different-secret",
		AdminEmail:    "admin@example.com",
		AdminPassword: "correct-password",
	}, testLogger())
	require.NoError(t, err)

	token, err := other.Login("admin@example.com", "correct-password")
	require.NoError(t, err)

	assert.Nil(t, m.Verify(token))
}

func TestVerify_Expired(t *testing.T) {
	m := newTestManager(t)

	token, err := m.Login("admin@example.com", "correct-password")
	require.NoError(t, err)

	claims := m.Verify(token)
	require.NotNil(t, claims)

	// Jump past the TTL.
	m.now = func() time.Time { return time.Now().Add(SessionTTL + time.Second) }
	assert.Nil(t, m.Verify(token))

	// Exactly at expiry is also rejected: exp must be strictly in the
	// future.
	m.now = func() time.Time { return time.Unix(claims.Exp, 0) }
	assert.Nil(t, m.Verify(token))
}

func TestVerify_MissingExp(t *testing.T) {
	m := newTestManager(t)

	payload := EncodeSegment([]byte(`{"email":"admin@example.com","nonce":"x"}`))
	token := payload + "." + m.signer.Sign(payload)

	assert.Nil(t, m.Verify(token))
}

func TestVerify_Idempotent(t *testing.T) {
	m := newTestManager(t)

	token, err := m.Login("admin@example.com", "correct-password")
	require.NoError(t, err)

	first := m.Verify(token)
	second := m.Verify(token)

	require.NotNil(t, first)
	assert.Equal(t, first, second)
}

func TestLogin_BcryptHash(t *testing.T) {
	// bcrypt hash of "correct-password" (cost 10)
	m, err := NewManager(Config{
		Secret:            "test-secret",
		AdminEmail:        "admin@example.com",
		AdminPasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
	}, testLogger())
	require.NoError(t, err)

	_, err = m.Login("admin@example.com", "wrong-password")
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}
