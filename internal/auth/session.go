// Package auth implements the stateless admin session mechanism.
//
// A session is a signed, self-expiring token stored in an HTTP-only cookie.
// The token is the entire session state: there is no server-side session
// table and no revocation list. Logout simply tells the client to drop the
// cookie; a leaked token remains valid until its expiry elapses.
//
// Token wire format: "<payload>.<signature>" where payload is the URL-safe
// base64 encoding of the JSON claims and signature is the HMAC-SHA256 of the
// payload segment under the process-wide secret.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/multimark/motos/internal/domain"
)

const (
	// CookieName is the name of the cookie that stores the session token.
	CookieName = "auth-token"

	// CookiePath ensures the cookie is sent with all requests.
	CookiePath = "/"

	// SessionTTL is how long an issued session remains valid. The cookie
	// max-age matches this value.
	SessionTTL = 4 * time.Hour

	// nonceBytes is the number of random bytes mixed into each token so
	// that two logins by the same principal never produce the same token.
	nonceBytes = 16
)

// NormalizeEmail applies the normalization used everywhere an email is
// compared or stored: trim surrounding whitespace, then lowercase.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Claims is the JSON payload carried inside a session token.
type Claims struct {
	Email string `json:"email"`
	Exp   int64  `json:"exp"`
	Nonce string `json:"nonce"`
}

// Config holds the credentials the session manager is constructed with.
//
// Secret is required. AdminEmail plus one of AdminPassword or
// AdminPasswordHash form the single admin principal; their absence is not a
// construction error but causes Login to fail with a server-misconfigured
// error, matching the login endpoint's 500 contract.
type Config struct {
	// Secret signs every token. Required; the process must not serve
	// without it.
	Secret string

	// AdminEmail is the only identity that can log in. Compared after
	// trim + lowercase normalization.
	AdminEmail string

	// AdminPassword is compared literally (case-sensitive).
	AdminPassword string

	// AdminPasswordHash, when set, takes precedence over AdminPassword
	// and is verified with bcrypt.
	AdminPasswordHash string
}

// Manager issues and verifies session tokens. It is the only component that
// creates or authoritatively validates sessions.
//
// All methods are pure with respect to their inputs plus the configured
// secret and the current time; concurrent use requires no synchronization.
type Manager struct {
	signer            *Signer
	adminEmail        string
	adminPassword     string
	adminPasswordHash string
	logger            *slog.Logger
	now               func() time.Time
}

// NewManager creates a session Manager.
//
// Returns an error if the signing secret is empty: serving without a secret
// would make every token forgeable, so startup must fail instead.
func NewManager(cfg Config, logger *slog.Logger) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, domain.Errorf(domain.EINTERNAL, "auth.NewManager", "session signing secret is not configured")
	}

	return &Manager{
		signer:            NewSigner(cfg.Secret),
		adminEmail:        NormalizeEmail(cfg.AdminEmail),
		adminPassword:     cfg.AdminPassword,
		adminPasswordHash: cfg.AdminPasswordHash,
		logger:            logger,
		now:               time.Now,
	}, nil
}

// Login validates the supplied credentials against the configured admin
// identity and returns a freshly signed session token.
//
// Error codes:
//   - domain.EINVALID when either field is empty (400)
//   - domain.EINTERNAL when the admin identity is not configured (500)
//   - domain.EUNAUTHORIZED on any credential mismatch (401); email and
//     password failures collapse into one generic error so callers cannot
//     probe which field was wrong
func (m *Manager) Login(email, password string) (string, error) {
	const op = "auth.Login"

	if email == "" || password == "" {
		return "", domain.Invalid(op, "Missing credentials")
	}

	if m.adminEmail == "" || (m.adminPassword == "" && m.adminPasswordHash == "") {
		return "", domain.Errorf(domain.EINTERNAL, op, "admin credentials not configured")
	}

	normalized := NormalizeEmail(email)

	emailMatch := subtle.ConstantTimeCompare([]byte(normalized), []byte(m.adminEmail)) == 1
	if !emailMatch || !m.passwordMatches(password) {
		return "", domain.Unauthorized(op, "Invalid credentials")
	}

	token, err := m.mint(normalized)
	if err != nil {
		return "", domain.Internal(err, op, "Failed to create session token")
	}

	m.logger.Info("admin logged in", "email", normalized)
	return token, nil
}

// passwordMatches compares the supplied password against the configured
// admin password. The literal comparison is constant-time; lengths leak but
// contents do not. Email addresses and passwords are compared independently
// so both checks always run.
func (m *Manager) passwordMatches(password string) bool {
	if m.adminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(m.adminPasswordHash), []byte(password)) == nil
	}
	if len(password) != len(m.adminPassword) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(m.adminPassword)) == 1
}

// mint builds, encodes and signs a token for the given normalized email.
func (m *Manager) mint(email string) (string, error) {
	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	claims := Claims{
		Email: email,
		Exp:   m.now().Add(SessionTTL).Unix(),
		Nonce: hex.EncodeToString(nonce),
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	encoded := EncodeSegment(payload)
	return encoded + "." + m.signer.Sign(encoded), nil
}

// Verify checks a token and returns its claims, or nil if the token is
// malformed, mis-signed, unparseable or expired.
//
// Verification never mutates anything and never returns an error to the
// caller: every failure mode collapses to "no session". Calling Verify
// twice on the same token yields the same result both times.
func (m *Manager) Verify(token string) *Claims {
	payload, signature, ok := strings.Cut(token, ".")
	if !ok || payload == "" || signature == "" {
		return nil
	}
	if strings.Contains(signature, ".") {
		return nil
	}

	if !m.signer.Verify(payload, signature) {
		return nil
	}

	raw, err := DecodeSegment(payload)
	if err != nil {
		return nil
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil
	}

	if claims.Exp == 0 || claims.Exp <= m.now().Unix() {
		return nil
	}

	return &claims
}
