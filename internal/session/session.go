// Sessions live in the cache under an opaque id.
// The client only holds a signed token naming that id, so a session can be revoked server-side.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cradoe/safetrain/internal/cache"
	"github.com/google/uuid"
	"github.com/pascaldekloe/jwt"
)

const keyPrefix = "session:"

var ErrInvalidToken = errors.New("invalid session token")

// User is the account snapshot stored with a session. It never carries the password hash.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	CurrentLevel int    `json:"current_level"`
}

type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	Secret     string
	Issuer     string
}

type Manager struct {
	store      cache.Store
	cookieName string
	ttl        time.Duration
	secure     bool
	secret     []byte
	issuer     string
	now        func() time.Time
}

func NewManager(store cache.Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "safetrain_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}

	return &Manager{
		store:      store,
		cookieName: opts.CookieName,
		ttl:        opts.TTL,
		secure:     opts.Secure,
		secret:     []byte(opts.Secret),
		issuer:     opts.Issuer,
		now:        time.Now,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// Create stores a new session for user and returns it with the signed token for the cookie.
func (m *Manager) Create(ctx context.Context, user User) (*Session, string, error) {
	now := m.now()

	sess := &Session{
		ID:        uuid.NewString(),
		User:      user,
		ExpiresAt: now.Add(m.ttl),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, "", err
	}

	if err := m.store.Set(ctx, keyPrefix+sess.ID, string(payload), m.ttl); err != nil {
		return nil, "", fmt.Errorf("store session: %w", err)
	}

	var claims jwt.Claims
	claims.ID = sess.ID
	claims.Issued = jwt.NewNumericTime(now)
	claims.NotBefore = jwt.NewNumericTime(now)
	claims.Expires = jwt.NewNumericTime(sess.ExpiresAt)
	claims.Issuer = m.issuer
	claims.Audiences = []string{m.issuer}

	token, err := claims.HMACSign(jwt.HS256, m.secret)
	if err != nil {
		return nil, "", err
	}

	return sess, string(token), nil
}

// Resolve returns the session named by token. A token that is well signed but whose session
// expired or was destroyed resolves to found=false; a forged or expired token returns ErrInvalidToken.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, bool, error) {
	id, err := m.sessionID(token)
	if err != nil {
		return nil, false, err
	}

	payload, found, err := m.store.Get(ctx, keyPrefix+id)
	if err != nil {
		return nil, false, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	var sess Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return nil, false, fmt.Errorf("decode session: %w", err)
	}

	return &sess, true, nil
}

// Destroy removes the session named by token. Unknown or invalid tokens are a no-op.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	id, err := m.sessionID(token)
	if errors.Is(err, ErrInvalidToken) {
		return nil
	}

	if err := m.store.Delete(ctx, keyPrefix+id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (m *Manager) sessionID(token string) (string, error) {
	claims, err := jwt.HMACCheck([]byte(token), m.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !claims.Valid(m.now()) {
		return "", ErrInvalidToken
	}

	if claims.Issuer != m.issuer || !claims.AcceptAudience(m.issuer) {
		return "", ErrInvalidToken
	}

	if claims.ID == "" {
		return "", ErrInvalidToken
	}

	return claims.ID, nil
}

func (m *Manager) Cookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
