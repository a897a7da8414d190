package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidSession     = errors.New("invalid or expired session")
	// ErrLockedOut is returned by a Guard while an account lockout is live.
	ErrLockedOut = errors.New("account temporarily locked")
)

// Guard observes login attempts and can refuse them, e.g. to enforce
// brute-force lockouts. Implementations must be safe for concurrent use.
type Guard interface {
	Check(ctx context.Context, email string) error
	RecordAttempt(ctx context.Context, email, remoteAddr string, success bool)
}

const (
	sessionTokenLength   = 32
	sessionTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

type Service struct {
	users    UserStore
	sessions SessionStore
	guard    Guard
	recorder *Recorder

	secret     []byte
	sessionTTL time.Duration
	accessTTL  time.Duration
	now        func() time.Time
}

type Option func(*Service)

func WithGuard(g Guard) Option {
	return func(s *Service) { s.guard = g }
}

func WithRecorder(r *Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) { s.sessionTTL = ttl }
}

func WithAccessTokenTTL(ttl time.Duration) Option {
	return func(s *Service) { s.accessTTL = ttl }
}

func NewService(users UserStore, sessions SessionStore, secret string, opts ...Option) *Service {
	s := &Service{
		users:      users,
		sessions:   sessions,
		secret:     []byte(secret),
		sessionTTL: time.Hour,
		accessTTL:  15 * time.Minute,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login authenticates a user by email and password. An unknown email or
// a wrong password both yield (nil, nil); only malformed input and
// infrastructure failures produce errors.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if s.guard != nil {
		if err := s.guard.Check(ctx, email); err != nil {
			return nil, err
		}
	}

	start := s.now()
	defer func() {
		if s.recorder != nil {
			s.recorder.Observe(int(s.now().Sub(start).Milliseconds()))
		}
	}()

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.recordAttempt(ctx, email, false)
			return nil, nil
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !verifyPassword(password, user.PasswordHash) {
		s.recordAttempt(ctx, email, false)
		return nil, nil
	}

	s.recordAttempt(ctx, email, true)
	return user, nil
}

func (s *Service) recordAttempt(ctx context.Context, email string, success bool) {
	if s.guard == nil {
		return
	}
	s.guard.RecordAttempt(ctx, email, RemoteAddrFromContext(ctx), success)
}

// CreateSession persists a new session for the user and returns its
// opaque token. Token uniqueness is left to the primary-key constraint.
func (s *Service) CreateSession(ctx context.Context, userID int64) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	sess := &Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Insert(ctx, sess); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return token, nil
}

// Logout removes the session. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Refresh exchanges a live session token for a fresh access token.
func (s *Service) Refresh(ctx context.Context, token string) (string, *User, error) {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return "", nil, ErrInvalidSession
		}
		return "", nil, err
	}
	if sess.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return "", nil, ErrInvalidSession
	}
	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidSession
		}
		return "", nil, err
	}
	access, err := s.IssueAccessToken(user)
	if err != nil {
		return "", nil, err
	}
	return access, user, nil
}

// SweepExpiredSessions deletes sessions whose expiry has passed.
func (s *Service) SweepExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}

// AccessTokenTTL exposes the configured access-token lifetime.
func (s *Service) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

func (s *Service) IssueAccessToken(user *User) (string, error) {
	now := s.now().UTC()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

func (s *Service) ParseAccessToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// HashPassword produces a bcrypt digest for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword accepts bcrypt digests and, for seed fixtures that
// store no digest, falls back to a constant-time literal comparison.
func verifyPassword(password, hash string) bool {
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(hash)) == 1
}

// newSessionToken draws 32 characters uniformly from letters and digits.
func newSessionToken() (string, error) {
	max := big.NewInt(int64(len(sessionTokenAlphabet)))
	b := make([]byte, sessionTokenLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = sessionTokenAlphabet[n.Int64()]
	}
	return string(b), nil
}
