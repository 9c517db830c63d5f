package store

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SigningMethod selects the token signature algorithm.
type SigningMethod string

const (
	// MethodEd25519 signs tokens with an Ed25519 key pair.
	MethodEd25519 SigningMethod = "ed25519"
	// MethodHS256 signs tokens with a shared HMAC secret.
	MethodHS256 SigningMethod = "hs256"
)

var (
	// ErrTokenInvalid is returned when a token fails signature or claim checks.
	ErrTokenInvalid = errors.New("invalid session token")
	// ErrNoToken is returned by [TokenStore.Token] when nothing is committed.
	ErrNoToken = errors.New("no session token committed")
)

// TokenOptions configures a [TokenStore].
type TokenOptions struct {
	TTL           time.Duration
	SigningMethod SigningMethod
	SigningKey    []byte
	VerifyKey     []byte
	Issuer        string
}

type recordClaims struct {
	RID  string `json:"rid"`
	TID  string `json:"tid,omitempty"`
	IDT  string `json:"idt,omitempty"`
	Role string `json:"role,omitempty"`
	AV   uint32 `json:"av,omitempty"`
	jwt.RegisteredClaims
}

// TokenStore is a stateless persistence adapter: Commit mints a signed token
// carrying the record reference instead of writing to a server-side store,
// and a nil commit discards the current token. The caller reads the minted
// token via [TokenStore.Token] and transports it (cookie, header) itself.
//
// The current-token slot is per-instance; use one TokenStore per session
// when sessions are handled on separate goroutines.
type TokenStore struct {
	opts TokenOptions

	mu    sync.Mutex
	token string
}

// NewTokenStore validates opts and returns a [TokenStore].
func NewTokenStore(opts TokenOptions) (*TokenStore, error) {
	if opts.TTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}

	switch opts.SigningMethod {
	case MethodHS256:
		if len(opts.SigningKey) == 0 {
			return nil, errors.New("hs256 requires signing key")
		}
	case MethodEd25519:
		if len(opts.SigningKey) != ed25519.PrivateKeySize {
			return nil, errors.New("ed25519 requires a 64-byte private key")
		}
		if len(opts.VerifyKey) != ed25519.PublicKeySize {
			return nil, errors.New("ed25519 requires a 32-byte public key")
		}
	default:
		return nil, errors.New("unsupported signing method")
	}

	return &TokenStore{opts: opts}, nil
}

// Commit mints a signed token for rec under the session identity, or clears
// the current token when rec is nil.
func (s *TokenStore) Commit(ctx context.Context, ref Ref, rec *Record) error {
	if rec == nil {
		s.mu.Lock()
		s.token = ""
		s.mu.Unlock()
		return nil
	}

	now := time.Now()
	claims := recordClaims{
		RID:  rec.ID,
		TID:  rec.TenantID,
		IDT:  rec.Identifier,
		Role: rec.Role,
		AV:   rec.AccountVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ref.SessionID,
			Issuer:    s.opts.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TTL)),
		},
	}

	var (
		token *jwt.Token
		key   any
	)
	switch s.opts.SigningMethod {
	case MethodHS256:
		token = jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		key = s.opts.SigningKey
	case MethodEd25519:
		token = jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
		key = ed25519.PrivateKey(s.opts.SigningKey)
	}

	signed, err := token.SignedString(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = signed
	s.mu.Unlock()

	return nil
}

// Token returns the most recently minted token.
func (s *TokenStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

// Parse verifies a token and returns the record reference and session ID it
// carries.
func (s *TokenStore) Parse(tokenStr string) (*Record, string, error) {
	claims := &recordClaims{}

	keyFunc := func(t *jwt.Token) (any, error) {
		switch s.opts.SigningMethod {
		case MethodHS256:
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("%w: unexpected signing method", ErrTokenInvalid)
			}
			return []byte(s.opts.SigningKey), nil
		case MethodEd25519:
			if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
				return nil, fmt.Errorf("%w: unexpected signing method", ErrTokenInvalid)
			}
			return ed25519.PublicKey(s.opts.VerifyKey), nil
		default:
			return nil, ErrTokenInvalid
		}
	}

	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if s.opts.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.opts.Issuer))
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return nil, "", ErrTokenInvalid
	}

	rec := &Record{
		ID:             claims.RID,
		TenantID:       claims.TID,
		Identifier:     claims.IDT,
		Role:           claims.Role,
		AccountVersion: claims.AV,
	}
	return rec, claims.RegisteredClaims.ID, nil
}
