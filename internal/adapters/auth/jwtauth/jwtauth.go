// Package jwtauth implementa los ports auth.AuthVerifier y auth.TokenIssuer
// con JWT HS256 firmados localmente.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-clinic-api/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	// Vigencias por defecto.
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 24 * time.Hour
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongTokenUse = errors.New("wrong token type for this endpoint")
)

type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Service struct {
	cfg Config
	now func() time.Time
}

func New(cfg Config) (*Service, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("jwt secret required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	if strings.TrimSpace(cfg.Issuer) == "" {
		cfg.Issuer = "vet-clinic-api"
	}

	return &Service{cfg: cfg, now: time.Now}, nil
}

type tokenClaims struct {
	Username  string `json:"username,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// Issue emite el par access/refresh para una identidad ya autenticada.
func (s *Service) Issue(ctx context.Context, claims auth.Claims) (auth.TokenPair, error) {
	if strings.TrimSpace(claims.UserID) == "" {
		return auth.TokenPair{}, errors.New("claims missing user id")
	}

	access, err := s.sign(claims, tokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		return auth.TokenPair{}, err
	}
	refresh, err := s.sign(claims, tokenTypeRefresh, s.cfg.RefreshTTL)
	if err != nil {
		return auth.TokenPair{}, err
	}

	return auth.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresInSeconds: int64(s.cfg.AccessTTL.Seconds()),
	}, nil
}

// Refresh verifica un refresh token y emite un par nuevo (rotación).
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return auth.TokenPair{}, err
	}
	return s.Issue(ctx, claims)
}

// Verify implementa auth.AuthVerifier. Solo acepta access tokens: un
// refresh token no sirve como credencial de request.
func (s *Service) Verify(ctx context.Context, token string) (auth.Claims, error) {
	return s.parse(token, tokenTypeAccess)
}

func (s *Service) sign(claims auth.Claims, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()

	tc := tokenClaims{
		Username:  claims.Username,
		Role:      claims.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString([]byte(s.cfg.Secret))
}

func (s *Service) parse(token, wantType string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	if tc.TokenType != wantType {
		return auth.Claims{}, ErrWrongTokenUse
	}
	if strings.TrimSpace(tc.Subject) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID:   tc.Subject,
		Username: tc.Username,
		Role:     tc.Role,
	}, nil
}
