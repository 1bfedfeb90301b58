package auth

import "context"

// AuthVerifier verifica un access token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite pares de tokens y renueva a partir de un refresh token.
type TokenIssuer interface {
	Issue(ctx context.Context, claims Claims) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}
