package auth

// Claims representa la identidad extraída de un token verificado.
type Claims struct {
	UserID   string
	Username string
	Role     string // owner | staff
}

// TokenPair es el par access/refresh emitido al autenticar.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	ExpiresInSeconds int64 // vigencia del access token
}
