package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"vet-clinic-api/internal/middleware"
	"vet-clinic-api/internal/ports/auth"
	"vet-clinic-api/internal/shared/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc))
		ar.Post("/token", tokenHandler(svc, issuer))
		ar.Post("/refresh", refreshHandler(issuer))
	})

	r.Get("/me", meHandler(svc))
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // owner | staff

	Name     string `json:"name"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Position string `json:"position,omitempty"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`

	Name     string `json:"name"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Position string `json:"position,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Role:     Role(strings.TrimSpace(req.Role)),
			Name:     req.Name,
			Document: req.Document,
			Phone:    req.Phone,
			Address:  req.Address,
			Position: req.Position,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrConflict):
				httpx.WriteError(w, http.StatusConflict, err.Error())
			case errors.Is(err, ErrInvalidInput):
				httpx.WriteError(w, http.StatusBadRequest, err.Error())
			default:
				httpx.WriteError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

func tokenHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// En modo dev (sin issuer) no se emiten tokens; se usan los
		// headers X-Debug-*.
		if issuer == nil {
			httpx.WriteError(w, http.StatusServiceUnavailable, "token issuing disabled")
			return
		}

		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := svc.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
			return
		}

		pair, err := issuer.Issue(r.Context(), auth.Claims{
			UserID:   u.ID,
			Username: u.Username,
			Role:     string(u.Role),
		})
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
	}
}

func refreshHandler(issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if issuer == nil {
			httpx.WriteError(w, http.StatusServiceUnavailable, "token issuing disabled")
			return
		}

		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(req.RefreshToken) == "" {
			httpx.WriteError(w, http.StatusBadRequest, "refresh_token required")
			return
		}

		pair, err := issuer.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		Name:      u.Name,
		Document:  u.Document,
		Phone:     u.Phone,
		Address:   u.Address,
		Position:  u.Position,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toTokenResponse(p auth.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    p.ExpiresInSeconds,
	}
}
