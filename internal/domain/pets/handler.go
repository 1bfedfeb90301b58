package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"vet-clinic-api/internal/domain/users"
	"vet-clinic-api/internal/middleware"
	"vet-clinic-api/internal/shared/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	OwnerUserID string  `json:"owner_user_id,omitempty"` // solo staff
	Name        string  `json:"name"`
	Species     string  `json:"species"`
	Breed       string  `json:"breed"`
	WeightKg    float64 `json:"weight_kg"`
	BirthDate   string  `json:"birth_date,omitempty"` // YYYY-MM-DD opcional
}

type petResponse struct {
	ID          string     `json:"id"`
	OwnerUserID string     `json:"owner_user_id"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed"`
	WeightKg    float64    `json:"weight_kg"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	AgeDays     *int       `json:"age_days,omitempty"`
	AgeYears    *int       `json:"age_years,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string  `json:"name"`
	Species  *string  `json:"species"`
	Breed    *string  `json:"breed"`
	WeightKg *float64 `json:"weight_kg"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		bd, err := parseDate(req.BirthDate)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
			return
		}

		p, err := svc.Create(r.Context(), actor, CreateInput{
			OwnerUserID: req.OwnerUserID,
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			WeightKg:    req.WeightKg,
			BirthDate:   bd,
		})
		if err != nil {
			writePetError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toPetResponse(p, time.Now()))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListVisible(r.Context(), actor)
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		now := time.Now()
		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p, now))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		p, err := svc.GetByID(r.Context(), actor, chi.URLParam(r, "petID"))
		if err != nil {
			writePetError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p, time.Now()))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		// Decodificamos a map primero para distinguir "birth_date": null
		// (limpiar) de campo ausente (no tocar).
		var raw map[string]json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		var req updatePetRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "invalid json")
				return
			}
		}

		in := UpdateInput{
			Name:     req.Name,
			Species:  req.Species,
			Breed:    req.Breed,
			WeightKg: req.WeightKg,
		}

		if v, exists := raw["birth_date"]; exists {
			if string(v) == "null" {
				in.ClearBirthDate = true
			} else {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD or null")
					return
				}
				bd, err := parseDate(s)
				if err != nil || bd == nil {
					httpx.WriteError(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD or null")
					return
				}
				in.BirthDate = bd
			}
		}

		p, err := svc.Update(r.Context(), actor, chi.URLParam(r, "petID"), in)
		if err != nil {
			writePetError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p, time.Now()))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := svc.Delete(r.Context(), actor, chi.URLParam(r, "petID")); err != nil {
			writePetError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writePetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func actorFrom(r *http.Request) (users.Actor, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return users.Actor{}, false
	}
	return users.Actor{UserID: claims.UserID, Role: users.Role(claims.Role)}, true
}

func parseDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toPetResponse(p Pet, now time.Time) petResponse {
	resp := petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		WeightKg:    p.WeightKg,
		BirthDate:   p.BirthDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if days, ok := p.AgeDays(now); ok {
		years, _ := p.AgeYears(now)
		resp.AgeDays = &days
		resp.AgeYears = &years
	}
	return resp
}
