package vaccines

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
	r.Route("/vaccines", func(vr chi.Router) {
		vr.Post("/", createVaccineHandler(svc))
		vr.Get("/", listVaccinesHandler(svc))

		vr.Get("/{vaccineID}", getVaccineHandler(svc))
		vr.Patch("/{vaccineID}", updateVaccineHandler(svc))
		vr.Delete("/{vaccineID}", deleteVaccineHandler(svc))
	})
}

type createVaccineRequest struct {
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer"`
	Price        float64 `json:"price"`
	IntervalDays int     `json:"interval_days"`
	Description  string  `json:"description"`
}

type updateVaccineRequest struct {
	Name         *string  `json:"name"`
	Manufacturer *string  `json:"manufacturer"`
	Price        *float64 `json:"price"`
	IntervalDays *int     `json:"interval_days"`
	Description  *string  `json:"description"`
}

type vaccineResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	Price        float64   `json:"price"`
	IntervalDays int       `json:"interval_days"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func createVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createVaccineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		v, err := svc.Create(r.Context(), actor, CreateInput{
			Name:         req.Name,
			Manufacturer: req.Manufacturer,
			Price:        req.Price,
			IntervalDays: req.IntervalDays,
			Description:  req.Description,
		})
		if err != nil {
			writeVaccineError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toVaccineResponse(v))
	}
}

func listVaccinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := actorFrom(r); !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListAll(r.Context())
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]vaccineResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccineResponse(v))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := actorFrom(r); !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "vaccineID"))
		if err != nil {
			writeVaccineError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toVaccineResponse(v))
	}
}

func updateVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateVaccineRequest
		if err := dec.Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		v, err := svc.Update(r.Context(), actor, chi.URLParam(r, "vaccineID"), UpdateInput{
			Name:         req.Name,
			Manufacturer: req.Manufacturer,
			Price:        req.Price,
			IntervalDays: req.IntervalDays,
			Description:  req.Description,
		})
		if err != nil {
			writeVaccineError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toVaccineResponse(v))
	}
}

func deleteVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := svc.Delete(r.Context(), actor, chi.URLParam(r, "vaccineID")); err != nil {
			writeVaccineError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeVaccineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrStaffOnly):
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

func toVaccineResponse(v Vaccine) vaccineResponse {
	return vaccineResponse{
		ID:           v.ID,
		Name:         v.Name,
		Manufacturer: v.Manufacturer,
		Price:        v.Price,
		IntervalDays: v.IntervalDays,
		Description:  v.Description,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
