package vaccinations

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
	r.Route("/vaccinations", func(vr chi.Router) {
		vr.Post("/", recordVaccinationHandler(svc))
		vr.Get("/", listVaccinationsHandler(svc))

		// Agregados de solo lectura sobre lo visible para el caller.
		vr.Get("/upcoming", listUpcomingHandler(svc))
		vr.Get("/overdue", listOverdueHandler(svc))

		vr.Get("/{vaccinationID}", getVaccinationHandler(svc))
		vr.Patch("/{vaccinationID}", updateVaccinationHandler(svc))
		vr.Delete("/{vaccinationID}", deleteVaccinationHandler(svc))
	})

	// Historial por mascota
	r.Get("/pets/{petID}/vaccinations", listByPetHandler(svc))
}

type recordVaccinationRequest struct {
	PetID     string `json:"pet_id"`
	VaccineID string `json:"vaccine_id"`
	AppliedAt string `json:"applied_at"` // YYYY-MM-DD
	Batch     string `json:"batch"`
	Notes     string `json:"notes,omitempty"`
}

type updateVaccinationRequest struct {
	VaccineID *string `json:"vaccine_id"`
	AppliedAt *string `json:"applied_at"` // YYYY-MM-DD
	Batch     *string `json:"batch"`
	Notes     *string `json:"notes"`
}

type vaccinationResponse struct {
	ID              string     `json:"id"`
	PetID           string     `json:"pet_id"`
	VaccineID       string     `json:"vaccine_id"`
	AppliedByUserID string     `json:"applied_by_user_id"`
	AppliedAt       string     `json:"applied_at"`
	NextDueAt       *string    `json:"next_due_at,omitempty"`
	Batch           string     `json:"batch"`
	Notes           string     `json:"notes,omitempty"`
	Status          DoseStatus `json:"status"`
	DaysUntilDue    *int       `json:"days_until_due,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func recordVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req recordVaccinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		appliedAt, err := time.Parse("2006-01-02", strings.TrimSpace(req.AppliedAt))
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "applied_at must be YYYY-MM-DD")
			return
		}

		v, err := svc.Record(r.Context(), actor, RecordInput{
			PetID:     req.PetID,
			VaccineID: req.VaccineID,
			AppliedAt: appliedAt,
			Batch:     req.Batch,
			Notes:     req.Notes,
		})
		if err != nil {
			writeVaccinationError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toVaccinationResponse(svc, v, time.Now()))
	}
}

func listVaccinationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListVisible(r.Context(), actor)
		if err != nil {
			writeVaccinationError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toVaccinationResponses(svc, items))
	}
}

func listUpcomingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListUpcoming(r.Context(), actor)
		if err != nil {
			writeVaccinationError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toVaccinationResponses(svc, items))
	}
}

func listOverdueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListOverdue(r.Context(), actor)
		if err != nil {
			writeVaccinationError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toVaccinationResponses(svc, items))
	}
}

func getVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		v, err := svc.GetByID(r.Context(), actor, chi.URLParam(r, "vaccinationID"))
		if err != nil {
			writeVaccinationError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toVaccinationResponse(svc, v, time.Now()))
	}
}

func updateVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateVaccinationRequest
		if err := dec.Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		in := UpdateInput{
			VaccineID: req.VaccineID,
			Batch:     req.Batch,
			Notes:     req.Notes,
		}
		if req.AppliedAt != nil {
			t, err := time.Parse("2006-01-02", strings.TrimSpace(*req.AppliedAt))
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "applied_at must be YYYY-MM-DD")
				return
			}
			in.AppliedAt = &t
		}

		v, err := svc.Update(r.Context(), actor, chi.URLParam(r, "vaccinationID"), in)
		if err != nil {
			writeVaccinationError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toVaccinationResponse(svc, v, time.Now()))
	}
}

func deleteVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := svc.Delete(r.Context(), actor, chi.URLParam(r, "vaccinationID")); err != nil {
			writeVaccinationError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func listByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListByPet(r.Context(), actor, chi.URLParam(r, "petID"))
		if err != nil {
			writeVaccinationError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toVaccinationResponses(svc, items))
	}
}

func writeVaccinationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrStaffOnly), errors.Is(err, ErrForbidden):
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

func toVaccinationResponses(svc *Service, items []Vaccination) []vaccinationResponse {
	now := time.Now()
	out := make([]vaccinationResponse, 0, len(items))
	for _, v := range items {
		out = append(out, toVaccinationResponse(svc, v, now))
	}
	return out
}

func toVaccinationResponse(svc *Service, v Vaccination, now time.Time) vaccinationResponse {
	resp := vaccinationResponse{
		ID:              v.ID,
		PetID:           v.PetID,
		VaccineID:       v.VaccineID,
		AppliedByUserID: v.AppliedByUserID,
		AppliedAt:       v.AppliedAt.Format("2006-01-02"),
		Batch:           v.Batch,
		Notes:           v.Notes,
		Status:          svc.Status(v, now),
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
	if v.NextDueAt != nil {
		due := v.NextDueAt.Format("2006-01-02")
		resp.NextDueAt = &due
	}
	if days, ok := v.DaysUntilDue(now); ok {
		resp.DaysUntilDue = &days
	}
	return resp
}
