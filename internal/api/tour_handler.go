package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tourbase/tours-api/internal/api/shared"
	"github.com/tourbase/tours-api/internal/domain"
	"github.com/tourbase/tours-api/internal/query"
	"github.com/tourbase/tours-api/internal/store"
)

// TourHandler serves the tour catalog endpoints: listing with the full
// filter/sort/projection/pagination pipeline, CRUD, and aggregations.
type TourHandler struct {
	tourStore store.TourStore
	logger    *slog.Logger
}

// NewTourHandler creates a TourHandler with the given dependencies.
func NewTourHandler(tourStore store.TourStore, logger *slog.Logger) *TourHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TourHandler{
		tourStore: tourStore,
		logger:    logger.With(slog.String("component", "tour_handler")),
	}
}

// ListTours handles GET /api/v1/tours. The query string drives filtering,
// sorting, projection, and pagination; a page past the end of the catalog
// returns an empty result set.
func (h *TourHandler) ListTours(w http.ResponseWriter, r *http.Request) {
	h.listTours(w, r, r.URL.Query())
}

// TopTours handles GET /api/v1/tours/top-5-cheap, an alias for the five
// best-rated tours at the lowest price. Client-supplied values for the
// preset keys are overridden; anything else passes through.
func (h *TourHandler) TopTours(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	params.Set(query.ParamLimit, "5")
	params.Set(query.ParamSort, "-ratingAverage,price")
	params.Set(query.ParamFields, "name,price,ratingAverage,summary,difficulty")
	params.Set(query.ParamPage, "1")
	h.listTours(w, r, params)
}

func (h *TourHandler) listTours(w http.ResponseWriter, r *http.Request, params url.Values) {
	spec := query.FromValues(params)

	tours, err := h.tourStore.List(r.Context(), spec)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list tours", err)
		return
	}

	// The filter-wide total lets clients size pagination; results stays the
	// count of documents on this page.
	total, err := h.tourStore.Count(r.Context(), spec)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list tours", err)
		return
	}

	shared.RespondWithList(w, r, http.StatusOK, len(tours), map[string]any{"tours": tours, "total": total})
}

// GetTour handles GET /api/v1/tours/{tourID}.
func (h *TourHandler) GetTour(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "tourID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid tour ID format")
		return
	}

	tour, err := h.tourStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrTourNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "No tour found with that ID")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to get tour", err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, map[string]any{"tour": tour})
}

// CreateTour handles POST /api/v1/tours.
func (h *TourHandler) CreateTour(w http.ResponseWriter, r *http.Request) {
	var req CreateTourRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	tour, err := domain.NewTour(req.Name, req.Duration, req.MaxGroupSize, domain.Difficulty(req.Difficulty), req.Price, req.Summary, req.ImageCover)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), err.Error())
		return
	}
	tour.PriceDiscount = req.PriceDiscount
	tour.Description = req.Description
	tour.Images = req.Images
	tour.StartDates = req.StartDates
	if err := tour.Validate(); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), err.Error())
		return
	}

	if err := h.tourStore.Create(r.Context(), tour); err != nil {
		if errors.Is(err, store.ErrTourNameExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "A tour with that name already exists")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create tour", err)
		return
	}

	h.logger.InfoContext(r.Context(), "tour created", slog.String("tour_id", tour.ID.String()))
	shared.RespondWithData(w, r, http.StatusCreated, map[string]any{"tour": tour})
}

// UpdateTour handles PATCH /api/v1/tours/{tourID}. Only the fields present
// in the body change; the merged document is re-validated before it is
// stored.
func (h *TourHandler) UpdateTour(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "tourID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid tour ID format")
		return
	}

	var req UpdateTourRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	tour, err := h.tourStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrTourNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "No tour found with that ID")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to update tour", err)
		return
	}

	applyTourPatch(tour, &req)
	if err := tour.Validate(); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), err.Error())
		return
	}

	if err := h.tourStore.Update(r.Context(), tour); err != nil {
		if errors.Is(err, store.ErrTourNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "No tour found with that ID")
			return
		}
		if errors.Is(err, store.ErrTourNameExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "A tour with that name already exists")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to update tour", err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, map[string]any{"tour": tour})
}

// DeleteTour handles DELETE /api/v1/tours/{tourID}.
func (h *TourHandler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "tourID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid tour ID format")
		return
	}

	if err := h.tourStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrTourNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "No tour found with that ID")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to delete tour", err)
		return
	}

	h.logger.InfoContext(r.Context(), "tour deleted", slog.String("tour_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// TourStats handles GET /api/v1/tours/stats.
func (h *TourHandler) TourStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tourStore.DifficultyStats(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to compute tour stats", err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, map[string]any{"stats": stats})
}

// MonthlyPlan handles GET /api/v1/tours/monthly-plan/{year}.
func (h *TourHandler) MonthlyPlan(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid year")
		return
	}

	plan, err := h.tourStore.MonthlyPlan(r.Context(), year)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to compute monthly plan", err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, map[string]any{"plan": plan})
}

func applyTourPatch(tour *domain.Tour, req *UpdateTourRequest) {
	if req.Name != nil {
		tour.Name = *req.Name
	}
	if req.Duration != nil {
		tour.Duration = *req.Duration
	}
	if req.MaxGroupSize != nil {
		tour.MaxGroupSize = *req.MaxGroupSize
	}
	if req.Difficulty != nil {
		tour.Difficulty = domain.Difficulty(*req.Difficulty)
	}
	if req.Price != nil {
		tour.Price = *req.Price
	}
	if req.PriceDiscount != nil {
		tour.PriceDiscount = *req.PriceDiscount
	}
	if req.Summary != nil {
		tour.Summary = *req.Summary
	}
	if req.Description != nil {
		tour.Description = *req.Description
	}
	if req.ImageCover != nil {
		tour.ImageCover = *req.ImageCover
	}
	if req.Images != nil {
		tour.Images = *req.Images
	}
	if req.StartDates != nil {
		tour.StartDates = *req.StartDates
	}
}
