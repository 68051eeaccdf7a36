package handler

import (
	"errors"
	"log"
	"net/http"

	"carecompass/internal/model"
	"carecompass/internal/service"
)

// FacilityHandler exposes the nearby-facility lookup.
type FacilityHandler struct {
	facilities *service.FacilityService
}

// NewFacilityHandler creates the facility handler.
func NewFacilityHandler(facilities *service.FacilityService) *FacilityHandler {
	return &FacilityHandler{facilities: facilities}
}

type facilitiesResponse struct {
	Facilities []model.Facility `json:"facilities"`
}

// GetNearby returns care facilities near a zip code, closest first.
func (h *FacilityHandler) GetNearby(w http.ResponseWriter, r *http.Request) {
	zip := r.URL.Query().Get("zip")

	facilities, err := h.facilities.Nearby(r.Context(), zip)
	switch {
	case errors.Is(err, service.ErrInvalidZip):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrFacilitiesUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		log.Printf("facility lookup: %v", err)
		writeError(w, http.StatusInternalServerError, "facility lookup failed")
		return
	}

	if facilities == nil {
		facilities = []model.Facility{}
	}
	writeJSON(w, http.StatusOK, facilitiesResponse{Facilities: facilities})
}
