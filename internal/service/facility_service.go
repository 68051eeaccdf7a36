package service

import (
	"context"
	"errors"
	"regexp"

	"carecompass/internal/model"
	"carecompass/internal/repository"
)

var (
	ErrInvalidZip            = errors.New("zip code must be 5 digits")
	ErrFacilitiesUnavailable = errors.New("facility lookup is not configured")
)

var zipPattern = regexp.MustCompile(`^[0-9]{5}$`)

const maxFacilities = 10

// FacilityService finds nearby care facilities for a postal code. A
// collaborator of the presentation layer, invoked only after a
// recommendation exists.
type FacilityService struct {
	repo repository.FacilityRepo
}

// NewFacilityService creates the facility finder. repo may be nil when
// no facility database is configured.
func NewFacilityService(repo repository.FacilityRepo) *FacilityService {
	return &FacilityService{repo: repo}
}

// Nearby returns facilities for the zip code ordered by distance.
func (s *FacilityService) Nearby(ctx context.Context, zip string) ([]model.Facility, error) {
	if s.repo == nil {
		return nil, ErrFacilitiesUnavailable
	}
	if !zipPattern.MatchString(zip) {
		return nil, ErrInvalidZip
	}
	return s.repo.FindByZip(ctx, zip, maxFacilities)
}
