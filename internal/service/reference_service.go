// internal/service/reference_service.go
package service

import (
	appErrors "github.com/unclebandit/cms-backend/internal/errors"
	"github.com/unclebandit/cms-backend/internal/model"
	"github.com/unclebandit/cms-backend/internal/repository"
)

// ReferenceService serves the state/city reference data that backs the admin
// client's dropdowns.
type ReferenceService struct {
	ReferenceRepo repository.ReferenceRepositoryInterface
}

func (s *ReferenceService) GetStates() ([]model.State, error) {
	return s.ReferenceRepo.ListStates()
}

func (s *ReferenceService) GetCities() ([]model.City, error) {
	return s.ReferenceRepo.ListCities()
}

// GetCitiesByState returns the cities of one state. The state is checked
// first so an unknown id is a clear NotFound rather than an empty list.
func (s *ReferenceService) GetCitiesByState(stateID int) ([]model.City, error) {
	state, err := s.ReferenceRepo.GetStateByID(stateID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, appErrors.NewNotFound("state", stateID)
	}
	return s.ReferenceRepo.ListCitiesByState(stateID)
}
