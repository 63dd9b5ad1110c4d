// internal/controller/reference_controller.go
package controller

import (
	"net/http"

	"github.com/unclebandit/cms-backend/internal/service"
)

type ReferenceController struct {
	ReferenceService *service.ReferenceService
}

func (c *ReferenceController) States(w http.ResponseWriter, r *http.Request) {
	states, err := c.ReferenceService.GetStates()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, states)
}

func (c *ReferenceController) Cities(w http.ResponseWriter, r *http.Request) {
	cities, err := c.ReferenceService.GetCities()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}

func (c *ReferenceController) CitiesByState(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	cities, err := c.ReferenceService.GetCitiesByState(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}
