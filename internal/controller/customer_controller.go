// internal/controller/customer_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/cms-backend/internal/errors"
	"github.com/unclebandit/cms-backend/internal/service"
)

type CustomerController struct {
	CustomerService *service.CustomerService
	AddressService  *service.AddressService
}

func idParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, appErrors.NewValidation("id must be a positive integer")
	}
	return id, nil
}

// List returns a page of customers with an optional search term.
func (c *CustomerController) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	search := r.URL.Query().Get("search")

	result, err := c.CustomerService.ListCustomers(page, limit, search)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Get returns one customer with all their addresses.
func (c *CustomerController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	customer, err := c.CustomerService.GetCustomer(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// Create handles the create customer + address use case.
func (c *CustomerController) Create(w http.ResponseWriter, r *http.Request) {
	var payload service.CreateCustomerInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, appErrors.NewValidation("invalid request body"))
		return
	}

	customer, err := c.CustomerService.CreateCustomer(payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

// Update handles the partial customer and/or address update use case.
func (c *CustomerController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload service.UpdateCustomerInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, appErrors.NewValidation("invalid request body"))
		return
	}

	customer, err := c.CustomerService.UpdateCustomer(id, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// Delete hard-deletes a customer and, via cascade, all their addresses.
func (c *CustomerController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := c.CustomerService.DeleteCustomer(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAddresses returns all addresses belonging to one customer.
func (c *CustomerController) ListAddresses(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	addresses, err := c.AddressService.ListByCustomer(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, addresses)
}

// AddAddress attaches a new address to an existing customer.
func (c *CustomerController) AddAddress(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload service.CreateAddressInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, appErrors.NewValidation("invalid request body"))
		return
	}

	address, err := c.AddressService.AddAddress(id, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, address)
}
