// internal/service/customer_service.go
package service

import (
	"database/sql"
	"log"

	"github.com/unclebandit/cms-backend/internal/db"
	appErrors "github.com/unclebandit/cms-backend/internal/errors"
	"github.com/unclebandit/cms-backend/internal/model"
	"github.com/unclebandit/cms-backend/internal/queue"
	"github.com/unclebandit/cms-backend/internal/repository"
)

// CustomerService orchestrates the customer + address consistency rules: each
// use case runs cheap pre-flight checks outside a transaction, then opens one
// transaction in which it re-verifies state and performs all writes.
type CustomerService struct {
	CustomerRepo  repository.CustomerRepositoryInterface
	AddressRepo   repository.AddressRepositoryInterface
	ReferenceRepo repository.ReferenceRepositoryInterface
	RunTx         func(db.TxFn) error
	Queue         queue.Queue
}

// CustomerList is one page of customers plus the counts the client needs to
// render pagination.
type CustomerList struct {
	Items      []model.Customer `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

// validateCityState checks the (city, state) pair against the reference
// tables. A failure is always a Validation error naming the offending value.
func validateCityState(refs repository.ReferenceRepositoryInterface, city, state string) error {
	stateValid, err := refs.StateExists(state)
	if err != nil {
		return err
	}
	if !stateValid {
		return appErrors.NewValidation("state '%s' is not a valid option, please select from the dropdown", state)
	}

	cityValid, err := refs.CityExistsForState(city, state)
	if err != nil {
		return err
	}
	if !cityValid {
		return appErrors.NewValidation("city '%s' does not belong to state '%s', please select a valid city for the chosen state", city, state)
	}
	return nil
}

// ListCustomers returns a paginated, optionally searched customer page.
func (s *CustomerService) ListCustomers(page, limit int, search string) (*CustomerList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	items, total, err := s.CustomerRepo.List(page, limit, search)
	if err != nil {
		return nil, err
	}

	return &CustomerList{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// GetCustomer fetches one customer together with all their addresses.
func (s *CustomerService) GetCustomer(id int) (*model.CustomerWithAddresses, error) {
	customer, err := s.CustomerRepo.GetByID(nil, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, appErrors.NewNotFound("customer", id)
	}

	addresses, err := s.AddressRepo.ListByCustomerID(nil, id)
	if err != nil {
		return nil, err
	}
	return &model.CustomerWithAddresses{Customer: *customer, Addresses: addresses}, nil
}

// CreateCustomer creates a customer and their first address in one
// transaction. The address is mandatory at creation, so both rows exist
// together or neither does.
func (s *CustomerService) CreateCustomer(in CreateCustomerInput) (*model.CustomerWithAddresses, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// Pre-flight checks outside the transaction (cheap reads). The unique
	// constraint on customers.email remains the authoritative guard for the
	// race where two creates pass this check concurrently.
	existing, err := s.CustomerRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.NewConflict("email '%s' is already registered", in.Email)
	}

	if err := validateCityState(s.ReferenceRepo, in.Address.City, in.Address.State); err != nil {
		return nil, err
	}

	var result *model.CustomerWithAddresses
	err = s.RunTx(func(tx *sql.Tx) error {
		customer, err := s.CustomerRepo.Create(tx, repository.CustomerCreateInput{
			FullName:    in.FullName,
			CompanyName: in.CompanyName,
			PhoneNumber: in.PhoneNumber,
			Email:       in.Email,
		})
		if err != nil {
			return err
		}

		address, err := s.AddressRepo.Create(tx, customer.ID, in.Address.repoInput())
		if err != nil {
			return err
		}

		log.Printf("customer created: id=%d email=%s", customer.ID, customer.Email)
		result = &model.CustomerWithAddresses{
			Customer:  *customer,
			Addresses: []model.Address{*address},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(queue.EventCustomerCreated, result.ID)
	return result, nil
}

// UpdateCustomer applies a partial update to a customer and, optionally, one
// of its addresses in a single transaction.
//
// Address targeting is ambiguous by id-presence: an explicit address id
// updates that address (which must belong to this customer), no id updates the
// customer's first address, and no id with no existing address creates a new
// one, which requires the full six-field payload.
func (s *CustomerService) UpdateCustomer(id int, in UpdateCustomerInput) (*model.CustomerWithAddresses, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.CustomerRepo.GetByID(nil, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, appErrors.NewNotFound("customer", id)
	}

	// Email uniqueness check only when the email is actually changing.
	if in.Email != nil && *in.Email != existing.Email {
		owner, err := s.CustomerRepo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if owner != nil && owner.ID != id {
			return nil, appErrors.NewConflict("email '%s' is already registered", *in.Email)
		}
	}

	if in.Address != nil && in.Address.HasFields() {
		if err := s.validateEffectiveCityState(id, in.Address); err != nil {
			return nil, err
		}
	}

	var result *model.CustomerWithAddresses
	err = s.RunTx(func(tx *sql.Tx) error {
		updated := existing

		if custIn := in.customerInput(); custIn.HasFields() {
			c, err := s.CustomerRepo.Update(tx, id, custIn)
			if err != nil {
				return err
			}
			if c == nil {
				return appErrors.NewNotFound("customer", id)
			}
			updated = c
			log.Printf("customer updated: id=%d", id)
		}

		if in.Address != nil && in.Address.HasFields() {
			if err := s.applyAddressUpdate(tx, id, in.Address); err != nil {
				return err
			}
		}

		// Re-read on the open tx so the list reflects this unit of work's
		// own address writes.
		addresses, err := s.AddressRepo.ListByCustomerID(tx, id)
		if err != nil {
			return err
		}
		result = &model.CustomerWithAddresses{Customer: *updated, Addresses: addresses}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(queue.EventCustomerUpdated, id)
	return result, nil
}

// validateEffectiveCityState resolves the city/state pair to validate when the
// payload supplies only half of it, falling back to the targeted address's
// stored values, or the first address's when no target id was given.
func (s *CustomerService) validateEffectiveCityState(customerID int, in *UpdateAddressInput) error {
	effCity := in.City
	effState := in.State

	if effCity == nil || effState == nil {
		var source *model.Address
		if in.ID != nil {
			existing, err := s.AddressRepo.GetByID(nil, *in.ID)
			if err != nil {
				return err
			}
			if existing == nil || existing.CustomerID != customerID {
				return appErrors.NewNotFound("address", *in.ID)
			}
			source = existing
		} else {
			addresses, err := s.AddressRepo.ListByCustomerID(nil, customerID)
			if err != nil {
				return err
			}
			if len(addresses) > 0 {
				source = &addresses[0]
			}
		}
		if source != nil {
			if effCity == nil {
				effCity = &source.City
			}
			if effState == nil {
				effState = &source.State
			}
		}
	}

	if effCity != nil && effState != nil {
		return validateCityState(s.ReferenceRepo, *effCity, *effState)
	}
	return nil
}

// applyAddressUpdate performs the address half of a customer update inside
// the transaction, re-checking ownership of an explicitly targeted address.
func (s *CustomerService) applyAddressUpdate(tx *sql.Tx, customerID int, in *UpdateAddressInput) error {
	if in.ID != nil {
		updated, err := s.AddressRepo.Update(tx, *in.ID, in.repoInput())
		if err != nil {
			return err
		}
		if updated == nil || updated.CustomerID != customerID {
			return appErrors.NewNotFound("address", *in.ID)
		}
		log.Printf("address updated: id=%d", *in.ID)
		return nil
	}

	addresses, err := s.AddressRepo.ListByCustomerID(tx, customerID)
	if err != nil {
		return err
	}
	if len(addresses) > 0 {
		if _, err := s.AddressRepo.Update(tx, addresses[0].ID, in.repoInput()); err != nil {
			return err
		}
		log.Printf("address updated: id=%d", addresses[0].ID)
		return nil
	}

	createIn, err := in.completeInput()
	if err != nil {
		return err
	}
	address, err := s.AddressRepo.Create(tx, customerID, *createIn)
	if err != nil {
		return err
	}
	log.Printf("address created for customer: id=%d address_id=%d", customerID, address.ID)
	return nil
}

// DeleteCustomer hard-deletes a customer; the FK cascade removes all their
// addresses in the same transaction.
func (s *CustomerService) DeleteCustomer(id int) error {
	err := s.RunTx(func(tx *sql.Tx) error {
		existing, err := s.CustomerRepo.GetByID(tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return appErrors.NewNotFound("customer", id)
		}

		deleted, err := s.CustomerRepo.DeleteByID(tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return appErrors.NewNotFound("customer", id)
		}
		log.Printf("customer hard-deleted: id=%d", id)
		return nil
	})
	if err != nil {
		return err
	}

	s.publishEvent(queue.EventCustomerDeleted, id)
	return nil
}

// publishEvent notifies the queue after a commit, best effort. A broker outage
// must never roll back a committed write, so failures are only logged.
func (s *CustomerService) publishEvent(eventType string, customerID int) {
	if s.Queue == nil {
		return
	}
	err := s.Queue.Publish(queue.TopicCustomerEvents, queue.CustomerEvent{
		Type:       eventType,
		CustomerID: customerID,
	})
	if err != nil {
		log.Println("failed to publish customer event:", err)
	}
}
