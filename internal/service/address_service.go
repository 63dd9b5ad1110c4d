// internal/service/address_service.go
package service

import (
	"database/sql"
	"log"

	"github.com/unclebandit/cms-backend/internal/db"
	appErrors "github.com/unclebandit/cms-backend/internal/errors"
	"github.com/unclebandit/cms-backend/internal/model"
	"github.com/unclebandit/cms-backend/internal/repository"
)

// AddressService covers the standalone address use cases: listing a
// customer's addresses, adding one, and updating or deleting one by id.
type AddressService struct {
	AddressRepo   repository.AddressRepositoryInterface
	CustomerRepo  repository.CustomerRepositoryInterface
	ReferenceRepo repository.ReferenceRepositoryInterface
	RunTx         func(db.TxFn) error
}

// ListByCustomer returns all addresses for a customer, oldest first.
func (s *AddressService) ListByCustomer(customerID int) ([]model.Address, error) {
	customer, err := s.CustomerRepo.GetByID(nil, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, appErrors.NewNotFound("customer", customerID)
	}
	return s.AddressRepo.ListByCustomerID(nil, customerID)
}

// AddAddress attaches a new address to an existing customer. The city/state
// pair is validated pre-flight; the transaction re-verifies the customer
// still exists before inserting.
func (s *AddressService) AddAddress(customerID int, in CreateAddressInput) (*model.Address, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := validateCityState(s.ReferenceRepo, in.City, in.State); err != nil {
		return nil, err
	}

	var result *model.Address
	err := s.RunTx(func(tx *sql.Tx) error {
		// Re-verify on the open tx so a concurrently deleted customer is a
		// NotFound here rather than an FK violation on the insert.
		customer, err := s.CustomerRepo.GetByID(tx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return appErrors.NewNotFound("customer", customerID)
		}

		address, err := s.AddressRepo.Create(tx, customerID, in.repoInput())
		if err != nil {
			return err
		}
		log.Printf("address created: id=%d customer_id=%d", address.ID, customerID)
		result = address
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateAddress applies a partial update to one address. When city or state is
// changing, the pair is validated using the stored value for whichever half
// the payload omits.
func (s *AddressService) UpdateAddress(id int, in UpdateAddressInput) (*model.Address, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !in.HasFields() {
		return nil, appErrors.NewValidation("at least one field must be provided for update")
	}

	existing, err := s.AddressRepo.GetByID(nil, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, appErrors.NewNotFound("address", id)
	}

	if in.City != nil || in.State != nil {
		effCity := existing.City
		if in.City != nil {
			effCity = *in.City
		}
		effState := existing.State
		if in.State != nil {
			effState = *in.State
		}
		if err := validateCityState(s.ReferenceRepo, effCity, effState); err != nil {
			return nil, err
		}
	}

	updated, err := s.AddressRepo.Update(nil, id, in.repoInput())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, appErrors.NewNotFound("address", id)
	}

	log.Printf("address updated: id=%d", id)
	return updated, nil
}

// DeleteAddress hard-deletes one address.
func (s *AddressService) DeleteAddress(id int) error {
	return s.RunTx(func(tx *sql.Tx) error {
		existing, err := s.AddressRepo.GetByID(tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return appErrors.NewNotFound("address", id)
		}

		deleted, err := s.AddressRepo.DeleteByID(tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return appErrors.NewNotFound("address", id)
		}
		log.Printf("address hard-deleted: id=%d", id)
		return nil
	})
}
