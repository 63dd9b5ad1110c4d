// internal/service/inputs.go
package service

import (
	appErrors "github.com/unclebandit/cms-backend/internal/errors"
	"github.com/unclebandit/cms-backend/internal/repository"
	"github.com/unclebandit/cms-backend/internal/validation"
)

// CreateAddressInput is the full address payload. All six fields are required.
type CreateAddressInput struct {
	HouseFlatNumber string `json:"house_flat_number"`
	BuildingStreet  string `json:"building_street"`
	LocalityArea    string `json:"locality_area"`
	City            string `json:"city"`
	State           string `json:"state"`
	PinCode         string `json:"pin_code"`
}

func (in CreateAddressInput) Validate() error {
	if !validation.Length(in.HouseFlatNumber, 50) {
		return appErrors.NewValidation("house/flat number is required and must be at most 50 characters")
	}
	if !validation.Length(in.BuildingStreet, 150) {
		return appErrors.NewValidation("building/street name is required and must be at most 150 characters")
	}
	if !validation.Length(in.LocalityArea, 100) {
		return appErrors.NewValidation("locality/area is required and must be at most 100 characters")
	}
	if !validation.Length(in.City, 100) {
		return appErrors.NewValidation("city is required and must be at most 100 characters")
	}
	if !validation.Length(in.State, 100) {
		return appErrors.NewValidation("state is required and must be at most 100 characters")
	}
	if !validation.PinCode(in.PinCode) {
		return appErrors.NewValidation("pin code must be exactly 6 digits")
	}
	return nil
}

func (in CreateAddressInput) repoInput() repository.AddressCreateInput {
	return repository.AddressCreateInput{
		HouseFlatNumber: in.HouseFlatNumber,
		BuildingStreet:  in.BuildingStreet,
		LocalityArea:    in.LocalityArea,
		City:            in.City,
		State:           in.State,
		PinCode:         in.PinCode,
	}
}

// CreateCustomerInput is the create-customer payload. An address is mandatory:
// a customer with zero addresses is an invalid state.
type CreateCustomerInput struct {
	FullName    string             `json:"full_name"`
	CompanyName string             `json:"company_name"`
	PhoneNumber string             `json:"phone_number"`
	Email       string             `json:"email"`
	Address     CreateAddressInput `json:"address"`
}

func (in CreateCustomerInput) Validate() error {
	if !validation.FullName(in.FullName) {
		return appErrors.NewValidation("full name is required and must contain only letters and spaces")
	}
	if !validation.Length(in.CompanyName, 150) {
		return appErrors.NewValidation("company name is required and must be at most 150 characters")
	}
	if !validation.PhoneNumber(in.PhoneNumber) {
		return appErrors.NewValidation("phone number must be 7 to 15 digits")
	}
	if !validation.Email(in.Email) {
		return appErrors.NewValidation("invalid email format")
	}
	return in.Address.Validate()
}

// UpdateAddressInput is a partial address payload. ID, when present, targets a
// specific address during a customer update; it is ignored on the standalone
// address route where the id comes from the URL.
type UpdateAddressInput struct {
	ID              *int    `json:"id"`
	HouseFlatNumber *string `json:"house_flat_number"`
	BuildingStreet  *string `json:"building_street"`
	LocalityArea    *string `json:"locality_area"`
	City            *string `json:"city"`
	State           *string `json:"state"`
	PinCode         *string `json:"pin_code"`
}

// HasFields reports whether any address column (id excluded) is present.
func (in UpdateAddressInput) HasFields() bool {
	return in.repoInput().HasFields()
}

func (in UpdateAddressInput) Validate() error {
	if in.HouseFlatNumber != nil && !validation.Length(*in.HouseFlatNumber, 50) {
		return appErrors.NewValidation("house/flat number cannot be empty and must be at most 50 characters")
	}
	if in.BuildingStreet != nil && !validation.Length(*in.BuildingStreet, 150) {
		return appErrors.NewValidation("building/street name cannot be empty and must be at most 150 characters")
	}
	if in.LocalityArea != nil && !validation.Length(*in.LocalityArea, 100) {
		return appErrors.NewValidation("locality/area cannot be empty and must be at most 100 characters")
	}
	if in.City != nil && !validation.Length(*in.City, 100) {
		return appErrors.NewValidation("city cannot be empty and must be at most 100 characters")
	}
	if in.State != nil && !validation.Length(*in.State, 100) {
		return appErrors.NewValidation("state cannot be empty and must be at most 100 characters")
	}
	if in.PinCode != nil && !validation.PinCode(*in.PinCode) {
		return appErrors.NewValidation("pin code must be exactly 6 digits")
	}
	return nil
}

func (in UpdateAddressInput) repoInput() repository.AddressUpdateInput {
	return repository.AddressUpdateInput{
		HouseFlatNumber: in.HouseFlatNumber,
		BuildingStreet:  in.BuildingStreet,
		LocalityArea:    in.LocalityArea,
		City:            in.City,
		State:           in.State,
		PinCode:         in.PinCode,
	}
}

// completeInput promotes the partial payload to a full create payload. Raised
// when an update has to synthesize a brand-new address row, which requires all
// six fields to be present.
func (in UpdateAddressInput) completeInput() (*repository.AddressCreateInput, error) {
	if in.HouseFlatNumber == nil || in.BuildingStreet == nil || in.LocalityArea == nil ||
		in.City == nil || in.State == nil || in.PinCode == nil {
		return nil, appErrors.NewValidation(
			"address requires house/flat number, building/street, locality/area, city, state and pin code when creating a new address")
	}
	return &repository.AddressCreateInput{
		HouseFlatNumber: *in.HouseFlatNumber,
		BuildingStreet:  *in.BuildingStreet,
		LocalityArea:    *in.LocalityArea,
		City:            *in.City,
		State:           *in.State,
		PinCode:         *in.PinCode,
	}, nil
}

// UpdateCustomerInput is the partial update payload for a customer and,
// optionally, one of its addresses.
type UpdateCustomerInput struct {
	FullName    *string             `json:"full_name"`
	CompanyName *string             `json:"company_name"`
	PhoneNumber *string             `json:"phone_number"`
	Email       *string             `json:"email"`
	Address     *UpdateAddressInput `json:"address"`
}

func (in UpdateCustomerInput) customerInput() repository.CustomerUpdateInput {
	return repository.CustomerUpdateInput{
		FullName:    in.FullName,
		CompanyName: in.CompanyName,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
	}
}

func (in UpdateCustomerInput) Validate() error {
	hasCustomerFields := in.customerInput().HasFields()
	hasAddressFields := in.Address != nil && in.Address.HasFields()
	if !hasCustomerFields && !hasAddressFields {
		return appErrors.NewValidation("at least one field must be provided for update")
	}

	if in.FullName != nil && !validation.FullName(*in.FullName) {
		return appErrors.NewValidation("full name cannot be empty and must contain only letters and spaces")
	}
	if in.CompanyName != nil && !validation.Length(*in.CompanyName, 150) {
		return appErrors.NewValidation("company name cannot be empty and must be at most 150 characters")
	}
	if in.PhoneNumber != nil && !validation.PhoneNumber(*in.PhoneNumber) {
		return appErrors.NewValidation("phone number must be 7 to 15 digits")
	}
	if in.Email != nil && !validation.Email(*in.Email) {
		return appErrors.NewValidation("invalid email format")
	}
	if in.Address != nil {
		return in.Address.Validate()
	}
	return nil
}
