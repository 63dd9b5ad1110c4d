package service_test

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/unclebandit/cms-backend/internal/db"
	appErrors "github.com/unclebandit/cms-backend/internal/errors"
	"github.com/unclebandit/cms-backend/internal/model"
	"github.com/unclebandit/cms-backend/internal/queue"
	"github.com/unclebandit/cms-backend/internal/repository"
	"github.com/unclebandit/cms-backend/internal/service"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// memStore backs the mock customer and address repositories with plain maps.
// While a unit of work is open it also keeps the pre-transaction state, so
// reads without the transaction handle see what a separate pooled connection
// would see under read committed, not this transaction's pending writes.
type memStore struct {
	customers      map[int]model.Customer
	addresses      map[int]model.Address
	nextCustomerID int
	nextAddressID  int

	// non-nil only while a transaction is open
	customersBefore map[int]model.Customer
	addressesBefore map[int]model.Address

	// transaction handles seen by the most recent reads
	lastCustomerGetTx *sql.Tx
	lastAddressListTx *sql.Tx
}

func newMemStore() *memStore {
	return &memStore{
		customers:      map[int]model.Customer{},
		addresses:      map[int]model.Address{},
		nextCustomerID: 1,
		nextAddressID:  1,
	}
}

// runTx is the unit-of-work runner for the mocks: writes go to the live maps,
// a rollback restores the snapshot, and pool-side reads are answered from the
// snapshot for as long as the transaction is open.
func (s *memStore) runTx(fn db.TxFn) error {
	s.customersBefore = make(map[int]model.Customer, len(s.customers))
	for id, c := range s.customers {
		s.customersBefore[id] = c
	}
	s.addressesBefore = make(map[int]model.Address, len(s.addresses))
	for id, a := range s.addresses {
		s.addressesBefore[id] = a
	}

	err := fn(&sql.Tx{})
	if err != nil {
		s.customers = s.customersBefore
		s.addresses = s.addressesBefore
	}
	s.customersBefore = nil
	s.addressesBefore = nil
	return err
}

func (s *memStore) viewCustomers(tx *sql.Tx) map[int]model.Customer {
	if tx == nil && s.customersBefore != nil {
		return s.customersBefore
	}
	return s.customers
}

func (s *memStore) viewAddresses(tx *sql.Tx) map[int]model.Address {
	if tx == nil && s.addressesBefore != nil {
		return s.addressesBefore
	}
	return s.addresses
}

// --- Mock customer repository ---

type MockCustomerRepo struct {
	store *memStore
}

func (m *MockCustomerRepo) GetByID(tx *sql.Tx, id int) (*model.Customer, error) {
	m.store.lastCustomerGetTx = tx
	if c, ok := m.store.viewCustomers(tx)[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *MockCustomerRepo) GetByEmail(email string) (*model.Customer, error) {
	for _, c := range m.store.viewCustomers(nil) {
		if strings.EqualFold(c.Email, email) {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockCustomerRepo) List(page, limit int, search string) ([]model.Customer, int, error) {
	all := []model.Customer{}
	for _, c := range m.store.viewCustomers(nil) {
		if search != "" {
			needle := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(c.FullName), needle) &&
				!strings.Contains(strings.ToLower(c.Email), needle) &&
				!strings.Contains(strings.ToLower(c.CompanyName), needle) {
				continue
			}
		}
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FullName < all[j].FullName })

	total := len(all)
	start := (page - 1) * limit
	if start >= total {
		return []model.Customer{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (m *MockCustomerRepo) Create(tx *sql.Tx, in repository.CustomerCreateInput) (*model.Customer, error) {
	// The unique constraint backstop: reject duplicates even when the
	// pre-flight check was skipped or raced.
	for _, c := range m.store.customers {
		if strings.EqualFold(c.Email, in.Email) {
			return nil, appErrors.NewConflict("email '%s' is already registered", in.Email)
		}
	}
	c := model.Customer{
		ID:          m.store.nextCustomerID,
		FullName:    in.FullName,
		CompanyName: in.CompanyName,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		CreatedAt:   time.Now(),
	}
	m.store.nextCustomerID++
	m.store.customers[c.ID] = c
	return &c, nil
}

func (m *MockCustomerRepo) Update(tx *sql.Tx, id int, in repository.CustomerUpdateInput) (*model.Customer, error) {
	if !in.HasFields() {
		return nil, nil
	}
	c, ok := m.store.customers[id]
	if !ok {
		return nil, nil
	}
	if in.FullName != nil {
		c.FullName = *in.FullName
	}
	if in.CompanyName != nil {
		c.CompanyName = *in.CompanyName
	}
	if in.PhoneNumber != nil {
		c.PhoneNumber = *in.PhoneNumber
	}
	if in.Email != nil {
		for _, other := range m.store.customers {
			if other.ID != id && strings.EqualFold(other.Email, *in.Email) {
				return nil, appErrors.NewConflict("email '%s' is already registered", *in.Email)
			}
		}
		c.Email = *in.Email
	}
	now := time.Now()
	c.UpdatedAt = &now
	m.store.customers[id] = c
	return &c, nil
}

func (m *MockCustomerRepo) DeleteByID(tx *sql.Tx, id int) (bool, error) {
	if _, ok := m.store.customers[id]; !ok {
		return false, nil
	}
	delete(m.store.customers, id)
	// Mirror the ON DELETE CASCADE on addresses.
	for addrID, a := range m.store.addresses {
		if a.CustomerID == id {
			delete(m.store.addresses, addrID)
		}
	}
	return true, nil
}

// --- Mock address repository ---

type MockAddressRepo struct {
	store *memStore
}

func (m *MockAddressRepo) GetByID(tx *sql.Tx, id int) (*model.Address, error) {
	if a, ok := m.store.viewAddresses(tx)[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (m *MockAddressRepo) ListByCustomerID(tx *sql.Tx, customerID int) ([]model.Address, error) {
	m.store.lastAddressListTx = tx
	addresses := []model.Address{}
	for _, a := range m.store.viewAddresses(tx) {
		if a.CustomerID == customerID {
			addresses = append(addresses, a)
		}
	}
	sort.Slice(addresses, func(i, j int) bool { return addresses[i].ID < addresses[j].ID })
	return addresses, nil
}

func (m *MockAddressRepo) Create(tx *sql.Tx, customerID int, in repository.AddressCreateInput) (*model.Address, error) {
	a := model.Address{
		ID:              m.store.nextAddressID,
		CustomerID:      customerID,
		HouseFlatNumber: in.HouseFlatNumber,
		BuildingStreet:  in.BuildingStreet,
		LocalityArea:    in.LocalityArea,
		City:            in.City,
		State:           in.State,
		PinCode:         in.PinCode,
		CreatedAt:       time.Now(),
	}
	m.store.nextAddressID++
	m.store.addresses[a.ID] = a
	return &a, nil
}

func (m *MockAddressRepo) Update(tx *sql.Tx, id int, in repository.AddressUpdateInput) (*model.Address, error) {
	if !in.HasFields() {
		return nil, nil
	}
	a, ok := m.store.addresses[id]
	if !ok {
		return nil, nil
	}
	if in.HouseFlatNumber != nil {
		a.HouseFlatNumber = *in.HouseFlatNumber
	}
	if in.BuildingStreet != nil {
		a.BuildingStreet = *in.BuildingStreet
	}
	if in.LocalityArea != nil {
		a.LocalityArea = *in.LocalityArea
	}
	if in.City != nil {
		a.City = *in.City
	}
	if in.State != nil {
		a.State = *in.State
	}
	if in.PinCode != nil {
		a.PinCode = *in.PinCode
	}
	now := time.Now()
	a.UpdatedAt = &now
	m.store.addresses[id] = a
	return &a, nil
}

func (m *MockAddressRepo) DeleteByID(tx *sql.Tx, id int) (bool, error) {
	if _, ok := m.store.addresses[id]; !ok {
		return false, nil
	}
	delete(m.store.addresses, id)
	return true, nil
}

// --- Mock reference repository ---

type MockReferenceRepo struct{}

var refStates = []model.State{
	{ID: 1, Name: "Karnataka"},
	{ID: 2, Name: "Maharashtra"},
	{ID: 3, Name: "Gujarat"},
}

var refCities = []model.City{
	{ID: 1, Name: "Bengaluru", StateID: 1},
	{ID: 2, Name: "Mysuru", StateID: 1},
	{ID: 3, Name: "Mumbai", StateID: 2},
	{ID: 4, Name: "Pune", StateID: 2},
	{ID: 5, Name: "Ahmedabad", StateID: 3},
}

func (m *MockReferenceRepo) StateExists(name string) (bool, error) {
	for _, s := range refStates {
		if strings.EqualFold(s.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockReferenceRepo) CityExistsForState(cityName, stateName string) (bool, error) {
	for _, s := range refStates {
		if !strings.EqualFold(s.Name, stateName) {
			continue
		}
		for _, c := range refCities {
			if c.StateID == s.ID && strings.EqualFold(c.Name, cityName) {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *MockReferenceRepo) GetStateByID(id int) (*model.State, error) {
	for _, s := range refStates {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockReferenceRepo) ListStates() ([]model.State, error) {
	return refStates, nil
}

func (m *MockReferenceRepo) ListCities() ([]model.City, error) {
	return refCities, nil
}

func (m *MockReferenceRepo) ListCitiesByState(stateID int) ([]model.City, error) {
	cities := []model.City{}
	for _, c := range refCities {
		if c.StateID == stateID {
			cities = append(cities, c)
		}
	}
	return cities, nil
}

// --- Mock queue ---

type MockQueue struct {
	published []queue.CustomerEvent
}

func (m *MockQueue) Publish(topic string, payload any) error {
	if evt, ok := payload.(queue.CustomerEvent); ok {
		m.published = append(m.published, evt)
	}
	return nil
}

func (m *MockQueue) Subscribe(topic string, handler func(payload any) error) error {
	return nil
}

// --- Fixture helpers ---

func newCustomerService() (*service.CustomerService, *memStore, *MockQueue) {
	store := newMemStore()
	q := &MockQueue{}
	svc := &service.CustomerService{
		CustomerRepo:  &MockCustomerRepo{store: store},
		AddressRepo:   &MockAddressRepo{store: store},
		ReferenceRepo: &MockReferenceRepo{},
		RunTx:         store.runTx,
		Queue:         q,
	}
	return svc, store, q
}

func newAddressService(store *memStore) *service.AddressService {
	return &service.AddressService{
		AddressRepo:   &MockAddressRepo{store: store},
		CustomerRepo:  &MockCustomerRepo{store: store},
		ReferenceRepo: &MockReferenceRepo{},
		RunTx:         store.runTx,
	}
}

func validCreateInput() service.CreateCustomerInput {
	return service.CreateCustomerInput{
		FullName:    "Asha Rao",
		CompanyName: "Acme",
		PhoneNumber: "9876543210",
		Email:       "asha@acme.com",
		Address: service.CreateAddressInput{
			HouseFlatNumber: "12A",
			BuildingStreet:  "MG Road",
			LocalityArea:    "Indiranagar",
			City:            "Bengaluru",
			State:           "Karnataka",
			PinCode:         "560001",
		},
	}
}
