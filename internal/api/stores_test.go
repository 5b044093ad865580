package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hypernova-labs/backoffice-service/internal/database"
	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// memoryStore guarda registros en memoria para probar los handlers de punta a punta
type memoryStore struct {
	mu          sync.Mutex
	seq         int
	customers   map[string]models.Customer
	accounts    map[string]models.ReceivingAccount
	receivables map[string]models.AccountReceivable
	vehicles    map[string]models.Vehicle
	entries     map[string]models.FuelEntry
	uploads     map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		customers:   map[string]models.Customer{},
		accounts:    map[string]models.ReceivingAccount{},
		receivables: map[string]models.AccountReceivable{},
		vehicles:    map[string]models.Vehicle{},
		entries:     map[string]models.FuelEntry{},
		uploads:     map[string][]byte{},
	}
}

func (s *memoryStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

type customerStore struct{ *memoryStore }

func (s customerStore) Create(_ context.Context, c *models.Customer) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.customers {
		if existing.Code == c.Code {
			return nil, database.ErrDuplicateCode
		}
	}
	created := *c
	created.ID = s.nextID("cus")
	s.customers[created.ID] = created
	return &created, nil
}

func (s customerStore) GetByID(_ context.Context, id string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &c, nil
}

func (s customerStore) List(_ context.Context, activeOnly bool) ([]models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Customer
	for _, c := range s.customers {
		if !activeOnly || c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s customerStore) Update(_ context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = *c
	return nil
}

func (s customerStore) Deactivate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return database.ErrNotFound
	}
	c.Active = false
	s.customers[id] = c
	return nil
}

type accountStore struct{ *memoryStore }

func (s accountStore) Create(_ context.Context, a *models.ReceivingAccount) (*models.ReceivingAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *a
	created.ID = s.nextID("acc")
	s.accounts[created.ID] = created
	return &created, nil
}

func (s accountStore) GetByID(_ context.Context, id string) (*models.ReceivingAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &a, nil
}

func (s accountStore) List(_ context.Context, activeOnly bool) ([]models.ReceivingAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ReceivingAccount
	for _, a := range s.accounts {
		if !activeOnly || a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s accountStore) Deactivate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return database.ErrNotFound
	}
	a.Active = false
	s.accounts[id] = a
	return nil
}

type receivableStore struct{ *memoryStore }

func (s receivableStore) Create(_ context.Context, r *models.AccountReceivable) (*models.AccountReceivable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *r
	created.ID = s.nextID("rec")
	s.receivables[created.ID] = created
	return &created, nil
}

func (s receivableStore) GetByID(_ context.Context, id string) (*models.AccountReceivable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.receivables[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &r, nil
}

func (s receivableStore) List(_ context.Context, status models.Optional[models.ReceivableStatus]) ([]models.AccountReceivable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.AccountReceivable
	for _, r := range s.receivables {
		if want, ok := status.Get(); !ok || r.Status == want {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s receivableStore) Transition(_ context.Context, id string, fn func(*models.AccountReceivable) (*models.AccountReceivable, error)) (*models.AccountReceivable, error) {
	s.mu.Lock()
	current, ok := s.receivables[id]
	s.mu.Unlock()
	if !ok {
		return nil, database.ErrNotFound
	}

	next, err := fn(&current)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.receivables[id] = *next
	return next, nil
}

func (s receivableStore) SetReceiptURL(_ context.Context, id, url string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.receivables[id]
	if !ok {
		return database.ErrNotFound
	}
	r.ReceiptURL = models.Some(url)
	r.UpdatedAt = updatedAt
	s.receivables[id] = r
	return nil
}

type vehicleStore struct{ *memoryStore }

func (s vehicleStore) Create(_ context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *v
	created.ID = s.nextID("veh")
	s.vehicles[created.ID] = created
	return &created, nil
}

func (s vehicleStore) GetByID(_ context.Context, id string) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &v, nil
}

func (s vehicleStore) List(_ context.Context, activeOnly bool) ([]models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Vehicle
	for _, v := range s.vehicles {
		if !activeOnly || v.Active {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s vehicleStore) Update(_ context.Context, v *models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[v.ID] = *v
	return nil
}

func (s vehicleStore) Deactivate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	if !ok {
		return database.ErrNotFound
	}
	v.Active = false
	s.vehicles[id] = v
	return nil
}

type fuelEntryStore struct{ *memoryStore }

func (s fuelEntryStore) Create(_ context.Context, f *models.FuelEntry) (*models.FuelEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := f.WithoutAnnotation()
	created.ID = s.nextID("fuel")
	s.entries[created.ID] = created
	return &created, nil
}

func (s fuelEntryStore) annotate(f models.FuelEntry) models.FuelEntry {
	if v, ok := s.vehicles[f.VehicleID]; ok {
		f.Vehicle = &v
	}
	return f
}

func (s fuelEntryStore) GetByID(_ context.Context, id string) (*models.FuelEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.entries[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	annotated := s.annotate(f)
	return &annotated, nil
}

func (s fuelEntryStore) ListByVehicle(_ context.Context, vehicleID string) ([]models.FuelEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.FuelEntry
	for _, f := range s.entries {
		if f.VehicleID == vehicleID {
			out = append(out, s.annotate(f))
		}
	}
	return out, nil
}

type receiptStore struct{ *memoryStore }

func (s receiptStore) Upload(_ context.Context, receivableID, filename string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "https://files.example.com/receipts/" + receivableID + "/" + filename
	s.uploads[url] = data
	return url, nil
}

func (s receiptStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploads, url)
	return nil
}

type healthStub struct{ err error }

func (h healthStub) HealthCheck(context.Context) error { return h.err }
