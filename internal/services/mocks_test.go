package services

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/models"
	"github.com/hypernova-labs/backoffice-service/internal/validation"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testValidator() *validation.Validator {
	return validation.New(validation.WithClock(func() time.Time { return fixedNow }))
}

type customerStoreMock struct {
	CreateFunc     func(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	GetByIDFunc    func(ctx context.Context, id string) (*models.Customer, error)
	ListFunc       func(ctx context.Context, activeOnly bool) ([]models.Customer, error)
	UpdateFunc     func(ctx context.Context, customer *models.Customer) error
	DeactivateFunc func(ctx context.Context, id string) error
}

func (m *customerStoreMock) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	return m.CreateFunc(ctx, c)
}
func (m *customerStoreMock) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *customerStoreMock) List(ctx context.Context, activeOnly bool) ([]models.Customer, error) {
	return m.ListFunc(ctx, activeOnly)
}
func (m *customerStoreMock) Update(ctx context.Context, c *models.Customer) error {
	return m.UpdateFunc(ctx, c)
}
func (m *customerStoreMock) Deactivate(ctx context.Context, id string) error {
	return m.DeactivateFunc(ctx, id)
}

type accountStoreMock struct {
	CreateFunc     func(ctx context.Context, account *models.ReceivingAccount) (*models.ReceivingAccount, error)
	GetByIDFunc    func(ctx context.Context, id string) (*models.ReceivingAccount, error)
	ListFunc       func(ctx context.Context, activeOnly bool) ([]models.ReceivingAccount, error)
	DeactivateFunc func(ctx context.Context, id string) error
}

func (m *accountStoreMock) Create(ctx context.Context, a *models.ReceivingAccount) (*models.ReceivingAccount, error) {
	return m.CreateFunc(ctx, a)
}
func (m *accountStoreMock) GetByID(ctx context.Context, id string) (*models.ReceivingAccount, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *accountStoreMock) List(ctx context.Context, activeOnly bool) ([]models.ReceivingAccount, error) {
	return m.ListFunc(ctx, activeOnly)
}
func (m *accountStoreMock) Deactivate(ctx context.Context, id string) error {
	return m.DeactivateFunc(ctx, id)
}

type receivableStoreMock struct {
	CreateFunc        func(ctx context.Context, r *models.AccountReceivable) (*models.AccountReceivable, error)
	GetByIDFunc       func(ctx context.Context, id string) (*models.AccountReceivable, error)
	ListFunc          func(ctx context.Context, status models.Optional[models.ReceivableStatus]) ([]models.AccountReceivable, error)
	SetReceiptURLFunc func(ctx context.Context, id, url string, updatedAt time.Time) error

	// current es el registro que ve Transition
	current *models.AccountReceivable
}

func (m *receivableStoreMock) Create(ctx context.Context, r *models.AccountReceivable) (*models.AccountReceivable, error) {
	return m.CreateFunc(ctx, r)
}
func (m *receivableStoreMock) GetByID(ctx context.Context, id string) (*models.AccountReceivable, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *receivableStoreMock) List(ctx context.Context, status models.Optional[models.ReceivableStatus]) ([]models.AccountReceivable, error) {
	return m.ListFunc(ctx, status)
}
func (m *receivableStoreMock) Transition(_ context.Context, _ string, fn func(*models.AccountReceivable) (*models.AccountReceivable, error)) (*models.AccountReceivable, error) {
	next, err := fn(m.current)
	if err != nil {
		return nil, err
	}
	m.current = next
	return next, nil
}
func (m *receivableStoreMock) SetReceiptURL(ctx context.Context, id, url string, updatedAt time.Time) error {
	return m.SetReceiptURLFunc(ctx, id, url, updatedAt)
}

type vehicleStoreMock struct {
	CreateFunc     func(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	GetByIDFunc    func(ctx context.Context, id string) (*models.Vehicle, error)
	ListFunc       func(ctx context.Context, activeOnly bool) ([]models.Vehicle, error)
	UpdateFunc     func(ctx context.Context, v *models.Vehicle) error
	DeactivateFunc func(ctx context.Context, id string) error
}

func (m *vehicleStoreMock) Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	return m.CreateFunc(ctx, v)
}
func (m *vehicleStoreMock) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *vehicleStoreMock) List(ctx context.Context, activeOnly bool) ([]models.Vehicle, error) {
	return m.ListFunc(ctx, activeOnly)
}
func (m *vehicleStoreMock) Update(ctx context.Context, v *models.Vehicle) error {
	return m.UpdateFunc(ctx, v)
}
func (m *vehicleStoreMock) Deactivate(ctx context.Context, id string) error {
	return m.DeactivateFunc(ctx, id)
}

type fuelEntryStoreMock struct {
	CreateFunc        func(ctx context.Context, f *models.FuelEntry) (*models.FuelEntry, error)
	GetByIDFunc       func(ctx context.Context, id string) (*models.FuelEntry, error)
	ListByVehicleFunc func(ctx context.Context, vehicleID string) ([]models.FuelEntry, error)
}

func (m *fuelEntryStoreMock) Create(ctx context.Context, f *models.FuelEntry) (*models.FuelEntry, error) {
	return m.CreateFunc(ctx, f)
}
func (m *fuelEntryStoreMock) GetByID(ctx context.Context, id string) (*models.FuelEntry, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *fuelEntryStoreMock) ListByVehicle(ctx context.Context, vehicleID string) ([]models.FuelEntry, error) {
	return m.ListByVehicleFunc(ctx, vehicleID)
}

// memoryCache es un VehicleCache en memoria que cuenta accesos
type memoryCache struct {
	vehicles    map[string]models.Vehicle
	hits        int
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{vehicles: map[string]models.Vehicle{}}
}

func (c *memoryCache) GetVehicle(_ context.Context, id string) (*models.Vehicle, bool, error) {
	v, ok := c.vehicles[id]
	if !ok {
		return nil, false, nil
	}
	c.hits++
	return &v, true, nil
}
func (c *memoryCache) SetVehicle(_ context.Context, v *models.Vehicle) error {
	c.vehicles[v.ID] = *v
	return nil
}
func (c *memoryCache) InvalidateVehicle(_ context.Context, id string) error {
	delete(c.vehicles, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type eventsMock struct {
	received []string
	recorded []string
	err      error
}

func (m *eventsMock) PublishReceivableReceived(_ context.Context, r *models.AccountReceivable) error {
	m.received = append(m.received, r.ID)
	return m.err
}
func (m *eventsMock) PublishFuelEntryRecorded(_ context.Context, f *models.FuelEntry) error {
	m.recorded = append(m.recorded, f.ID)
	return m.err
}

type notifierMock struct {
	sent []string
	err  error
}

func (m *notifierMock) SendReceivableReceived(_ context.Context, r *models.AccountReceivable) error {
	m.sent = append(m.sent, r.ID)
	return m.err
}

type receiptStorageMock struct {
	UploadFunc func(ctx context.Context, receivableID, filename string, data []byte) (string, error)
	deleted    []string
}

func (m *receiptStorageMock) Upload(ctx context.Context, receivableID, filename string, data []byte) (string, error) {
	return m.UploadFunc(ctx, receivableID, filename, data)
}
func (m *receiptStorageMock) Delete(_ context.Context, url string) error {
	m.deleted = append(m.deleted, url)
	return nil
}
