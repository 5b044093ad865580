package services

import (
	"context"
	"time"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// CustomerStore es la persistencia de clientes (database.CustomerRepository)
type CustomerStore interface {
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	List(ctx context.Context, activeOnly bool) ([]models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Deactivate(ctx context.Context, id string) error
}

// ReceivingAccountStore es la persistencia de cuentas de cobro
type ReceivingAccountStore interface {
	Create(ctx context.Context, account *models.ReceivingAccount) (*models.ReceivingAccount, error)
	GetByID(ctx context.Context, id string) (*models.ReceivingAccount, error)
	List(ctx context.Context, activeOnly bool) ([]models.ReceivingAccount, error)
	Deactivate(ctx context.Context, id string) error
}

// ReceivableStore es la persistencia de cuentas por cobrar
type ReceivableStore interface {
	Create(ctx context.Context, receivable *models.AccountReceivable) (*models.AccountReceivable, error)
	GetByID(ctx context.Context, id string) (*models.AccountReceivable, error)
	List(ctx context.Context, status models.Optional[models.ReceivableStatus]) ([]models.AccountReceivable, error)
	Transition(ctx context.Context, id string, fn func(current *models.AccountReceivable) (*models.AccountReceivable, error)) (*models.AccountReceivable, error)
	SetReceiptURL(ctx context.Context, id, url string, updatedAt time.Time) error
}

// VehicleStore es la persistencia de vehículos
type VehicleStore interface {
	Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	List(ctx context.Context, activeOnly bool) ([]models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Deactivate(ctx context.Context, id string) error
}

// FuelEntryStore es la persistencia de abastecimientos
type FuelEntryStore interface {
	Create(ctx context.Context, entry *models.FuelEntry) (*models.FuelEntry, error)
	GetByID(ctx context.Context, id string) (*models.FuelEntry, error)
	ListByVehicle(ctx context.Context, vehicleID string) ([]models.FuelEntry, error)
}

// VehicleCache es el cache de vehículos (database.Redis)
type VehicleCache interface {
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, bool, error)
	SetVehicle(ctx context.Context, vehicle *models.Vehicle) error
	InvalidateVehicle(ctx context.Context, id string) error
}

// ReceiptStorage guarda comprobantes y retorna su URL pública (storage.ReceiptStore)
type ReceiptStorage interface {
	Upload(ctx context.Context, receivableID, filename string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

// ReceivedNotifier avisa por email que una cuenta fue cobrada (email.ResendService)
type ReceivedNotifier interface {
	SendReceivableReceived(ctx context.Context, r *models.AccountReceivable) error
}

// EventPublisher publica eventos de dominio (workflows.InngestClient)
type EventPublisher interface {
	PublishReceivableReceived(ctx context.Context, r *models.AccountReceivable) error
	PublishFuelEntryRecorded(ctx context.Context, f *models.FuelEntry) error
}

// VehicleResolver obtiene un vehículo por ID; VehicleService lo implementa con cache
type VehicleResolver interface {
	Get(ctx context.Context, id string) (*models.Vehicle, error)
}
