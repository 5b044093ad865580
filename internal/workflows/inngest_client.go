package workflows

import (
	"context"
	"fmt"

	"github.com/inngest/inngestgo"
	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/config"
	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// Nombres de los eventos de dominio publicados
const (
	EventReceivableReceived = "receivable/received"
	EventFuelEntryRecorded  = "fuel-entry/recorded"
)

// EventSender es el subconjunto del cliente de Inngest usado para publicar eventos
type EventSender interface {
	Send(ctx context.Context, evt any) (string, error)
}

// InngestClient publica los eventos de dominio en Inngest
type InngestClient struct {
	client EventSender
	logger *logrus.Logger
}

// NewInngestClient crea una nueva instancia del cliente
func NewInngestClient(cfg *config.Config, logger *logrus.Logger) (*InngestClient, error) {
	if cfg.Inngest.EventKey == "" && !cfg.Inngest.Dev {
		return nil, fmt.Errorf("INNGEST_EVENT_KEY not configured")
	}

	opts := inngestgo.ClientOpts{
		AppID: cfg.Inngest.AppID,
	}
	if cfg.Inngest.EventKey != "" {
		opts.EventKey = &cfg.Inngest.EventKey
	}
	if cfg.Inngest.SigningKey != "" {
		opts.SigningKey = &cfg.Inngest.SigningKey
	}

	client, err := inngestgo.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("error creating Inngest client: %w", err)
	}

	return NewInngestClientWithSender(client, logger), nil
}

// NewInngestClientWithSender envuelve un emisor de eventos existente
func NewInngestClientWithSender(sender EventSender, logger *logrus.Logger) *InngestClient {
	return &InngestClient{
		client: sender,
		logger: logger,
	}
}

// PublishReceivableReceived publica que una cuenta por cobrar fue recibida
func (c *InngestClient) PublishReceivableReceived(ctx context.Context, r *models.AccountReceivable) error {
	data := map[string]any{
		"receivable_id":        r.ID,
		"sale_id":              r.SaleID,
		"sale_number":          r.SaleNumber,
		"customer_name":        r.CustomerName,
		"final_amount":         r.FinalAmount.String(),
		"receipt_date":         r.ReceiptDate.Ptr(),
		"receipt_url":          r.ReceiptURL.Ptr(),
		"receiving_account_id": r.ReceivingAccountID.Ptr(),
	}
	return c.send(ctx, EventReceivableReceived, r.ID, data)
}

// PublishFuelEntryRecorded publica que se registró un abastecimiento
func (c *InngestClient) PublishFuelEntryRecorded(ctx context.Context, f *models.FuelEntry) error {
	data := map[string]any{
		"fuel_entry_id":  f.ID,
		"vehicle_id":     f.VehicleID,
		"fuel_type":      f.FuelType.String(),
		"liters":         f.Liters.String(),
		"odometer_value": f.OdometerValue.String(),
	}
	if total, ok := f.TotalCost.Get(); ok {
		data["total_cost"] = total.String()
	}
	return c.send(ctx, EventFuelEntryRecorded, f.ID, data)
}

func (c *InngestClient) send(ctx context.Context, name, id string, data map[string]any) error {
	dedupID := name + ":" + id
	eventID, err := c.client.Send(ctx, inngestgo.Event{
		ID:   &dedupID,
		Name: name,
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("error sending %s event: %w", name, err)
	}

	c.logger.WithFields(logrus.Fields{
		"event":    name,
		"event_id": eventID,
		"record":   id,
	}).Info("Event published to Inngest")

	return nil
}
