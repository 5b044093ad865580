package email

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// Sender es el subconjunto del cliente de Resend usado para enviar correos
type Sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendService maneja el envío de correos electrónicos usando Resend API
type ResendService struct {
	sender    Sender
	fromEmail string
	notifyTo  []string
	baseURL   string
	logger    *logrus.Logger
}

// NewResendService crea una nueva instancia de ResendService.
// notifyTo es la lista de destinatarios separada por comas.
func NewResendService(apiKey, fromEmail, notifyTo, baseURL string, logger *logrus.Logger) *ResendService {
	return newResendService(resend.NewClient(apiKey).Emails, fromEmail, notifyTo, baseURL, logger)
}

func newResendService(sender Sender, fromEmail, notifyTo, baseURL string, logger *logrus.Logger) *ResendService {
	var recipients []string
	for _, addr := range strings.Split(notifyTo, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return &ResendService{
		sender:    sender,
		fromEmail: fromEmail,
		notifyTo:  recipients,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
	}
}

var receivedTemplate = template.Must(template.New("received").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Recebimento registrado</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #f8f9fa; padding: 20px; text-align: center; border-radius: 8px; }
        .total { font-size: 18px; font-weight: bold; color: #198754; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Recebimento registrado</h1>
            <p>Venda {{.SaleNumber}}</p>
        </div>
        <ul>
            <li><strong>Cliente:</strong> {{.CustomerName}}</li>
            <li><strong>Forma de pagamento:</strong> {{.PaymentMethodName}}</li>
            <li><strong>Conta:</strong> {{.AccountName}}</li>
            <li><strong>Data do recebimento:</strong> {{.ReceiptDate}}</li>
            <li><strong>Valor:</strong> <span class="total">R$ {{.FinalAmount}}</span></li>
        </ul>
        {{if .ReceiptURL}}<p><a href="{{.ReceiptURL}}">Ver comprovante</a></p>{{end}}
        <p><a href="{{.Link}}">Abrir no sistema</a></p>
    </div>
</body>
</html>`))

// SendReceivableReceived notifica que una cuenta por cobrar fue recibida.
// Sin destinatarios configurados no envía nada.
func (s *ResendService) SendReceivableReceived(ctx context.Context, r *models.AccountReceivable) error {
	if len(s.notifyTo) == 0 {
		s.logger.WithField("receivable_id", r.ID).Debug("No notification recipients configured, skipping email")
		return nil
	}

	receiptDate := ""
	if d, ok := r.ReceiptDate.Get(); ok {
		receiptDate = d.Format("02/01/2006")
	}

	var body strings.Builder
	err := receivedTemplate.Execute(&body, map[string]string{
		"SaleNumber":        r.SaleNumber,
		"CustomerName":      r.CustomerName,
		"PaymentMethodName": r.PaymentMethodName,
		"AccountName":       r.ReceivingAccountName.OrElse("-"),
		"ReceiptDate":       receiptDate,
		"FinalAmount":       r.FinalAmount.StringFixed(2),
		"ReceiptURL":        r.ReceiptURL.OrElse(""),
		"Link":              fmt.Sprintf("%s/v1/receivables/%s", s.baseURL, r.ID),
	})
	if err != nil {
		return fmt.Errorf("error rendering email: %w", err)
	}

	subject := fmt.Sprintf("Recebimento registrado - venda %s - %s", r.SaleNumber, r.CustomerName)
	result, err := s.sender.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      s.notifyTo,
		Subject: subject,
		Html:    body.String(),
	})
	if err != nil {
		return fmt.Errorf("error sending email via Resend: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"email_id":      result.Id,
		"receivable_id": r.ID,
		"to":            s.notifyTo,
		"subject":       subject,
	}).Info("Email sent successfully via Resend")

	return nil
}
