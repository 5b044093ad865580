package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// DocumentGenerator genera el comprobante de cobro en PDF
type DocumentGenerator struct {
	logger *logrus.Logger
	now    func() time.Time
}

// NewDocumentGenerator crea una nueva instancia del generador
func NewDocumentGenerator(logger *logrus.Logger) *DocumentGenerator {
	return &DocumentGenerator{
		logger: logger,
		now:    time.Now,
	}
}

// GenerateReceiptPDF genera el comprobante de una cuenta por cobrar ya cobrada
func (d *DocumentGenerator) GenerateReceiptPDF(r *models.AccountReceivable) ([]byte, error) {
	receiptDate, ok := r.ReceiptDate.Get()
	if !r.IsReceived() || !ok {
		return nil, fmt.Errorf("receivable %s has not been received", r.ID)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Header con color de fondo
	pdf.SetFillColor(41, 128, 185)
	pdf.Rect(0, 0, 210, 40, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 22)
	pdf.Cell(190, 15, tr("COMPROVANTE DE RECEBIMENTO"))
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(190, 10, fmt.Sprintf("Venda #%s", r.SaleNumber))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(190, 8, tr(fmt.Sprintf("Recebido em: %s", receiptDate.Format("02/01/2006"))))
	pdf.Ln(8)

	// Datos de la venta
	pdf.SetTextColor(44, 62, 80)
	pdf.SetY(50)
	rows := [][2]string{
		{"Cliente", r.CustomerName},
		{"Forma de pagamento", r.PaymentMethodName},
		{"Conta de recebimento", r.ReceivingAccountName.OrElse("-")},
		{"Venda", r.SaleID},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(60, 7, tr(row[0]))
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(130, 7, tr(row[1]))
		pdf.Ln(7)
	}

	// Valores
	pdf.SetY(pdf.GetY() + 10)
	pdf.SetFillColor(236, 240, 241)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(120, 10, tr("Descrição"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 10, "Valor", "1", 0, "R", true, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	amounts := [][2]string{
		{"Valor original", brl(r.OriginalAmount.StringFixed(2))},
		{"Juros / multa", brl(r.InterestPenalty.StringFixed(2))},
	}
	for _, row := range amounts {
		pdf.CellFormat(120, 8, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 8, row[1], "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}

	// Total destacado
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(120, 12, "TOTAL RECEBIDO", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 12, brl(r.FinalAmount.StringFixed(2)), "1", 0, "R", true, 0, "")
	pdf.Ln(12)

	if url, ok := r.ReceiptURL.Get(); ok {
		pdf.Ln(6)
		pdf.SetTextColor(44, 62, 80)
		pdf.SetFont("Arial", "", 9)
		pdf.Cell(190, 6, tr("Comprovante anexado: ")+url)
	}

	// Footer
	pdf.SetY(270)
	pdf.SetTextColor(149, 165, 166)
	pdf.SetFont("Arial", "", 8)
	pdf.Cell(190, 6, tr("Documento gerado eletronicamente pelo backoffice"))
	pdf.Ln(6)
	pdf.Cell(190, 6, fmt.Sprintf("Gerado em: %s", d.now().UTC().Format("02/01/2006 15:04:05")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error generating PDF: %w", err)
	}

	d.logger.WithFields(logrus.Fields{
		"receivable_id": r.ID,
		"pdf_size":      buf.Len(),
	}).Info("Receipt document generated successfully")

	return buf.Bytes(), nil
}

func brl(amount string) string {
	return "R$ " + amount
}
