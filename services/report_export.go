package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/utils"
)

var exportHeader = []string{"Data", "Pedido", "Cliente", "Total", "Pagamento", "Funcionário"}

func exportRow(o models.Order, loc *time.Location) []string {
	customer := o.CustomerName
	if customer == "" {
		customer = "N/A"
	}
	return []string{
		o.CreatedAt.In(loc).Format("02/01/2006"),
		o.ID,
		customer,
		"R$ " + o.Total.StringFixed(2),
		strings.ToUpper(string(o.PaymentMethod)),
		o.CashierName,
	}
}

// ExportOrdersCSV writes one row per order under the report header.
func ExportOrdersCSV(w io.Writer, orders []models.Order, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, o := range orders {
		if err := cw.Write(exportRow(o, loc)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportOrdersPDF renders the same table as ExportOrdersCSV on A4 pages,
// followed by the period total.
func ExportOrdersPDF(w io.Writer, title string, orders []models.Order, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(title), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	widths := []float64{24, 52, 34, 26, 24, 30}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 220, 240)
	for i, h := range exportHeader {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, o := range orders {
		row := exportRow(o, loc)
		row[1] = shortID(row[1])
		for i, v := range row {
			align := "L"
			if i == 3 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, tr(v), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	summary := fmt.Sprintf("Pedidos: %d    Total: %s", len(orders), utils.FormatCurrencyBRL(ordersTotal(orders)))
	pdf.CellFormat(0, 8, tr(summary), "", 1, "R", false, 0, "")

	return pdf.Output(w)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ExportFilename is the download name for a report of the given day.
func ExportFilename(date time.Time, format string) string {
	return fmt.Sprintf("relatorio-%s.%s", date.Format("2006-01-02"), format)
}
