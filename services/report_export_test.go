package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/acai-pdv/models"
)

func exportFixture() []models.Order {
	return []models.Order{
		{
			ID: "order-1", Total: dec("37"), PaymentMethod: models.PaymentPix,
			CustomerName: "Ana", CreatedAt: testNow, CashierName: "Maria Santos",
		},
		{
			ID: "order-2", Total: dec("8.5"), PaymentMethod: models.PaymentCash,
			CreatedAt: testNow.Add(time.Hour), CashierName: "João Silva",
		},
	}
}

func TestExportOrdersCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportOrdersCSV(&buf, exportFixture(), time.UTC))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Data", "Pedido", "Cliente", "Total", "Pagamento", "Funcionário"}, rows[0])
	assert.Equal(t, []string{"15/03/2024", "order-1", "Ana", "R$ 37.00", "PIX", "Maria Santos"}, rows[1])
	assert.Equal(t, []string{"15/03/2024", "order-2", "N/A", "R$ 8.50", "DINHEIRO", "João Silva"}, rows[2])
}

func TestExportOrdersPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportOrdersPDF(&buf, "Relatório 15/03/2024", exportFixture(), time.UTC))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "relatorio-2024-03-15.csv", ExportFilename(testNow, "csv"))
}
