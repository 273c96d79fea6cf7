package excel_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/analytics"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/excel"
)

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestRenderInventory_Columnas(t *testing.T) {
	out, err := excel.NewExporter().RenderInventory(context.Background(), &analytics.InventoryReport{
		Products: []entity.Product{
			{Name: "Paracetamol", SKU: "PAR-500", Category: "Analgésicos", Price: decimal.NewFromInt(10), Stock: 5, MinStock: 10, ExpiryDate: "2024-12-01", Supplier: "Lab X"},
		},
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)

	f := open(t, out)
	assert.Equal(t, []string{"Inventario"}, f.GetSheetList())
	rows, err := f.GetRows("Inventario")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"SKU", "Producto", "Categoría", "Stock", "Stock Mínimo", "Precio Unitario", "Valor Total", "Proveedor", "Fecha Vencimiento"}, rows[0])
	assert.Equal(t, []string{"PAR-500", "Paracetamol", "Analgésicos", "5", "10", "10", "50", "Lab X", "2024-12-01"}, rows[1])
}

func TestRenderSales_ProductosConCantidad(t *testing.T) {
	at := time.Date(2024, 5, 15, 9, 5, 0, 0, time.UTC)
	out, err := excel.NewExporter().RenderSales(context.Background(), &analytics.SalesReport{
		Sales: []entity.Sale{{
			Items: []entity.SaleItem{
				{Name: "Paracetamol", Quantity: 2, Price: decimal.NewFromInt(10)},
				{Name: "Suero", Quantity: 1, Price: decimal.RequireFromString("23.75")},
			},
			Total:     decimal.RequireFromString("43.75"),
			CreatedAt: at,
		}},
		GeneratedAt: at,
	})
	require.NoError(t, err)

	rows, err := open(t, out).GetRows("Ventas")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"15/05/2024", "09:05:00", "Paracetamol (2), Suero (1)", "3", "43.75"}, rows[1])
}
