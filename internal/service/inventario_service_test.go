package service

import (
	"context"
	"testing"
	"time"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/apierror"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestListarInventario(t *testing.T) {
	productos := newStubProductoRepo()
	piezas := newStubPiezaRepo()
	piezas.inventario = []dto.PiezaDetalle{
		{IDPieza: 2, NumeroSerie: "SN-2"},
		{IDPieza: 1, NumeroSerie: "SN-1"},
	}
	svc := NewInventarioService(productos, piezas)

	rows, err := svc.ListarInventario(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestObtenerAlertas(t *testing.T) {
	productos := newStubProductoRepo()
	productos.alertas = []dto.AlertaStockResponse{
		{IDProducto: 1, Nombre: "Fuente", StockMinimo: 5, StockActual: 2},
	}
	svc := NewInventarioService(productos, newStubPiezaRepo())

	alertas, err := svc.ObtenerAlertas(context.Background())
	require.NoError(t, err)
	require.Len(t, alertas, 1)
	assert.Equal(t, 2, alertas[0].StockActual)
}

func TestExportarInventario(t *testing.T) {
	productos := newStubProductoRepo()
	piezas := newStubPiezaRepo()
	caja := "C-3"
	piezas.inventario = []dto.PiezaDetalle{{
		IDPieza:        7,
		CodigoBarras:   "OTech-AABBCCDD-SN-7",
		NumeroSerie:    "SN-7",
		Estado:         "almacenado",
		Caja:           &caja,
		FechaRegistro:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		NombreProducto: "Fuente",
		UsuarioNombre:  "Maria",
	}}
	svc := NewInventarioService(productos, piezas)

	buf, filename, err := svc.ExportarInventario(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, `^inventario_otech_\d{8}_\d{6}\.xlsx$`, filename)

	// The buffer holds a readable workbook with the exported row.
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	serie, err := f.GetCellValue("Inventario", "C2")
	require.NoError(t, err)
	assert.Equal(t, "SN-7", serie)
}

func TestExportarInventarioErrorDeConsulta(t *testing.T) {
	piezas := newStubPiezaRepo()
	piezas.err = assert.AnError
	svc := NewInventarioService(newStubProductoRepo(), piezas)

	_, _, err := svc.ExportarInventario(context.Background())
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindDataAccess, apiErr.Kind)
}
