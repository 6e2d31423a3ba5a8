package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/apierror"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/dto"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/infra"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/repository"
)

// InventarioService exposes the read-side flows: full listing, low-stock
// alerts and the spreadsheet export.
type InventarioService interface {
	ListarInventario(ctx context.Context) ([]dto.PiezaDetalle, error)
	ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
	// ExportarInventario returns the workbook bytes and the download filename.
	ExportarInventario(ctx context.Context) (*bytes.Buffer, string, error)
}

type inventarioService struct {
	productos repository.ProductoRepository
	piezas    repository.PiezaRepository
}

func NewInventarioService(productos repository.ProductoRepository, piezas repository.PiezaRepository) InventarioService {
	return &inventarioService{productos: productos, piezas: piezas}
}

func (s *inventarioService) ListarInventario(ctx context.Context) ([]dto.PiezaDetalle, error) {
	rows, err := s.piezas.ListInventario(ctx)
	if err != nil {
		return nil, apierror.DataAccess("Error: No se pudo conectar a la base de datos", err)
	}
	return rows, nil
}

func (s *inventarioService) ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	alertas, err := s.productos.ListAlertasStockBajo(ctx)
	if err != nil {
		return nil, apierror.DataAccess("Error al obtener alertas", err)
	}
	return alertas, nil
}

func (s *inventarioService) ExportarInventario(ctx context.Context) (*bytes.Buffer, string, error) {
	rows, err := s.piezas.ListInventario(ctx)
	if err != nil {
		return nil, "", apierror.DataAccess("Error al consultar el inventario", err)
	}
	buf, err := infra.GenerarInventarioXLSX(rows)
	if err != nil {
		return nil, "", apierror.DataAccess("Error al generar el archivo", err)
	}
	filename := fmt.Sprintf("inventario_otech_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf, filename, nil
}
