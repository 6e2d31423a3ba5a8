package infra

// excel.go — xlsx inventory snapshot. A pure read-and-render operation: the
// joined inventory rows go in, a styled workbook comes out.

import (
	"bytes"
	"fmt"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/dto"

	"github.com/xuri/excelize/v2"
)

const hojaInventario = "Inventario"

var encabezadosInventario = []string{
	"ID Pieza", "Código de Barras", "Número de Serie", "Estado",
	"Caja", "Fecha Registro", "Producto", "Registrado Por",
}

// GenerarInventarioXLSX builds the spreadsheet snapshot of all piezas joined
// with product and registering-user names, with a styled header row.
func GenerarInventarioXLSX(rows []dto.PiezaDetalle) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hojaInventario); err != nil {
		return nil, fmt.Errorf("excel: rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F81BD"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: header style: %w", err)
	}

	for i, h := range encabezadosInventario {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(hojaInventario, cell, h); err != nil {
			return nil, fmt.Errorf("excel: header cell: %w", err)
		}
	}
	if err := f.SetCellStyle(hojaInventario, "A1", "H1", headerStyle); err != nil {
		return nil, fmt.Errorf("excel: apply header style: %w", err)
	}

	for i, row := range rows {
		caja := ""
		if row.Caja != nil {
			caja = *row.Caja
		}
		values := []interface{}{
			row.IDPieza, row.CodigoBarras, row.NumeroSerie, row.Estado,
			caja, row.FechaRegistro.Format("2006-01-02 15:04:05"),
			row.NombreProducto, row.UsuarioNombre,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(hojaInventario, cell, v); err != nil {
				return nil, fmt.Errorf("excel: row %d: %w", i+2, err)
			}
		}
	}

	if err := f.SetColWidth(hojaInventario, "A", "H", 22); err != nil {
		return nil, fmt.Errorf("excel: column width: %w", err)
	}

	return f.WriteToBuffer()
}
