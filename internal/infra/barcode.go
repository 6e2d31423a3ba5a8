package infra

// barcode.go — code128 label rendering. Each registered pieza gets a PNG under
// the codes directory, named after its codigo de barras so a re-render of the
// same code overwrites the previous file (idempotent by construction).

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// Label pixel dimensions — wide enough for a scannable code128 of ~25 chars.
const (
	etiquetaAncho = 400
	etiquetaAlto  = 160
)

// GenerarEtiqueta renders codigo as a code128 PNG inside storagePath (created
// if needed) and returns the path of the written file.
func GenerarEtiqueta(codigo, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("barcode: create storage dir: %w", err)
	}

	bc, err := code128.Encode(codigo)
	if err != nil {
		return "", fmt.Errorf("barcode: encode %q: %w", codigo, err)
	}
	scaled, err := barcode.Scale(bc, etiquetaAncho, etiquetaAlto)
	if err != nil {
		return "", fmt.Errorf("barcode: scale: %w", err)
	}

	filePath := filepath.Join(storagePath, codigo+".png")
	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("barcode: write file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, scaled); err != nil {
		return "", fmt.Errorf("barcode: encode png: %w", err)
	}
	return filePath, nil
}
