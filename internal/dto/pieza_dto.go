package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistroPiezaRequest registers one incoming physical part. Product fields are
// only required when codigo_original is unseen — the service enforces that
// cross-field rule, not the schema.
type RegistroPiezaRequest struct {
	CodigoOriginal      string  `json:"codigo_original" validate:"required"`
	NumeroSerie         string  `json:"numero_serie"    validate:"required"`
	NombreProducto      string  `json:"nombre_producto"`
	DescripcionProducto *string `json:"descripcion_producto"`
	CategoriaProducto   *string `json:"categoria_producto"`
	Caja                string  `json:"caja" validate:"required"`
	// IDUsuario defaults to the authenticated user when omitted.
	IDUsuario uint `json:"id_usuario"`
}

type SalidaRequest struct {
	IDPieza       uint   `json:"id_pieza" validate:"required"`
	IDUsuario     uint   `json:"id_usuario"`
	Observaciones string `json:"observaciones"`
}

type CambioEstadoRequest struct {
	IDPieza       uint   `json:"id_pieza"     validate:"required"`
	NuevoEstado   string `json:"nuevo_estado" validate:"required"`
	IDUsuario     uint   `json:"id_usuario"`
	Observaciones string `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RegistroPiezaResponse struct {
	Mensaje      string `json:"mensaje"`
	CodigoOtech  string `json:"codigo_otech"`
	RutaEtiqueta string `json:"ruta_etiqueta"`
	IDPieza      uint   `json:"id_pieza"`
}

// PiezaDetalle is the joined read view of a pieza with product and user names.
// Field names line up with the raw query aliases so gorm can Scan directly.
type PiezaDetalle struct {
	IDPieza        uint      `json:"id_pieza"`
	CodigoBarras   string    `json:"codigo_barras"`
	NumeroSerie    string    `json:"numero_serie"`
	Estado         string    `json:"estado"`
	Caja           *string   `json:"caja"`
	FechaRegistro  time.Time `json:"fecha_registro"`
	NombreProducto string    `json:"nombre_producto"`
	UsuarioNombre  string    `json:"usuario_nombre"`
}
