package model

import "time"

// Tipos de movimiento.
const (
	MovimientoEntrada      = "entrada"
	MovimientoSalida       = "salida"
	MovimientoCambioEstado = "cambio_estado"
)

// Movimiento is the append-only audit record of an action on a Pieza.
// Every state change writes exactly one Movimiento in the same transaction;
// rows are never updated or deleted.
type Movimiento struct {
	ID             uint    `gorm:"primaryKey" json:"id_movimiento"`
	PiezaID        uint    `gorm:"not null;index" json:"id_pieza"`
	Tipo           string  `gorm:"not null" json:"tipo_movimiento"`
	EstadoAnterior *string `json:"estado_anterior"`
	EstadoNuevo    *string `json:"estado_nuevo"`
	UsuarioID      uint    `gorm:"not null" json:"id_usuario"`
	Observaciones  string  `json:"observaciones"`
	CreatedAt      time.Time `json:"fecha"`

	Pieza *Pieza `gorm:"foreignKey:PiezaID" json:"-"`
}

func (Movimiento) TableName() string { return "movimiento" }
