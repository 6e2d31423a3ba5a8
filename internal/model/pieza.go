package model

import "time"

// Estados del ciclo de vida de una pieza.
const (
	EstadoNuevo      = "nuevo"      // recién registrada
	EstadoAlmacenado = "almacenado" // ubicada en almacén
	EstadoSalida     = "salida"     // retirada del inventario (terminal)
)

// TransicionesValidas is the canonical, total state machine: every state maps
// to its set of allowed next states. Salida is terminal.
var TransicionesValidas = map[string][]string{
	EstadoNuevo:      {EstadoAlmacenado},
	EstadoAlmacenado: {EstadoSalida},
	EstadoSalida:     {},
}

// EstadoValido reports whether estado belongs to the closed state set.
func EstadoValido(estado string) bool {
	_, ok := TransicionesValidas[estado]
	return ok
}

// TransicionValida reports whether desde → hacia is a legal transition.
func TransicionValida(desde, hacia string) bool {
	for _, e := range TransicionesValidas[desde] {
		if e == hacia {
			return true
		}
	}
	return false
}

// Pieza is one physical serialized unit belonging to a Producto.
// CodigoBarras is generated at creation time (format OTech-<8 hex>-<serie[:8]>)
// and backed by a unique index; collisions are not actively checked beyond it.
type Pieza struct {
	ID           uint   `gorm:"primaryKey" json:"id_pieza"`
	ProductoID   uint   `gorm:"not null;index" json:"id_producto"`
	NumeroSerie  string `gorm:"uniqueIndex;not null" json:"numero_serie"`
	CodigoBarras string `gorm:"uniqueIndex;not null" json:"codigo_barras"`
	Estado       string `gorm:"type:varchar(20);not null;default:'nuevo'" json:"estado"`
	// UsuarioID references the registering user; users are never hard-deleted,
	// only deactivated, so the reference stays resolvable.
	UsuarioID     uint      `gorm:"not null" json:"id_usuario"`
	Caja          *string   `json:"caja"`
	FechaRegistro time.Time `gorm:"autoCreateTime" json:"fecha_registro"`

	Producto *Producto `gorm:"foreignKey:ProductoID" json:"-"`
}

func (Pieza) TableName() string { return "pieza" }
