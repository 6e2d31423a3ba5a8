package model

import "time"

// Roles del sistema.
// Rol: "admin" | "salida" | "operador"
const (
	RolAdmin    = "admin"
	RolSalida   = "salida"   // autorizado a registrar salidas
	RolOperador = "operador" // rol por defecto
)

// RolValido reports whether rol belongs to the closed role set.
func RolValido(rol string) bool {
	return rol == RolAdmin || rol == RolSalida || rol == RolOperador
}

// PuedeRegistrarSalida reports whether the role may record outbound movements.
func PuedeRegistrarSalida(rol string) bool {
	return rol == RolAdmin || rol == RolSalida
}

// Usuario stores system users with role-based access. Accounts are logically
// deactivated via Activo, never hard-deleted.
type Usuario struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"uniqueIndex;not null"`
	// Nombre is treated as unique by the admin duplicate checks. Rejecting two
	// people who share a common name is questionable; relax here if needed.
	Nombre       string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null;default:'operador'"`
	Activo       bool   `gorm:"not null;default:true"`
	UltimoLogin  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuario" }
