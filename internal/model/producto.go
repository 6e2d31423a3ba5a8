package model

import "time"

// Producto is a catalog entry; every physical Pieza instantiates exactly one
// Producto. Created on first registration of an unseen codigo_original, never
// hard-deleted.
type Producto struct {
	ID             uint    `gorm:"primaryKey" json:"id_producto"`
	CodigoOriginal string  `gorm:"uniqueIndex;not null" json:"codigo_original"`
	Nombre         string  `gorm:"not null" json:"nombre"`
	Descripcion    *string `json:"descripcion"`
	// Categoria holds the drone model this part belongs to, when known.
	Categoria   *string `json:"categoria"`
	StockMinimo int     `gorm:"not null;default:0" json:"stock_minimo"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName keeps the original singular table name.
func (Producto) TableName() string { return "producto" }
