package repository

import (
	"context"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/model"

	"gorm.io/gorm"
)

// MovimientoRepository is append-only: movements are never updated or deleted.
type MovimientoRepository interface {
	Create(ctx context.Context, m *model.Movimiento) error
	CreateTx(tx *gorm.DB, m *model.Movimiento) error
	ListByPieza(ctx context.Context, piezaID uint) ([]model.Movimiento, error)
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository {
	return &movimientoRepo{db: db}
}

func (r *movimientoRepo) Create(ctx context.Context, m *model.Movimiento) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movimientoRepo) CreateTx(tx *gorm.DB, m *model.Movimiento) error {
	return tx.Create(m).Error
}

func (r *movimientoRepo) ListByPieza(ctx context.Context, piezaID uint) ([]model.Movimiento, error) {
	var movimientos []model.Movimiento
	err := r.db.WithContext(ctx).
		Where("pieza_id = ?", piezaID).
		Order("created_at DESC").
		Find(&movimientos).Error
	return movimientos, err
}
