package repository

import (
	"context"
	"errors"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/dto"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/model"

	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via mocks.
//
// Lookup methods return (nil, nil) when no row matches — "not found" is data,
// not an error; callers decide what it means.
type ProductoRepository interface {
	FindByCodigoOriginal(ctx context.Context, codigo string) (*model.Producto, error)
	FindByCodigoOriginalTx(tx *gorm.DB, codigo string) (*model.Producto, error)
	Create(ctx context.Context, p *model.Producto) error
	// CreateTx is used inside transactions — callers must pass the tx instance.
	CreateTx(tx *gorm.DB, p *model.Producto) error
	ListAlertasStockBajo(ctx context.Context) ([]dto.AlertaStockResponse, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) FindByCodigoOriginal(ctx context.Context, codigo string) (*model.Producto, error) {
	return findProducto(r.db.WithContext(ctx), codigo)
}

func (r *productoRepo) FindByCodigoOriginalTx(tx *gorm.DB, codigo string) (*model.Producto, error) {
	return findProducto(tx, codigo)
}

func findProducto(db *gorm.DB, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := db.Where("codigo_original = ?", codigo).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) CreateTx(tx *gorm.DB, p *model.Producto) error {
	return tx.Create(p).Error
}

// ListAlertasStockBajo counts piezas in estado "almacenado" per product and
// returns the products with a positive threshold that sit below it.
func (r *productoRepo) ListAlertasStockBajo(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	var alertas []dto.AlertaStockResponse
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id   AS id_producto,
		       p.nombre,
		       p.stock_minimo,
		       COUNT(pi.id) AS stock_actual
		FROM producto p
		LEFT JOIN pieza pi ON pi.producto_id = p.id AND pi.estado = ?
		WHERE p.stock_minimo > 0
		GROUP BY p.id, p.nombre, p.stock_minimo
		HAVING COUNT(pi.id) < p.stock_minimo`,
		model.EstadoAlmacenado).Scan(&alertas).Error
	return alertas, err
}
