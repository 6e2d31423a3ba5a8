package repository

import (
	"context"
	"errors"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/dto"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/model"

	"gorm.io/gorm"
)

// piezaDetalleQuery is the joined read view shared by the single lookup, the
// inventory listing and the spreadsheet export. LEFT JOINs keep rows visible
// even when the registering user was deactivated long ago.
const piezaDetalleQuery = `
	SELECT pi.id AS id_pieza,
	       pi.codigo_barras,
	       pi.numero_serie,
	       pi.estado,
	       pi.caja,
	       pi.fecha_registro,
	       pr.nombre AS nombre_producto,
	       COALESCE(u.nombre, 'Usuario eliminado') AS usuario_nombre
	FROM pieza pi
	LEFT JOIN producto pr ON pi.producto_id = pr.id
	LEFT JOIN usuario u ON pi.usuario_id = u.id`

type PiezaRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Pieza, error)
	FindByNumeroSerie(ctx context.Context, serie string) (*model.Pieza, error)
	ExistsByCodigoBarras(ctx context.Context, codigo string) (bool, error)
	FindDetalleByCodigoBarras(ctx context.Context, codigo string) (*dto.PiezaDetalle, error)
	FindDetalleByNumeroSerie(ctx context.Context, serie string) (*dto.PiezaDetalle, error)
	CreateTx(tx *gorm.DB, p *model.Pieza) error
	UpdateEstadoTx(tx *gorm.DB, id uint, estado string) error
	ListInventario(ctx context.Context) ([]dto.PiezaDetalle, error)
}

type piezaRepo struct{ db *gorm.DB }

func NewPiezaRepository(db *gorm.DB) PiezaRepository { return &piezaRepo{db: db} }

func (r *piezaRepo) FindByID(ctx context.Context, id uint) (*model.Pieza, error) {
	var p model.Pieza
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *piezaRepo) FindByNumeroSerie(ctx context.Context, serie string) (*model.Pieza, error) {
	var p model.Pieza
	err := r.db.WithContext(ctx).Where("numero_serie = ?", serie).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *piezaRepo) ExistsByCodigoBarras(ctx context.Context, codigo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Pieza{}).
		Where("codigo_barras = ?", codigo).Count(&count).Error
	return count > 0, err
}

func (r *piezaRepo) FindDetalleByCodigoBarras(ctx context.Context, codigo string) (*dto.PiezaDetalle, error) {
	return r.findDetalle(ctx, "pi.codigo_barras = ?", codigo)
}

func (r *piezaRepo) FindDetalleByNumeroSerie(ctx context.Context, serie string) (*dto.PiezaDetalle, error) {
	return r.findDetalle(ctx, "pi.numero_serie = ?", serie)
}

func (r *piezaRepo) findDetalle(ctx context.Context, cond string, arg string) (*dto.PiezaDetalle, error) {
	var rows []dto.PiezaDetalle
	err := r.db.WithContext(ctx).
		Raw(piezaDetalleQuery+" WHERE "+cond, arg).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *piezaRepo) CreateTx(tx *gorm.DB, p *model.Pieza) error {
	return tx.Create(p).Error
}

func (r *piezaRepo) UpdateEstadoTx(tx *gorm.DB, id uint, estado string) error {
	return tx.Model(&model.Pieza{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *piezaRepo) ListInventario(ctx context.Context) ([]dto.PiezaDetalle, error) {
	var rows []dto.PiezaDetalle
	err := r.db.WithContext(ctx).
		Raw(piezaDetalleQuery + " ORDER BY pi.fecha_registro DESC").Scan(&rows).Error
	return rows, err
}
