package service

// In-memory repository stubs shared by the service tests. They honor the
// repository contracts: lookups return (nil, nil) when no row matches.

import (
	"context"
	"time"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/dto"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/model"

	"gorm.io/gorm"
)

// passTx runs the callback without a real transaction.
func passTx(fn func(tx *gorm.DB) error) error { return fn(nil) }

// fakeEtiqueta replaces the PNG renderer so tests touch no filesystem.
func fakeEtiqueta(codigo, storagePath string) (string, error) {
	return storagePath + "/" + codigo + ".png", nil
}

// ── ProductoRepository ──────────────────────────────────────────────────────

type stubProductoRepo struct {
	nextID    uint
	porCodigo map[string]*model.Producto
	alertas   []dto.AlertaStockResponse
	err       error
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{nextID: 1, porCodigo: map[string]*model.Producto{}}
}

func (s *stubProductoRepo) FindByCodigoOriginal(_ context.Context, codigo string) (*model.Producto, error) {
	return s.porCodigo[codigo], s.err
}

func (s *stubProductoRepo) FindByCodigoOriginalTx(_ *gorm.DB, codigo string) (*model.Producto, error) {
	return s.porCodigo[codigo], s.err
}

func (s *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	return s.CreateTx(nil, p)
}

func (s *stubProductoRepo) CreateTx(_ *gorm.DB, p *model.Producto) error {
	if s.err != nil {
		return s.err
	}
	p.ID = s.nextID
	s.nextID++
	s.porCodigo[p.CodigoOriginal] = p
	return nil
}

func (s *stubProductoRepo) ListAlertasStockBajo(_ context.Context) ([]dto.AlertaStockResponse, error) {
	return s.alertas, s.err
}

// ── PiezaRepository ─────────────────────────────────────────────────────────

type stubPiezaRepo struct {
	nextID     uint
	porID      map[uint]*model.Pieza
	detalles   map[string]*dto.PiezaDetalle // keyed by codigo_barras OR numero_serie
	inventario []dto.PiezaDetalle
	err        error
}

func newStubPiezaRepo() *stubPiezaRepo {
	return &stubPiezaRepo{
		nextID:   1,
		porID:    map[uint]*model.Pieza{},
		detalles: map[string]*dto.PiezaDetalle{},
	}
}

func (s *stubPiezaRepo) agregar(p *model.Pieza) *model.Pieza {
	p.ID = s.nextID
	s.nextID++
	s.porID[p.ID] = p
	return p
}

func (s *stubPiezaRepo) FindByID(_ context.Context, id uint) (*model.Pieza, error) {
	return s.porID[id], s.err
}

func (s *stubPiezaRepo) FindByNumeroSerie(_ context.Context, serie string) (*model.Pieza, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.porID {
		if p.NumeroSerie == serie {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubPiezaRepo) ExistsByCodigoBarras(_ context.Context, codigo string) (bool, error) {
	for _, p := range s.porID {
		if p.CodigoBarras == codigo {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubPiezaRepo) FindDetalleByCodigoBarras(_ context.Context, codigo string) (*dto.PiezaDetalle, error) {
	return s.detalles[codigo], s.err
}

func (s *stubPiezaRepo) FindDetalleByNumeroSerie(_ context.Context, serie string) (*dto.PiezaDetalle, error) {
	return s.detalles[serie], s.err
}

func (s *stubPiezaRepo) CreateTx(_ *gorm.DB, p *model.Pieza) error {
	if s.err != nil {
		return s.err
	}
	s.agregar(p)
	return nil
}

func (s *stubPiezaRepo) UpdateEstadoTx(_ *gorm.DB, id uint, estado string) error {
	if s.err != nil {
		return s.err
	}
	if p, ok := s.porID[id]; ok {
		p.Estado = estado
	}
	return nil
}

func (s *stubPiezaRepo) ListInventario(_ context.Context) ([]dto.PiezaDetalle, error) {
	return s.inventario, s.err
}

// ── MovimientoRepository ────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []model.Movimiento
	err         error
}

func (s *stubMovimientoRepo) Create(_ context.Context, m *model.Movimiento) error {
	return s.CreateTx(nil, m)
}

func (s *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.Movimiento) error {
	if s.err != nil {
		return s.err
	}
	m.ID = uint(len(s.movimientos) + 1)
	s.movimientos = append(s.movimientos, *m)
	return nil
}

func (s *stubMovimientoRepo) ListByPieza(_ context.Context, piezaID uint) ([]model.Movimiento, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []model.Movimiento
	for i := len(s.movimientos) - 1; i >= 0; i-- {
		if s.movimientos[i].PiezaID == piezaID {
			out = append(out, s.movimientos[i])
		}
	}
	return out, nil
}

// ── UsuarioRepository ───────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	nextID       uint
	porID        map[uint]*model.Usuario
	ultimoLogins map[uint]time.Time
	err          error
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{nextID: 1, porID: map[uint]*model.Usuario{}, ultimoLogins: map[uint]time.Time{}}
}

func (s *stubUsuarioRepo) agregar(u *model.Usuario) *model.Usuario {
	u.ID = s.nextID
	s.nextID++
	s.porID[u.ID] = u
	return u
}

func (s *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if s.err != nil {
		return s.err
	}
	s.agregar(u)
	return nil
}

func (s *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.porID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	return s.porID[id], s.err
}

func (s *stubUsuarioRepo) FindDuplicate(_ context.Context, username, email, nombre string, excludeID uint) (*model.Usuario, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.porID {
		if u.ID == excludeID {
			continue
		}
		if u.Username == username || u.Email == email || u.Nombre == nombre {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range s.porID {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, s.err
}

func (s *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range s.porID {
		out = append(out, *u)
	}
	return out, s.err
}

func (s *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	if s.err != nil {
		return s.err
	}
	s.porID[u.ID] = u
	return nil
}

func (s *stubUsuarioRepo) SetActivo(_ context.Context, id uint, activo bool) error {
	if s.err != nil {
		return s.err
	}
	if u, ok := s.porID[id]; ok {
		u.Activo = activo
	}
	return nil
}

func (s *stubUsuarioRepo) UpdateUltimoLogin(_ context.Context, id uint, t time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.ultimoLogins[id] = t
	return nil
}
