package service

import (
	"context"
	"fmt"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/apierror"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/dto"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/infra"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/model"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TxRunner executes fn inside one storage transaction: any error rolls every
// write back. Production wiring passes gorm's db.Transaction.
type TxRunner func(fn func(tx *gorm.DB) error) error

// GenerarCodigoOtech builds the label code for a new pieza:
// "OTech-" + 8 uppercase hex chars (fresh random per call) + "-" + first 8
// chars of the serial number. Uniqueness is backed by the DB index; a random
// collision is treated as practically impossible.
func GenerarCodigoOtech(numeroSerie string) string {
	id := uuid.New()
	prefijo := numeroSerie
	if len(prefijo) > 8 {
		prefijo = prefijo[:8]
	}
	return fmt.Sprintf("OTech-%X-%s", id[:4], prefijo)
}

// RegistroService covers the pieza lifecycle: registration, state changes and
// outbound movements, plus the read paths scanners use.
type RegistroService interface {
	RegistrarPieza(ctx context.Context, req dto.RegistroPiezaRequest) (*dto.RegistroPiezaResponse, error)
	RegistrarSalida(ctx context.Context, req dto.SalidaRequest) error
	CambiarEstado(ctx context.Context, req dto.CambioEstadoRequest) error
	ObtenerPieza(ctx context.Context, codigo string) (*dto.PiezaDetalle, error)
	ListarMovimientos(ctx context.Context, piezaID uint) ([]model.Movimiento, error)
}

type registroService struct {
	productos   repository.ProductoRepository
	piezas      repository.PiezaRepository
	movimientos repository.MovimientoRepository
	usuarios    repository.UsuarioRepository
	codesPath   string
	runTx       TxRunner
	// etiqueta renders the label file; swapped in tests.
	etiqueta func(codigo, storagePath string) (string, error)
}

func NewRegistroService(
	productos repository.ProductoRepository,
	piezas repository.PiezaRepository,
	movimientos repository.MovimientoRepository,
	usuarios repository.UsuarioRepository,
	codesPath string,
	runTx TxRunner,
) RegistroService {
	return &registroService{
		productos:   productos,
		piezas:      piezas,
		movimientos: movimientos,
		usuarios:    usuarios,
		codesPath:   codesPath,
		runTx:       runTx,
		etiqueta:    infra.GenerarEtiqueta,
	}
}

// RegistrarPieza runs the central registration flow in ONE transaction:
// resolve-or-create producto, create pieza with generated barcode, render the
// label, append the entrada movimiento. A failure at any step rolls all rows
// back; the label write is idempotent, so at worst an orphan PNG remains.
func (s *registroService) RegistrarPieza(ctx context.Context, req dto.RegistroPiezaRequest) (*dto.RegistroPiezaResponse, error) {
	// Pre-check outside the tx keeps the common duplicate case cheap; the
	// unique index on numero_serie closes the race.
	existente, err := s.piezas.FindByNumeroSerie(ctx, req.NumeroSerie)
	if err != nil {
		return nil, apierror.DataAccess("Error al verificar el número de serie", err)
	}
	if existente != nil {
		return nil, apierror.Conflict("Número de serie ya registrado")
	}

	var resp *dto.RegistroPiezaResponse
	err = s.runTx(func(tx *gorm.DB) error {
		producto, err := s.productos.FindByCodigoOriginalTx(tx, req.CodigoOriginal)
		if err != nil {
			return apierror.DataAccess("Error al buscar el producto", err)
		}

		var productoID uint
		if producto == nil {
			if req.NombreProducto == "" {
				return apierror.Validation("Nombre del producto requerido para nuevo producto")
			}
			nuevo := &model.Producto{
				CodigoOriginal: req.CodigoOriginal,
				Nombre:         req.NombreProducto,
				Descripcion:    req.DescripcionProducto,
				Categoria:      req.CategoriaProducto,
			}
			if err := s.productos.CreateTx(tx, nuevo); err != nil {
				return apierror.DataAccess("Error al crear el producto", err)
			}
			productoID = nuevo.ID
		} else {
			productoID = producto.ID
		}

		codigo := GenerarCodigoOtech(req.NumeroSerie)
		caja := req.Caja
		pieza := &model.Pieza{
			ProductoID:   productoID,
			NumeroSerie:  req.NumeroSerie,
			CodigoBarras: codigo,
			Estado:       model.EstadoNuevo,
			UsuarioID:    req.IDUsuario,
			Caja:         &caja,
		}
		if err := s.piezas.CreateTx(tx, pieza); err != nil {
			return apierror.DataAccess("Error al crear la pieza", err)
		}

		// Label write happens before commit: a commit failure leaves only a
		// harmless PNG; a label failure aborts the whole registration.
		ruta, err := s.etiqueta(codigo, s.codesPath)
		if err != nil {
			return apierror.DataAccess("No se pudo generar la etiqueta", err)
		}

		estadoInicial := model.EstadoNuevo
		mov := &model.Movimiento{
			PiezaID:       pieza.ID,
			Tipo:          model.MovimientoEntrada,
			EstadoNuevo:   &estadoInicial,
			UsuarioID:     req.IDUsuario,
			Observaciones: "Pieza registrada e ingresada al sistema",
		}
		if err := s.movimientos.CreateTx(tx, mov); err != nil {
			return apierror.DataAccess("Error al registrar el movimiento", err)
		}

		resp = &dto.RegistroPiezaResponse{
			Mensaje:      "Pieza registrada exitosamente",
			CodigoOtech:  codigo,
			RutaEtiqueta: ruta,
			IDPieza:      pieza.ID,
		}
		return nil
	})
	if err != nil {
		return nil, apierror.From(err)
	}
	return resp, nil
}

// RegistrarSalida retires a stored pieza. Only admin and salida roles may do
// it; the role is re-read from the store, not trusted from the request.
func (s *registroService) RegistrarSalida(ctx context.Context, req dto.SalidaRequest) error {
	pieza, err := s.piezas.FindByID(ctx, req.IDPieza)
	if err != nil {
		return apierror.DataAccess("Error al buscar la pieza", err)
	}
	if pieza == nil {
		return apierror.NotFound("Pieza no encontrada")
	}
	if pieza.Estado != model.EstadoAlmacenado {
		return apierror.Validation("La pieza no está en almacén")
	}

	usuario, err := s.usuarios.FindByID(ctx, req.IDUsuario)
	if err != nil {
		return apierror.DataAccess("Error al buscar el usuario", err)
	}
	if usuario == nil {
		return apierror.NotFound("Usuario no encontrado")
	}
	if !model.PuedeRegistrarSalida(usuario.Rol) {
		return apierror.Authorization("Acceso denegado: no tienes permiso para registrar salidas")
	}

	return s.transicionar(pieza, model.EstadoSalida, model.MovimientoSalida, req.IDUsuario, req.Observaciones)
}

// CambiarEstado applies any legal edge of the state machine and records the
// transition. Moving to salida goes through the same role check as
// RegistrarSalida.
func (s *registroService) CambiarEstado(ctx context.Context, req dto.CambioEstadoRequest) error {
	if !model.EstadoValido(req.NuevoEstado) {
		return apierror.Validation(fmt.Sprintf("Estado desconocido: %q", req.NuevoEstado))
	}

	pieza, err := s.piezas.FindByID(ctx, req.IDPieza)
	if err != nil {
		return apierror.DataAccess("Error al buscar la pieza", err)
	}
	if pieza == nil {
		return apierror.NotFound("Pieza no encontrada")
	}
	if !model.TransicionValida(pieza.Estado, req.NuevoEstado) {
		return apierror.Validation(fmt.Sprintf(
			"Transición de estado no permitida: %s → %s", pieza.Estado, req.NuevoEstado))
	}

	usuario, err := s.usuarios.FindByID(ctx, req.IDUsuario)
	if err != nil {
		return apierror.DataAccess("Error al buscar el usuario", err)
	}
	if usuario == nil {
		return apierror.NotFound("Usuario no encontrado")
	}
	if req.NuevoEstado == model.EstadoSalida && !model.PuedeRegistrarSalida(usuario.Rol) {
		return apierror.Authorization("Acceso denegado: no tienes permiso para registrar salidas")
	}

	return s.transicionar(pieza, req.NuevoEstado, model.MovimientoCambioEstado, req.IDUsuario, req.Observaciones)
}

// transicionar updates the estado and appends the movimiento atomically.
func (s *registroService) transicionar(pieza *model.Pieza, nuevoEstado, tipo string, usuarioID uint, observaciones string) error {
	anterior := pieza.Estado
	err := s.runTx(func(tx *gorm.DB) error {
		if err := s.piezas.UpdateEstadoTx(tx, pieza.ID, nuevoEstado); err != nil {
			return apierror.DataAccess("Error al actualizar el estado", err)
		}
		mov := &model.Movimiento{
			PiezaID:        pieza.ID,
			Tipo:           tipo,
			EstadoAnterior: &anterior,
			EstadoNuevo:    &nuevoEstado,
			UsuarioID:      usuarioID,
			Observaciones:  observaciones,
		}
		if err := s.movimientos.CreateTx(tx, mov); err != nil {
			return apierror.DataAccess("Error al registrar el movimiento", err)
		}
		return nil
	})
	if err != nil {
		return apierror.From(err)
	}
	pieza.Estado = nuevoEstado
	return nil
}

// ObtenerPieza resolves a scanner input: first as codigo de barras, then as
// numero de serie.
func (s *registroService) ObtenerPieza(ctx context.Context, codigo string) (*dto.PiezaDetalle, error) {
	detalle, err := s.piezas.FindDetalleByCodigoBarras(ctx, codigo)
	if err != nil {
		return nil, apierror.DataAccess("Error al buscar la pieza", err)
	}
	if detalle == nil {
		detalle, err = s.piezas.FindDetalleByNumeroSerie(ctx, codigo)
		if err != nil {
			return nil, apierror.DataAccess("Error al buscar la pieza", err)
		}
	}
	if detalle == nil {
		return nil, apierror.NotFound("Pieza no encontrada")
	}
	return detalle, nil
}

func (s *registroService) ListarMovimientos(ctx context.Context, piezaID uint) ([]model.Movimiento, error) {
	pieza, err := s.piezas.FindByID(ctx, piezaID)
	if err != nil {
		return nil, apierror.DataAccess("Error al buscar la pieza", err)
	}
	if pieza == nil {
		return nil, apierror.NotFound("Pieza no encontrada")
	}
	movimientos, err := s.movimientos.ListByPieza(ctx, piezaID)
	if err != nil {
		return nil, apierror.DataAccess("Error al listar los movimientos", err)
	}
	return movimientos, nil
}
