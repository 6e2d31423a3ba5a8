package handler

import (
	"net/http"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/dto"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/service"

	"github.com/gin-gonic/gin"
)

type PiezasHandler struct{ svc service.RegistroService }

func NewPiezasHandler(svc service.RegistroService) *PiezasHandler {
	return &PiezasHandler{svc: svc}
}

// Registrar godoc
// @Summary Registra una pieza entrante y genera su etiqueta
// @Tags piezas
// @Accept json
// @Produce json
// @Param body body dto.RegistroPiezaRequest true "Datos de la pieza"
// @Success 200 {object} dto.RegistroPiezaResponse
// @Failure 400 {object} apierror.APIError
// @Router /registrar_pieza [post]
func (h *PiezasHandler) Registrar(c *gin.Context) {
	var req dto.RegistroPiezaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	req.IDUsuario = actingUserID(c, req.IDUsuario)

	resp, err := h.svc.RegistrarPieza(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PiezasHandler) RegistrarSalida(c *gin.Context) {
	var req dto.SalidaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	req.IDUsuario = actingUserID(c, req.IDUsuario)

	if err := h.svc.RegistrarSalida(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Salida registrada exitosamente"})
}

func (h *PiezasHandler) CambiarEstado(c *gin.Context) {
	var req dto.CambioEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	req.IDUsuario = actingUserID(c, req.IDUsuario)

	if err := h.svc.CambiarEstado(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Estado actualizado exitosamente"})
}

// Obtener resolves a scanner input (codigo de barras or numero de serie).
func (h *PiezasHandler) Obtener(c *gin.Context) {
	codigo := c.Param("codigo")
	resp, err := h.svc.ObtenerPieza(c.Request.Context(), codigo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movimientos lists the audit trail of a pieza, newest first.
func (h *PiezasHandler) Movimientos(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
