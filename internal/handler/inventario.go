package handler

import (
	"net/http"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// Listar returns all piezas joined with product and user names, newest first.
func (h *InventarioHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarInventario(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alertas lists products whose stored-part count is below their threshold.
func (h *InventarioHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.ObtenerAlertas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Exportar streams the xlsx snapshot as a timestamped download.
func (h *InventarioHandler) Exportar(c *gin.Context) {
	buf, filename, err := h.svc.ExportarInventario(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
