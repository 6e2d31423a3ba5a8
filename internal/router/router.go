package router

import (
	"time"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/config"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/handler"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/middleware"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/model"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/repository"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	piezaRepo := repository.NewPiezaRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	runTx := func(fn func(tx *gorm.DB) error) error { return db.Transaction(fn) }
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	registroSvc := service.NewRegistroService(productoRepo, piezaRepo, movimientoRepo,
		usuarioRepo, cfg.CodesStoragePath, runTx)
	inventarioSvc := service.NewInventarioService(productoRepo, piezaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	piezasH := handler.NewPiezasHandler(registroSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db))
	r.POST("/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes — role rules are declared here, not inside handlers.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	protegido := r.Group("/", jwtMW)
	{
		protegido.POST("/registrar_pieza", piezasH.Registrar)
		protegido.GET("/inventario", inventarioH.Listar)
		protegido.GET("/piezas/:codigo", piezasH.Obtener)
		protegido.GET("/movimientos/:id", piezasH.Movimientos)
		protegido.POST("/cambiar_estado", piezasH.CambiarEstado)
		protegido.GET("/alertas/stock_bajo", inventarioH.Alertas)
		protegido.GET("/exportar/inventario", inventarioH.Exportar)

		// The service re-validates the acting user's role against the store.
		protegido.POST("/registrar_salida",
			middleware.RequireRole(model.RolAdmin, model.RolSalida), piezasH.RegistrarSalida)

		admin := protegido.Group("/admin", middleware.RequireRole(model.RolAdmin))
		{
			admin.GET("/listar_usuarios", usuariosH.Listar)
			admin.POST("/crear_usuario", usuariosH.Crear)
			admin.PUT("/editar_usuario/:id", usuariosH.Actualizar)
			admin.PUT("/eliminar_usuario/:id", usuariosH.CambiarActivo)
			admin.GET("/obtener_usuario/:id", usuariosH.Obtener)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
