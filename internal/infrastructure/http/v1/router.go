package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/auth"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/batch"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/customer"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/size"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/supplier"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/variety"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/intake"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/http/v1/handlers"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/http/v1/middleware"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/storage/postgres"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/storage/postgres/batch_repo"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/storage/postgres/intake_repo"
	"github.com/Patrickdoranlearning/hortitrack-sub010/pkg/logger"
	"github.com/Patrickdoranlearning/hortitrack-sub010/pkg/numerator"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager manages transactions for all repositories
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// Numerator for batch and intake number generation
	Numerator *numerator.Service

	// Audit records entity change history
	Audit *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1 - all endpoints require a valid token
	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.Auth(cfg.JWTValidator))
	apiV1.Use(middleware.UserContext())
	{
		registerCatalogRoutes(apiV1, cfg)
		registerBatchRoutes(apiV1, cfg)
		registerIntakeRoutes(apiV1, cfg)
		registerAuditRoutes(apiV1, cfg)
	}

	return router
}

// registerCatalogRoutes registers reference data endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- VARIETIES ---
	{
		repo := catalog_repo.NewVarietyRepo(cfg.TxManager)
		service := variety.NewService(repo, cfg.TxManager, cfg.Numerator)
		registerCatalogAudit(service.Hooks(), cfg.Audit, "variety",
			func(v *variety.PlantVariety) (id.ID, map[string]any) {
				return v.ID, map[string]any{"code": v.Code, "name": v.Name, "genus": v.Genus}
			})
		handler := handlers.NewVarietyHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/varieties"), handler, auth.RoleOffice)
	}

	// --- SIZES ---
	{
		repo := catalog_repo.NewSizeRepo(cfg.TxManager)
		service := size.NewService(repo, cfg.TxManager, cfg.Numerator)
		registerCatalogAudit(service.Hooks(), cfg.Audit, "size",
			func(s *size.PlantSize) (id.ID, map[string]any) {
				return s.ID, map[string]any{"code": s.Code, "name": s.Name}
			})
		handler := handlers.NewSizeHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/sizes"), handler, auth.RoleOffice)
	}

	// --- SUPPLIERS ---
	{
		repo := catalog_repo.NewSupplierRepo(cfg.TxManager)
		service := supplier.NewService(repo, cfg.TxManager, cfg.Numerator)
		registerCatalogAudit(service.Hooks(), cfg.Audit, "supplier",
			func(s *supplier.Supplier) (id.ID, map[string]any) {
				return s.ID, map[string]any{"code": s.Code, "name": s.Name}
			})
		handler := handlers.NewSupplierHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/suppliers"), handler, auth.RoleOffice)
	}

	// --- CUSTOMERS ---
	{
		repo := catalog_repo.NewCustomerRepo(cfg.TxManager)
		service := customer.NewService(repo, cfg.TxManager, cfg.Numerator)
		registerCatalogAudit(service.Hooks(), cfg.Audit, "customer",
			func(c *customer.Customer) (id.ID, map[string]any) {
				return c.ID, map[string]any{"code": c.Code, "name": c.Name}
			})
		handler := handlers.NewCustomerHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/customers"), handler, auth.RoleOffice)
	}
}

// registerBatchRoutes registers batch lifecycle endpoints.
func registerBatchRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	repo := batch_repo.NewBatchRepo(cfg.TxManager)
	service := batch.NewService(repo, cfg.TxManager, cfg.Numerator)
	handler := handlers.NewBatchHandler(baseHandler, service)

	write := middleware.RequireRole(auth.RoleGrower, auth.RoleOffice)
	grower := middleware.RequireRole(auth.RoleGrower)

	batches := rg.Group("/batches")
	{
		batches.GET("", handler.List)
		batches.POST("", write, handler.Create)
		batches.GET("/by-number/:number", handler.GetByNumber)
		batches.GET("/:id", handler.Get)
		batches.PUT("/:id", write, handler.Update)
		batches.POST("/:id/archive", write, handler.Archive)
		batches.GET("/:id/ledger", handler.Ledger)
		batches.GET("/:id/events", handler.ListEvents)
		batches.POST("/:id/events", grower, handler.RecordEvent)
		batches.GET("/:id/allocations", handler.ListAllocations)
		batches.POST("/:id/allocations", write, handler.Allocate)
		batches.POST("/:id/allocations/:allocId/pick", grower, handler.PickAllocation)
		batches.POST("/:id/split", grower, handler.Split)
	}
}

// registerIntakeRoutes registers supplier order intake endpoints.
func registerIntakeRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	repo := intake_repo.NewUploadRepo(cfg.TxManager)
	varietyRepo := catalog_repo.NewVarietyRepo(cfg.TxManager)
	sizeRepo := catalog_repo.NewSizeRepo(cfg.TxManager)
	supplierRepo := catalog_repo.NewSupplierRepo(cfg.TxManager)
	service := intake.NewService(repo, cfg.TxManager, cfg.Numerator, varietyRepo, sizeRepo, supplierRepo)
	handler := handlers.NewIntakeHandler(baseHandler, service)

	office := middleware.RequireRole(auth.RoleOffice)

	intakeGroup := rg.Group("/intake")
	{
		intakeGroup.POST("/match", handler.Match)
		intakeGroup.POST("/extractions", office, handler.ImportExtraction)
		intakeGroup.GET("/uploads", handler.List)
		intakeGroup.POST("/uploads", office, handler.ImportCSV)
		intakeGroup.GET("/uploads/:id", handler.Get)
		intakeGroup.POST("/uploads/:id/confirm", office, handler.Confirm)
		intakeGroup.POST("/uploads/:id/reject", office, handler.Reject)
	}
}

// registerAuditRoutes registers the entity history endpoint.
func registerAuditRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Audit == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewAuditHandler(baseHandler, cfg.Audit)

	rg.GET("/audit/:entityType/:id", middleware.RequireRole(auth.RoleOffice), handler.History)
}

// registerCatalogAudit wires audit logging into a catalog's hook
// registry. A nil audit service disables logging.
func registerCatalogAudit[T any](
	hooks *domain.HookRegistry[T],
	auditSvc *postgres.AuditService,
	entityType string,
	describe func(T) (id.ID, map[string]any),
) {
	if auditSvc == nil {
		return
	}

	hooks.OnAfterCreate(func(ctx context.Context, e T) error {
		entityID, changes := describe(e)
		return auditSvc.LogChange(ctx, entityType, entityID, postgres.AuditActionCreate, changes)
	})
	hooks.OnAfterUpdate(func(ctx context.Context, e T) error {
		entityID, changes := describe(e)
		return auditSvc.LogChange(ctx, entityType, entityID, postgres.AuditActionUpdate, changes)
	})
	hooks.OnAfterDelete(func(ctx context.Context, e T) error {
		entityID, _ := describe(e)
		return auditSvc.LogChange(ctx, entityType, entityID, postgres.AuditActionDelete, nil)
	})
}
