package server

import (
	"strings"

	"poultry-backend/internal/auth"
	"poultry-backend/internal/config"
	"poultry-backend/internal/expense"
	"poultry-backend/internal/feeding"
	"poultry-backend/internal/flock"
	"poultry-backend/internal/health"
	"poultry-backend/internal/inventory"
	"poultry-backend/internal/models"
	"poultry-backend/internal/notification"
	"poultry-backend/internal/production"
	"poultry-backend/internal/rbac"
	"poultry-backend/internal/report"
	"poultry-backend/internal/sales"
	"poultry-backend/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

// New builds the Fiber app with all routes mounted. Kept separate from main
// so handler tests can run requests against the full routing and middleware
// stack.
func New(cfg *config.Config, log *zap.Logger) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(cfg, log),
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Everything below requires a valid bearer token.
	protected := api.Group("", auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Get("/auth/permissions", auth.PermissionsHandler())

	// User management
	users := protected.Group("/users")
	users.Get("/", rbac.RequireRoute("users"), user.ListUsersHandler())
	users.Get("/:id", user.GetUserHandler())
	users.Put("/:id", user.UpdateUserHandler())
	users.Delete("/:id", rbac.RequireRoute("users"), user.DeleteUserHandler())

	// Flocks
	flocks := protected.Group("/flocks")
	flocks.Get("/stats/summary", flock.FlockStatsHandler())
	flocks.Get("/", flock.ListFlocksHandler())
	flocks.Post("/", rbac.RequirePermission(rbac.ResourceFlocks, rbac.ActionCreate), flock.CreateFlockHandler())
	flocks.Get("/:id", flock.GetFlockHandler())
	flocks.Put("/:id", rbac.RequirePermission(rbac.ResourceFlocks, rbac.ActionUpdate), flock.UpdateFlockHandler())
	flocks.Delete("/:id", rbac.RequirePermission(rbac.ResourceFlocks, rbac.ActionDelete), flock.DeleteFlockHandler())

	// Feeding
	feed := protected.Group("/feeding")
	feed.Get("/batch/:batchId", feeding.ListBatchFeedRecordsHandler())
	feed.Get("/", feeding.ListFeedRecordsHandler())
	feed.Post("/", rbac.RequirePermission(rbac.ResourceFeeding, rbac.ActionCreate), feeding.CreateFeedRecordHandler())
	feed.Get("/:id", feeding.GetFeedRecordHandler())
	feed.Put("/:id", rbac.RequirePermission(rbac.ResourceFeeding, rbac.ActionUpdate), feeding.UpdateFeedRecordHandler())
	feed.Delete("/:id", rbac.RequirePermission(rbac.ResourceFeeding, rbac.ActionDelete), feeding.DeleteFeedRecordHandler())

	// Production
	prod := protected.Group("/production")
	prod.Get("/stats/summary", production.ProductionStatsHandler())
	prod.Get("/batch/:batchId", production.ListBatchProductionRecordsHandler())
	prod.Get("/", production.ListProductionRecordsHandler())
	prod.Post("/", rbac.RequirePermission(rbac.ResourceProduction, rbac.ActionCreate), production.CreateProductionRecordHandler())
	prod.Get("/:id", production.GetProductionRecordHandler())
	prod.Put("/:id", rbac.RequirePermission(rbac.ResourceProduction, rbac.ActionUpdate), production.UpdateProductionRecordHandler())
	prod.Delete("/:id", rbac.RequirePermission(rbac.ResourceProduction, rbac.ActionDelete), production.DeleteProductionRecordHandler())

	// Health
	h := protected.Group("/health")
	h.Get("/alerts/active", health.HealthAlertsHandler())
	h.Get("/batch/:batchId", health.ListBatchHealthRecordsHandler())
	h.Get("/", health.ListHealthRecordsHandler())
	h.Post("/", rbac.RequirePermission(rbac.ResourceHealth, rbac.ActionCreate), health.CreateHealthRecordHandler())
	h.Get("/:id", health.GetHealthRecordHandler())
	h.Put("/:id", rbac.RequirePermission(rbac.ResourceHealth, rbac.ActionUpdate), health.UpdateHealthRecordHandler())
	h.Delete("/:id", rbac.RequirePermission(rbac.ResourceHealth, rbac.ActionDelete), health.DeleteHealthRecordHandler())

	// Inventory
	inv := protected.Group("/inventory")
	inv.Get("/alerts/low-stock", inventory.LowStockAlertsHandler())
	inv.Get("/", inventory.ListInventoryItemsHandler())
	inv.Post("/", rbac.RequirePermission(rbac.ResourceInventory, rbac.ActionCreate), inventory.CreateInventoryItemHandler())
	inv.Get("/:id", inventory.GetInventoryItemHandler())
	inv.Put("/:id", rbac.RequirePermission(rbac.ResourceInventory, rbac.ActionUpdate), inventory.UpdateInventoryItemHandler())
	inv.Delete("/:id", rbac.RequirePermission(rbac.ResourceInventory, rbac.ActionDelete), inventory.DeleteInventoryItemHandler())

	// Sales
	s := protected.Group("/sales")
	s.Get("/stats/summary", sales.SalesStatsHandler())
	s.Get("/", sales.ListSalesRecordsHandler())
	s.Post("/", rbac.RequirePermission(rbac.ResourceSales, rbac.ActionCreate), sales.CreateSalesRecordHandler())
	s.Get("/:id", sales.GetSalesRecordHandler())
	s.Put("/:id", rbac.RequirePermission(rbac.ResourceSales, rbac.ActionUpdate), sales.UpdateSalesRecordHandler())
	s.Delete("/:id", rbac.RequirePermission(rbac.ResourceSales, rbac.ActionDelete), sales.DeleteSalesRecordHandler())

	// Expenses
	exp := protected.Group("/expenses")
	exp.Get("/stats/summary", expense.ExpenseStatsHandler())
	exp.Get("/", expense.ListExpensesHandler())
	exp.Post("/", rbac.RequirePermission(rbac.ResourceExpenses, rbac.ActionCreate), expense.CreateExpenseHandler())
	exp.Get("/:id", expense.GetExpenseHandler())
	exp.Put("/:id", rbac.RequirePermission(rbac.ResourceExpenses, rbac.ActionUpdate), expense.UpdateExpenseHandler())
	exp.Delete("/:id", rbac.RequirePermission(rbac.ResourceExpenses, rbac.ActionDelete), expense.DeleteExpenseHandler())

	// Notifications (owner-or-Admin scoping happens in the handlers)
	n := protected.Group("/notifications")
	n.Post("/", auth.RequireRole(models.RoleAdmin, models.RoleManager), notification.CreateNotificationHandler())
	n.Get("/user/:userId", notification.ListUserNotificationsHandler())
	n.Put("/user/:userId/read-all", notification.MarkAllAsReadHandler())
	n.Put("/:id/read", notification.MarkAsReadHandler())
	n.Delete("/:id", notification.DeleteNotificationHandler())

	// Reports
	rep := protected.Group("/reports")
	rep.Get("/production", report.ProductionReportHandler())
	rep.Get("/financial", rbac.RequireRoute("reports"), report.FinancialReportHandler())
	rep.Get("/performance", report.PerformanceMetricsHandler())
	rep.Get("/inventory", report.InventoryReportHandler())

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found")
	})

	return app
}

func errorHandler(cfg *config.Config, log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{
				"success": false,
				"message": e.Message,
			})
		}

		log.Error("unexpected error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))

		msg := "Internal server error"
		if cfg.Development() {
			msg = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": msg,
		})
	}
}
