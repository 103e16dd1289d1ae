package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tour-booking/internal/domain/user"
	"tour-booking/internal/handler/api"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	reservationHandler *api.ReservationHandler,
	adminReservationHandler *api.AdminReservationHandler,
	tourHandler *api.TourHandler,
	clientHandler *api.ClientHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, reservationHandler, adminReservationHandler, tourHandler, clientHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	reservationHandler *api.ReservationHandler,
	adminReservationHandler *api.AdminReservationHandler,
	tourHandler *api.TourHandler,
	clientHandler *api.ClientHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		requireManager := authMiddleware.RequireRoleAtLeast(user.RoleManager)
		requireAdmin := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.Get},
				{Method: http.MethodGet, Path: "/:id/history", Handler: reservationHandler.History},
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.Create, Mw: []gin.HandlerFunc{requireManager}},
				{Method: http.MethodPost, Path: "/:id/deposits", Handler: reservationHandler.Deposit, Mw: []gin.HandlerFunc{requireManager}},
				{Method: http.MethodPost, Path: "/:id/seats", Handler: reservationHandler.ChooseSeats, Mw: []gin.HandlerFunc{requireManager}},
				{Method: http.MethodPut, Path: "/:id/seats", Handler: reservationHandler.ChangeConfirmedSeats, Mw: []gin.HandlerFunc{requireManager}},
				{Method: http.MethodPost, Path: "/:id/devolutions", Handler: reservationHandler.MakeDevolution, Mw: []gin.HandlerFunc{requireManager}},
				{Method: http.MethodPost, Path: "/:id/seat-reductions", Handler: reservationHandler.ReduceReservedSeats, Mw: []gin.HandlerFunc{requireManager}},
				{Method: http.MethodPost, Path: "/:id/confirmed-seat-reductions", Handler: reservationHandler.ReduceConfirmedSeats, Mw: []gin.HandlerFunc{requireManager}},
				{Method: http.MethodPost, Path: "/:id/cancellation", Handler: reservationHandler.Cancel, Mw: []gin.HandlerFunc{requireManager}},
			})
		}

		adminReservations := apiGroup.Group("/admin/reservations")
		adminReservations.Use(requireAdmin)
		{
			addRoutes(adminReservations, []route{
				{Method: http.MethodPost, Path: "/:id/cancellation", Handler: adminReservationHandler.CancelWithoutDevolutions},
				{Method: http.MethodPost, Path: "/:id/devolution-cancellation", Handler: adminReservationHandler.CancelWithDevolutions},
				{Method: http.MethodPost, Path: "/:id/discounts", Handler: adminReservationHandler.AddDiscount},
				{Method: http.MethodPost, Path: "/:id/payment-reductions", Handler: adminReservationHandler.ReduceAmountPaid},
				{Method: http.MethodPost, Path: "/:id/devolution-reductions", Handler: adminReservationHandler.ReducePendingDevolution},
			})
		}

		tours := apiGroup.Group("/tours")
		{
			addRoutes(tours, []route{
				{Method: http.MethodGet, Path: "", Handler: tourHandler.ListActive},
				{Method: http.MethodGet, Path: "/:id", Handler: tourHandler.Get},
				{Method: http.MethodGet, Path: "/:id/reservations", Handler: tourHandler.Reservations},
				{Method: http.MethodGet, Path: "/:id/history", Handler: tourHandler.History},
				{Method: http.MethodPost, Path: "", Handler: tourHandler.Create, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodPost, Path: "/:id/promos", Handler: tourHandler.AddPromo, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodPost, Path: "/:id/cancellation", Handler: tourHandler.Cancel, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodPost, Path: "/:id/completion", Handler: tourHandler.Complete, Mw: []gin.HandlerFunc{requireAdmin}},
			})
		}

		clients := apiGroup.Group("/clients")
		{
			addRoutes(clients, []route{
				{Method: http.MethodGet, Path: "", Handler: clientHandler.GetByPhone},
				{Method: http.MethodGet, Path: "/:id", Handler: clientHandler.Get},
				{Method: http.MethodGet, Path: "/:id/reservations", Handler: clientHandler.Reservations},
				{Method: http.MethodGet, Path: "/:id/history", Handler: clientHandler.History},
				{Method: http.MethodPost, Path: "", Handler: clientHandler.Create, Mw: []gin.HandlerFunc{requireManager}},
				{Method: http.MethodDelete, Path: "/:id", Handler: clientHandler.Delete, Mw: []gin.HandlerFunc{requireAdmin}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
