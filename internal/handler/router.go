package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"library-reserve/internal/domain/user"
	"library-reserve/internal/handler/api"
	"library-reserve/internal/handler/middleware"
	"library-reserve/internal/pkg/config"
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
	authHandler *api.AuthHandler,
	loanHandler *api.LoanHandler,
	reservationHandler *api.ReservationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, loanHandler, reservationHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	loanHandler *api.LoanHandler,
	reservationHandler *api.ReservationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	staffOnly := authMiddleware.RequireRoleAtLeast(user.RoleLibrarian)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
			})
		}

		loans := apiGroup.Group("/loans")
		loans.Use(authMiddleware.RequireAuth())
		{
			addRoutes(loans, []route{
				{Method: http.MethodPost, Path: "", Handler: loanHandler.CreateLoan},
				{Method: http.MethodGet, Path: "", Handler: loanHandler.GetLoans},
				{Method: http.MethodGet, Path: "/overdue", Handler: loanHandler.GetOverdueLoans, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/waitlist", Handler: loanHandler.JoinWaitlist},
				{Method: http.MethodGet, Path: "/waitlist/:bookId", Handler: loanHandler.GetWaitlist},
				{Method: http.MethodDelete, Path: "/waitlist/:id", Handler: loanHandler.LeaveWaitlist},
				{Method: http.MethodGet, Path: "/:id", Handler: loanHandler.GetLoan},
				{Method: http.MethodPatch, Path: "/:id/return", Handler: loanHandler.ReturnLoan},
				{Method: http.MethodPatch, Path: "/:id/extend", Handler: loanHandler.ExtendLoan},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.GetReservations},
				{Method: http.MethodPost, Path: "/check-in", Handler: reservationHandler.CheckIn},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
				{Method: http.MethodPatch, Path: "/:id/cancel", Handler: reservationHandler.CancelReservation},
				{Method: http.MethodPatch, Path: "/:id/approve", Handler: reservationHandler.ApproveReservation, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPatch, Path: "/:id/reject", Handler: reservationHandler.RejectReservation, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPatch, Path: "/:id/check-out", Handler: reservationHandler.CheckOut},
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
