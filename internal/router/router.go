package router

import (
	"nightfly_backend/internal/database"
	"nightfly_backend/internal/gateway"
	"nightfly_backend/internal/handlers"
	"nightfly_backend/internal/middleware"
	"nightfly_backend/internal/repositories"
	"nightfly_backend/internal/services"
	"nightfly_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Dependencies are the process-wide handles the routes are built from.
type Dependencies struct {
	Store        database.Store
	OTPRepo      repositories.OTPRepository
	SMS          gateway.SMSSender
	Payments     gateway.PaymentGateway
	Tokens       *utils.TokenService
	OTP          services.OTPSettings
	CookieSecure bool
}

// Setup initializes the routing for the application. The identity gate is
// installed engine-wide so unknown paths are gated too.
func Setup(engine *gin.Engine, deps Dependencies) {
	utils.RegisterValidators()

	// Initialize Repositories
	userRepo := repositories.NewUserRepository(deps.Store)
	clubRepo := repositories.NewClubRepository(deps.Store)
	managerRepo := repositories.NewManagerRepository(deps.Store)
	orderRepo := repositories.NewOrderRepository(deps.Store)

	// Initialize Services
	authService := services.NewAuthService(deps.OTPRepo, userRepo, deps.SMS, deps.Tokens, deps.OTP)
	userService := services.NewUserService(userRepo)
	clubService := services.NewClubService(clubRepo)
	managerService := services.NewManagerService(managerRepo)
	orderService := services.NewOrderService(orderRepo, clubRepo)
	paymentService := services.NewPaymentService(deps.Payments)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService, deps.CookieSecure)
	userHandler := handlers.NewUserHandler(userService)
	clubHandler := handlers.NewClubHandler(clubService)
	managerHandler := handlers.NewManagerHandler(managerService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	engine.Use(middleware.IdentityGate(deps.Tokens, middleware.PublicPaths...))

	engine.GET(middleware.LoginPath, handlers.LoginPage)

	api := engine.Group("/api")
	SetupAuthRoutes(api, authHandler)
	SetupUserRoutes(api, userHandler)
	SetupClubRoutes(api, clubHandler)
	SetupManagerRoutes(api, managerHandler)
	SetupOrderRoutes(api, orderHandler)
	SetupPaymentRoutes(api, paymentHandler)
	api.GET("/ticket-types", handlers.GetTicketTypes)
}
