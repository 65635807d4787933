package router

import (
	"nightfly_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the OTP login routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	apiGroup.POST("/otp", authHandler.RequestOTP)

	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/verify", authHandler.VerifyOTP)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.GET("/me", authHandler.Me)
	}
}

// SetupUserRoutes sets up the customer profile routes.
func SetupUserRoutes(apiGroup *gin.RouterGroup, userHandler *handlers.UserHandler) {
	apiGroup.POST("/check-user", userHandler.CheckUser)

	userRoutes := apiGroup.Group("/users")
	{
		userRoutes.GET("", userHandler.GetUsers)
		userRoutes.POST("", userHandler.UpsertUser)
	}
}

// SetupClubRoutes sets up the venue routes.
func SetupClubRoutes(apiGroup *gin.RouterGroup, clubHandler *handlers.ClubHandler) {
	clubRoutes := apiGroup.Group("/clubs")
	{
		clubRoutes.GET("", clubHandler.GetClubs)
		clubRoutes.POST("", clubHandler.CreateClub)
		clubRoutes.PUT("", clubHandler.UpdateClub)
		clubRoutes.DELETE("", clubHandler.DeleteClub)
	}
}

// SetupManagerRoutes sets up the manager routes.
func SetupManagerRoutes(apiGroup *gin.RouterGroup, managerHandler *handlers.ManagerHandler) {
	managerRoutes := apiGroup.Group("/managers")
	{
		managerRoutes.GET("", managerHandler.GetManagers)
		managerRoutes.POST("", managerHandler.CreateManager)
		managerRoutes.PUT("", managerHandler.UpdateManager)
		managerRoutes.DELETE("", managerHandler.DeleteManager)
	}
}

// SetupOrderRoutes sets up the order routes.
func SetupOrderRoutes(apiGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := apiGroup.Group("/orders")
	{
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.PATCH("", orderHandler.UpdateOrder)
		orderRoutes.GET("/summary", orderHandler.GetOrderSummary)
	}
}

// SetupPaymentRoutes sets up the payment relay routes.
func SetupPaymentRoutes(apiGroup *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	paymentRoutes := apiGroup.Group("/payment")
	{
		paymentRoutes.POST("/create", paymentHandler.CreatePayment)
		paymentRoutes.POST("/check", paymentHandler.CheckPayment)
	}
}
