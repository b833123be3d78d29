// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bento/internal/delivery/http/middleware"
	"bento/internal/delivery/http/router/handler"
	"bento/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler       *handler.UserHandler
	RestaurantHandler *handler.RestaurantHandler
	OrderHandler      *handler.OrderHandler
	DeviceHandler     *handler.DeviceHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler       *handler.UserHandler
	restaurantHandler *handler.RestaurantHandler
	orderHandler      *handler.OrderHandler
	deviceHandler     *handler.DeviceHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:       params.UserHandler,
		restaurantHandler: params.RestaurantHandler,
		orderHandler:      params.OrderHandler,
		deviceHandler:     params.DeviceHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register/user", r.userHandler.RegisterUser)
		authGroup.POST("/register/merchant", r.userHandler.RegisterMerchant)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
		authGroup.POST("/logout", r.userHandler.Logout)
	}

	// Public catalogue routes
	e.GET("/restaurants", r.restaurantHandler.ListRestaurants)
	e.GET("/restaurants/:id", r.restaurantHandler.GetRestaurant)

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate) // Apply JWT authentication middleware
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
	}

	// Order routes: placing and tracking orders requires a logged-in user
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.CreateOrder)
		orderGroup.GET("", r.orderHandler.ListOrders)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
		orderGroup.POST("/:id/cancel", r.orderHandler.CancelOrder)
		orderGroup.GET("/:id/qrcode", r.orderHandler.GetPickupQR)
	}

	// Device routes for push notification registration
	deviceGroup := e.Group("/devices")
	deviceGroup.Use(r.authMiddleware.Authenticate)
	{
		deviceGroup.POST("", r.deviceHandler.RegisterDevice)
		deviceGroup.GET("", r.deviceHandler.ListDevices)
	}

	// Merchant routes that require authentication and "merchant" role
	merchantGroup := e.Group("/merchant")
	merchantGroup.Use(r.authMiddleware.Authenticate)                             // First, check if logged in
	merchantGroup.Use(r.authMiddleware.RequireRole(string(entity.RoleMerchant))) // Then, check for the role
	{
		merchantGroup.POST("/restaurants", r.restaurantHandler.CreateRestaurant)
		merchantGroup.POST("/restaurants/:id/menu", r.restaurantHandler.AddMenuItem)
		merchantGroup.PATCH("/menu/:itemID/price", r.restaurantHandler.UpdateMenuItemPrice)
		merchantGroup.PATCH("/menu/:itemID/availability", r.restaurantHandler.UpdateMenuItemAvailability)
		merchantGroup.PATCH("/orders/:id/status", r.orderHandler.UpdateOrderStatus)
	}
}
