package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"bento/internal/delivery/http/response"
	"bento/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RestaurantHandler holds dependencies for restaurant and menu handlers.
type RestaurantHandler struct {
	uc     usecase.RestaurantUsecase
	logger *slog.Logger
}

// NewRestaurantHandler is the constructor for RestaurantHandler, injected by Fx.
func NewRestaurantHandler(uc usecase.RestaurantUsecase, logger *slog.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListRestaurants handles browsing the restaurant catalogue.
func (h *RestaurantHandler) ListRestaurants(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	restaurants, err := h.uc.ListRestaurants(c.Request().Context(), limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, restaurants, "Restaurants retrieved successfully")
}

// GetRestaurant handles retrieving a restaurant with its available menu.
func (h *RestaurantHandler) GetRestaurant(c echo.Context) error {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid restaurant ID")
	}

	restaurant, err := h.uc.GetRestaurant(c.Request().Context(), restaurantID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, restaurant, "Restaurant retrieved successfully")
}

// CreateRestaurant handles registering a new restaurant for the merchant.
func (h *RestaurantHandler) CreateRestaurant(c echo.Context) error {
	merchantID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.CreateRestaurantInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid restaurant input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	restaurant, err := h.uc.CreateRestaurant(c.Request().Context(), merchantID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, restaurant, "Restaurant created successfully")
}

// AddMenuItem handles adding a dish to a restaurant's menu.
func (h *RestaurantHandler) AddMenuItem(c echo.Context) error {
	merchantID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid restaurant ID")
	}

	var input *usecase.AddMenuItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	item, err := h.uc.AddMenuItem(c.Request().Context(), merchantID, restaurantID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, item, "Menu item added successfully")
}

// updatePriceRequest carries the new authoritative price for a menu item.
type updatePriceRequest struct {
	PriceCents int64 `json:"price_cents" validate:"required,gt=0"`
}

// UpdateMenuItemPrice handles changing a dish's price.
// Existing order lines keep their price snapshots.
func (h *RestaurantHandler) UpdateMenuItemPrice(c echo.Context) error {
	merchantID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid menu item ID")
	}

	var req *updatePriceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid price input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.uc.SetMenuItemPrice(c.Request().Context(), merchantID, itemID, req.PriceCents); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Menu item price updated successfully")
}

// updateAvailabilityRequest carries the new availability flag for a menu item.
type updateAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

// UpdateMenuItemAvailability handles flipping a dish's availability flag.
func (h *RestaurantHandler) UpdateMenuItemAvailability(c echo.Context) error {
	merchantID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid menu item ID")
	}

	var req *updateAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid availability input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.uc.SetMenuItemAvailability(c.Request().Context(), merchantID, itemID, *req.IsAvailable); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Menu item availability updated successfully")
}
