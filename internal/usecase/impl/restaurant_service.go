package impl

import (
	"context"
	"log/slog"

	deliverycontext "bento/internal/delivery/context"
	"bento/internal/domain/entity"
	domainerrors "bento/internal/domain/errors"
	"bento/internal/domain/repository"
	"bento/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// restaurantService implements the RestaurantUsecase interface.
type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
	menuItemRepo   repository.MenuItemRepository
	logger         *slog.Logger
}

// RestaurantServiceParams holds dependencies for RestaurantService, injected by Fx.
type RestaurantServiceParams struct {
	fx.In

	RestaurantRepo repository.RestaurantRepository
	MenuItemRepo   repository.MenuItemRepository
	Logger         *slog.Logger
}

// NewRestaurantService is the constructor for restaurantService.
func NewRestaurantService(params RestaurantServiceParams) usecase.RestaurantUsecase {
	return &restaurantService{
		restaurantRepo: params.RestaurantRepo,
		menuItemRepo:   params.MenuItemRepo,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *restaurantService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListRestaurants retrieves a page of restaurants for browsing.
func (srv *restaurantService) ListRestaurants(ctx context.Context, limit, offset int) ([]*entity.Restaurant, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	restaurants, err := srv.restaurantRepo.List(ctx, limit, offset)
	if err != nil {
		srv.log(ctx).Error("Failed to list restaurants", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list restaurants")
	}

	return restaurants, nil
}

// GetRestaurant retrieves a restaurant with its available menu.
func (srv *restaurantService) GetRestaurant(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	restaurant, err := srv.restaurantRepo.FindByIDWithMenu(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRestaurantNotFound, "restaurant not found")
		}

		return nil, errors.Wrap(err, "failed to find restaurant")
	}

	return restaurant, nil
}

// CreateRestaurant registers a new restaurant owned by the merchant.
func (srv *restaurantService) CreateRestaurant(ctx context.Context, merchantID uuid.UUID, input *usecase.CreateRestaurantInput) (*entity.Restaurant, error) {
	srv.log(ctx).Info("Creating restaurant", slog.Any("merchantID", merchantID), slog.String("name", input.Name))

	restaurant := &entity.Restaurant{
		MerchantID:  merchantID,
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Categories:  input.Categories,
	}

	if err := srv.restaurantRepo.Create(ctx, restaurant); err != nil {
		srv.log(ctx).Error("Failed to create restaurant", slog.Any("merchantID", merchantID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create restaurant")
	}

	return restaurant, nil
}

// AddMenuItem adds a dish to a restaurant owned by the merchant.
func (srv *restaurantService) AddMenuItem(ctx context.Context, merchantID, restaurantID uuid.UUID, input *usecase.AddMenuItemInput) (*entity.MenuItem, error) {
	srv.log(ctx).Info("Adding menu item", slog.Any("restaurantID", restaurantID), slog.String("name", input.Name))

	if input.PriceCents <= 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "menu item price must be positive")
	}

	if err := srv.checkOwnership(ctx, merchantID, restaurantID); err != nil {
		return nil, err
	}

	item := &entity.MenuItem{
		RestaurantID: restaurantID,
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		PriceCents:   input.PriceCents,
		IsAvailable:  input.IsAvailable,
	}

	if err := srv.menuItemRepo.Create(ctx, item); err != nil {
		srv.log(ctx).Error("Failed to create menu item", slog.Any("restaurantID", restaurantID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create menu item")
	}

	return item, nil
}

// SetMenuItemPrice changes a dish's price. Past order lines keep their snapshots.
func (srv *restaurantService) SetMenuItemPrice(ctx context.Context, merchantID, itemID uuid.UUID, priceCents int64) error {
	if priceCents <= 0 {
		return errors.Wrap(domainerrors.ErrValidationFailed, "menu item price must be positive")
	}

	item, err := srv.loadOwnedMenuItem(ctx, merchantID, itemID)
	if err != nil {
		return err
	}

	if err := srv.menuItemRepo.UpdatePrice(ctx, item.ID, priceCents); err != nil {
		srv.log(ctx).Error("Failed to update menu item price", slog.Any("itemID", itemID), slog.Any("error", err))

		return errors.Wrap(err, "failed to update menu item price")
	}

	srv.log(ctx).Info("Menu item price updated", slog.Any("itemID", itemID), slog.Int64("priceCents", priceCents))

	return nil
}

// SetMenuItemAvailability flips a dish's availability flag.
func (srv *restaurantService) SetMenuItemAvailability(ctx context.Context, merchantID, itemID uuid.UUID, available bool) error {
	item, err := srv.loadOwnedMenuItem(ctx, merchantID, itemID)
	if err != nil {
		return err
	}

	if err := srv.menuItemRepo.UpdateAvailability(ctx, item.ID, available); err != nil {
		srv.log(ctx).Error("Failed to update menu item availability", slog.Any("itemID", itemID), slog.Any("error", err))

		return errors.Wrap(err, "failed to update menu item availability")
	}

	srv.log(ctx).Info("Menu item availability updated", slog.Any("itemID", itemID), slog.Bool("available", available))

	return nil
}

// checkOwnership verifies the restaurant exists and belongs to the merchant.
func (srv *restaurantService) checkOwnership(ctx context.Context, merchantID, restaurantID uuid.UUID) error {
	restaurant, err := srv.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return errors.Wrap(domainerrors.ErrRestaurantNotFound, "restaurant not found")
		}

		return errors.Wrap(err, "failed to find restaurant")
	}
	if restaurant.MerchantID != merchantID {
		srv.log(ctx).Warn("Restaurant ownership violation", slog.Any("restaurantID", restaurantID), slog.Any("merchantID", merchantID))

		return errors.Wrap(domainerrors.ErrRestaurantOwnershipViolation, "restaurant belongs to another merchant")
	}

	return nil
}

// loadOwnedMenuItem loads a menu item and verifies the merchant owns its restaurant.
func (srv *restaurantService) loadOwnedMenuItem(ctx context.Context, merchantID, itemID uuid.UUID) (*entity.MenuItem, error) {
	item, err := srv.menuItemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrMenuItemNotFound, "menu item not found")
		}

		return nil, errors.Wrap(err, "failed to find menu item")
	}

	if err := srv.checkOwnership(ctx, merchantID, item.RestaurantID); err != nil {
		return nil, err
	}

	return item, nil
}
