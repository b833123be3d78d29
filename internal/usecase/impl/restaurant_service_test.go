package impl

import (
	"context"
	"testing"

	"bento/internal/domain/entity"
	domainerrors "bento/internal/domain/errors"
	"bento/internal/domain/repository"
	mockRepo "bento/internal/mocks/repository"
	"bento/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// restaurantServiceFixtures holds all test dependencies for restaurant service tests.
type restaurantServiceFixtures struct {
	service        usecase.RestaurantUsecase
	restaurantRepo *mockRepo.MockRestaurantRepository
	menuItemRepo   *mockRepo.MockMenuItemRepository
}

func createTestRestaurantService(t *testing.T) restaurantServiceFixtures {
	restaurantRepo := mockRepo.NewMockRestaurantRepository(t)
	menuItemRepo := mockRepo.NewMockMenuItemRepository(t)

	svc := NewRestaurantService(RestaurantServiceParams{
		RestaurantRepo: restaurantRepo,
		MenuItemRepo:   menuItemRepo,
		Logger:         newDiscardLogger(),
	})

	return restaurantServiceFixtures{
		service:        svc,
		restaurantRepo: restaurantRepo,
		menuItemRepo:   menuItemRepo,
	}
}

func TestRestaurantService_ListRestaurants_DefaultsApplied(t *testing.T) {
	fx := createTestRestaurantService(t)

	ctx := context.Background()
	stored := []*entity.Restaurant{{ID: uuid.New(), Name: "Lunchbox"}}

	fx.restaurantRepo.EXPECT().List(ctx, defaultListLimit, 0).Return(stored, nil)

	restaurants, err := fx.service.ListRestaurants(ctx, 0, -5)

	require.NoError(t, err)
	assert.Equal(t, stored, restaurants)
}

func TestRestaurantService_ListRestaurants_LimitCapped(t *testing.T) {
	fx := createTestRestaurantService(t)

	ctx := context.Background()

	fx.restaurantRepo.EXPECT().List(ctx, maxListLimit, 40).Return([]*entity.Restaurant{}, nil)

	_, err := fx.service.ListRestaurants(ctx, 500, 40)

	require.NoError(t, err)
}

func TestRestaurantService_GetRestaurant_NotFound(t *testing.T) {
	fx := createTestRestaurantService(t)

	ctx := context.Background()
	restaurantID := uuid.New()

	fx.restaurantRepo.EXPECT().
		FindByIDWithMenu(ctx, restaurantID).
		Return(nil, repository.ErrRestaurantNotFound)

	restaurant, err := fx.service.GetRestaurant(ctx, restaurantID)

	assert.Error(t, err)
	assert.Nil(t, restaurant)
	assert.True(t, errors.Is(err, domainerrors.ErrRestaurantNotFound))
}

func TestRestaurantService_CreateRestaurant_Success(t *testing.T) {
	fx := createTestRestaurantService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	input := &usecase.CreateRestaurantInput{
		Name:       "Bento Corner",
		Address:    "台北市中正區八德路一段1號",
		Categories: []string{"taiwanese"},
	}

	fx.restaurantRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Restaurant")).
		Run(func(ctx context.Context, restaurant *entity.Restaurant) {
			assert.Equal(t, merchantID, restaurant.MerchantID)
			restaurant.ID = uuid.New()
		}).
		Return(nil)

	restaurant, err := fx.service.CreateRestaurant(ctx, merchantID, input)

	require.NoError(t, err)
	require.NotNil(t, restaurant)
	assert.Equal(t, input.Name, restaurant.Name)
	assert.NotEqual(t, uuid.Nil, restaurant.ID)
}

func TestRestaurantService_AddMenuItem_Success(t *testing.T) {
	fx := createTestRestaurantService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	restaurantID := uuid.New()
	input := &usecase.AddMenuItemInput{
		Name:        "排骨便當",
		Category:    "mains",
		PriceCents:  9500,
		IsAvailable: true,
	}

	fx.restaurantRepo.EXPECT().
		FindByID(ctx, restaurantID).
		Return(&entity.Restaurant{ID: restaurantID, MerchantID: merchantID}, nil)
	fx.menuItemRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.MenuItem")).
		Run(func(ctx context.Context, item *entity.MenuItem) {
			assert.Equal(t, restaurantID, item.RestaurantID)
			assert.Equal(t, int64(9500), item.PriceCents)
		}).
		Return(nil)

	item, err := fx.service.AddMenuItem(ctx, merchantID, restaurantID, input)

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, input.Name, item.Name)
}

func TestRestaurantService_AddMenuItem_NonPositivePrice(t *testing.T) {
	fx := createTestRestaurantService(t)

	ctx := context.Background()
	input := &usecase.AddMenuItemInput{Name: "排骨便當", PriceCents: 0}

	item, err := fx.service.AddMenuItem(ctx, uuid.New(), uuid.New(), input)

	assert.Error(t, err)
	assert.Nil(t, item)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	fx.restaurantRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRestaurantService_AddMenuItem_WrongMerchant(t *testing.T) {
	fx := createTestRestaurantService(t)

	ctx := context.Background()
	restaurantID := uuid.New()
	input := &usecase.AddMenuItemInput{Name: "排骨便當", PriceCents: 9500}

	fx.restaurantRepo.EXPECT().
		FindByID(ctx, restaurantID).
		Return(&entity.Restaurant{ID: restaurantID, MerchantID: uuid.New()}, nil)

	item, err := fx.service.AddMenuItem(ctx, uuid.New(), restaurantID, input)

	assert.Error(t, err)
	assert.Nil(t, item)
	assert.True(t, errors.Is(err, domainerrors.ErrRestaurantOwnershipViolation))
	fx.menuItemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRestaurantService_SetMenuItemPrice_Success(t *testing.T) {
	fx := createTestRestaurantService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	restaurantID := uuid.New()
	itemID := uuid.New()

	fx.menuItemRepo.EXPECT().
		FindByID(ctx, itemID).
		Return(&entity.MenuItem{ID: itemID, RestaurantID: restaurantID, PriceCents: 9500}, nil)
	fx.restaurantRepo.EXPECT().
		FindByID(ctx, restaurantID).
		Return(&entity.Restaurant{ID: restaurantID, MerchantID: merchantID}, nil)
	fx.menuItemRepo.EXPECT().UpdatePrice(ctx, itemID, int64(10500)).Return(nil)

	err := fx.service.SetMenuItemPrice(ctx, merchantID, itemID, 10500)

	require.NoError(t, err)
}

func TestRestaurantService_SetMenuItemPrice_NonPositivePrice(t *testing.T) {
	fx := createTestRestaurantService(t)

	ctx := context.Background()

	err := fx.service.SetMenuItemPrice(ctx, uuid.New(), uuid.New(), -100)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	fx.menuItemRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRestaurantService_SetMenuItemPrice_ItemNotFound(t *testing.T) {
	fx := createTestRestaurantService(t)

	ctx := context.Background()
	itemID := uuid.New()

	fx.menuItemRepo.EXPECT().FindByID(ctx, itemID).Return(nil, repository.ErrMenuItemNotFound)

	err := fx.service.SetMenuItemPrice(ctx, uuid.New(), itemID, 10500)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMenuItemNotFound))
}

func TestRestaurantService_SetMenuItemAvailability_Success(t *testing.T) {
	fx := createTestRestaurantService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	restaurantID := uuid.New()
	itemID := uuid.New()

	fx.menuItemRepo.EXPECT().
		FindByID(ctx, itemID).
		Return(&entity.MenuItem{ID: itemID, RestaurantID: restaurantID, IsAvailable: true}, nil)
	fx.restaurantRepo.EXPECT().
		FindByID(ctx, restaurantID).
		Return(&entity.Restaurant{ID: restaurantID, MerchantID: merchantID}, nil)
	fx.menuItemRepo.EXPECT().UpdateAvailability(ctx, itemID, false).Return(nil)

	err := fx.service.SetMenuItemAvailability(ctx, merchantID, itemID, false)

	require.NoError(t, err)
}

func TestRestaurantService_SetMenuItemAvailability_WrongMerchant(t *testing.T) {
	fx := createTestRestaurantService(t)

	ctx := context.Background()
	restaurantID := uuid.New()
	itemID := uuid.New()

	fx.menuItemRepo.EXPECT().
		FindByID(ctx, itemID).
		Return(&entity.MenuItem{ID: itemID, RestaurantID: restaurantID}, nil)
	fx.restaurantRepo.EXPECT().
		FindByID(ctx, restaurantID).
		Return(&entity.Restaurant{ID: restaurantID, MerchantID: uuid.New()}, nil)

	err := fx.service.SetMenuItemAvailability(ctx, uuid.New(), itemID, false)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRestaurantOwnershipViolation))
	fx.menuItemRepo.AssertNotCalled(t, "UpdateAvailability", mock.Anything, mock.Anything, mock.Anything)
}
