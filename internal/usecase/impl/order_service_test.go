package impl

import (
	"context"
	"testing"

	"bento/internal/domain/entity"
	domainerrors "bento/internal/domain/errors"
	"bento/internal/domain/repository"
	"bento/internal/domain/service"
	mockRepo "bento/internal/mocks/repository"
	mockSvc "bento/internal/mocks/service"
	"bento/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service        usecase.OrderUsecase
	txManager      *mockRepo.MockTransactionManager
	orderRepo      *mockRepo.MockOrderRepository
	restaurantRepo *mockRepo.MockRestaurantRepository
	eventPublisher *mockSvc.MockEventPublisher
	qrcodeService  *mockSvc.MockQRCodeService
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	restaurantRepo := mockRepo.NewMockRestaurantRepository(t)
	eventPublisher := mockSvc.NewMockEventPublisher(t)
	qrcodeService := mockSvc.NewMockQRCodeService(t)

	svc := NewOrderService(OrderServiceParams{
		TxManager:      txManager,
		OrderRepo:      orderRepo,
		RestaurantRepo: restaurantRepo,
		EventPublisher: eventPublisher,
		QRCodeService:  qrcodeService,
		Logger:         newDiscardLogger(),
	})

	return orderServiceFixtures{
		service:        svc,
		txManager:      txManager,
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		eventPublisher: eventPublisher,
		qrcodeService:  qrcodeService,
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	restaurantID := uuid.New()
	itemA := &entity.MenuItem{ID: uuid.New(), RestaurantID: restaurantID, PriceCents: 1000, IsAvailable: true}
	itemB := &entity.MenuItem{ID: uuid.New(), RestaurantID: restaurantID, PriceCents: 500, IsAvailable: true}

	input := &usecase.CreateOrderInput{
		RestaurantID: restaurantID,
		Items: []usecase.OrderLineInput{
			{MenuItemID: itemA.ID, Quantity: 2},
			{MenuItemID: itemB.ID, Quantity: 1},
		},
	}

	orderID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockRestaurantRepo := mockRepo.NewMockRestaurantRepository(t)
			mockMenuItemRepo := mockRepo.NewMockMenuItemRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().RestaurantRepo().Return(mockRestaurantRepo)
			mockFactory.EXPECT().MenuItemRepo().Return(mockMenuItemRepo)
			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)

			mockRestaurantRepo.EXPECT().
				FindByID(ctx, restaurantID).
				Return(&entity.Restaurant{ID: restaurantID, MerchantID: uuid.New()}, nil)

			mockOrderRepo.EXPECT().
				CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).
				Run(func(ctx context.Context, order *entity.Order) {
					assert.Equal(t, entity.OrderStatusPending, order.Status)
					assert.Zero(t, order.TotalCents)
					order.ID = orderID
				}).
				Return(nil)

			mockMenuItemRepo.EXPECT().FindForOrder(ctx, itemA.ID).Return(itemA, nil)
			mockMenuItemRepo.EXPECT().FindForOrder(ctx, itemB.ID).Return(itemB, nil)

			mockOrderRepo.EXPECT().
				CreateOrderItems(ctx, orderID, mock.AnythingOfType("[]*entity.OrderItem")).
				Run(func(ctx context.Context, id uuid.UUID, items []*entity.OrderItem) {
					require.Len(t, items, 2)
					assert.Equal(t, int64(1000), items[0].PriceCents)
					assert.Equal(t, 2, items[0].Quantity)
					assert.Equal(t, int64(500), items[1].PriceCents)
				}).
				Return(nil)

			// 2*1000 + 1*500, derived from the persisted rows.
			mockOrderRepo.EXPECT().SumOrderItems(ctx, orderID).Return(int64(2500), nil)
			mockOrderRepo.EXPECT().UpdateOrderTotal(ctx, orderID, int64(2500)).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.eventPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Run(func(ctx context.Context, event *service.OrderEvent) {
			assert.Equal(t, orderID.String(), event.OrderID)
			assert.Equal(t, string(entity.OrderStatusPending), event.Status)
			assert.Equal(t, int64(2500), event.TotalCents)
		}).
		Return(nil)

	order, err := fx.service.CreateOrder(ctx, userID, input)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, orderID, order.ID)
	assert.Equal(t, int64(2500), order.TotalCents)
	assert.Len(t, order.Items, 2)
}

func TestOrderService_CreateOrder_DuplicateMenuItemKeepsSeparateLines(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	restaurantID := uuid.New()
	item := &entity.MenuItem{ID: uuid.New(), RestaurantID: restaurantID, PriceCents: 1000, IsAvailable: true}

	// The same menu item twice is two lines, never one merged line.
	input := &usecase.CreateOrderInput{
		RestaurantID: restaurantID,
		Items: []usecase.OrderLineInput{
			{MenuItemID: item.ID, Quantity: 2},
			{MenuItemID: item.ID, Quantity: 3},
		},
	}

	orderID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockRestaurantRepo := mockRepo.NewMockRestaurantRepository(t)
			mockMenuItemRepo := mockRepo.NewMockMenuItemRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().RestaurantRepo().Return(mockRestaurantRepo)
			mockFactory.EXPECT().MenuItemRepo().Return(mockMenuItemRepo)
			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)

			mockRestaurantRepo.EXPECT().
				FindByID(ctx, restaurantID).
				Return(&entity.Restaurant{ID: restaurantID, MerchantID: uuid.New()}, nil)

			mockOrderRepo.EXPECT().
				CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).
				Run(func(ctx context.Context, order *entity.Order) {
					order.ID = orderID
				}).
				Return(nil)

			// Each line is re-validated against the locked row on its own.
			mockMenuItemRepo.EXPECT().FindForOrder(ctx, item.ID).Return(item, nil).Times(2)

			mockOrderRepo.EXPECT().
				CreateOrderItems(ctx, orderID, mock.AnythingOfType("[]*entity.OrderItem")).
				Run(func(ctx context.Context, id uuid.UUID, items []*entity.OrderItem) {
					require.Len(t, items, 2)
					assert.Equal(t, item.ID, items[0].MenuItemID)
					assert.Equal(t, item.ID, items[1].MenuItemID)
					assert.Equal(t, 2, items[0].Quantity)
					assert.Equal(t, 3, items[1].Quantity)
					assert.Equal(t, int64(1000), items[0].PriceCents)
					assert.Equal(t, int64(1000), items[1].PriceCents)
				}).
				Return(nil)

			// 2*1000 + 3*1000 over both persisted lines.
			mockOrderRepo.EXPECT().SumOrderItems(ctx, orderID).Return(int64(5000), nil)
			mockOrderRepo.EXPECT().UpdateOrderTotal(ctx, orderID, int64(5000)).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.eventPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	order, err := fx.service.CreateOrder(ctx, userID, input)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, int64(5000), order.TotalCents)
}

func TestOrderService_CreateOrder_EmptyOrder(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	input := &usecase.CreateOrderInput{RestaurantID: uuid.New()}

	order, err := fx.service.CreateOrder(ctx, uuid.New(), input)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrEmptyOrder))
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_NonPositiveQuantity(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	input := &usecase.CreateOrderInput{
		RestaurantID: uuid.New(),
		Items: []usecase.OrderLineInput{
			{MenuItemID: uuid.New(), Quantity: 0},
		},
	}

	order, err := fx.service.CreateOrder(ctx, uuid.New(), input)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestOrderService_CreateOrder_ItemUnavailable(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	restaurantID := uuid.New()
	unavailable := &entity.MenuItem{ID: uuid.New(), RestaurantID: restaurantID, PriceCents: 800, IsAvailable: false}

	input := &usecase.CreateOrderInput{
		RestaurantID: restaurantID,
		Items: []usecase.OrderLineInput{
			{MenuItemID: unavailable.ID, Quantity: 1},
		},
	}

	var txErr error
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockRestaurantRepo := mockRepo.NewMockRestaurantRepository(t)
			mockMenuItemRepo := mockRepo.NewMockMenuItemRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().RestaurantRepo().Return(mockRestaurantRepo)
			mockFactory.EXPECT().MenuItemRepo().Return(mockMenuItemRepo)
			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)

			mockRestaurantRepo.EXPECT().
				FindByID(ctx, restaurantID).
				Return(&entity.Restaurant{ID: restaurantID}, nil)

			mockOrderRepo.EXPECT().
				CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).
				Return(nil)

			mockMenuItemRepo.EXPECT().FindForOrder(ctx, unavailable.ID).Return(unavailable, nil)

			txErr = fn(mockFactory)

			// Rolled back before any line is written.
			mockOrderRepo.AssertNotCalled(t, "CreateOrderItems", mock.Anything, mock.Anything, mock.Anything)
		}).
		Return(domainerrors.ErrItemUnavailable)

	order, err := fx.service.CreateOrder(ctx, uuid.New(), input)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrItemUnavailable))
	assert.True(t, errors.Is(txErr, domainerrors.ErrItemUnavailable))
}

func TestOrderService_CreateOrder_ItemFromAnotherRestaurant(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	restaurantID := uuid.New()
	foreign := &entity.MenuItem{ID: uuid.New(), RestaurantID: uuid.New(), PriceCents: 800, IsAvailable: true}

	input := &usecase.CreateOrderInput{
		RestaurantID: restaurantID,
		Items: []usecase.OrderLineInput{
			{MenuItemID: foreign.ID, Quantity: 1},
		},
	}

	var txErr error
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockRestaurantRepo := mockRepo.NewMockRestaurantRepository(t)
			mockMenuItemRepo := mockRepo.NewMockMenuItemRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().RestaurantRepo().Return(mockRestaurantRepo)
			mockFactory.EXPECT().MenuItemRepo().Return(mockMenuItemRepo)
			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)

			mockRestaurantRepo.EXPECT().
				FindByID(ctx, restaurantID).
				Return(&entity.Restaurant{ID: restaurantID}, nil)

			mockOrderRepo.EXPECT().
				CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).
				Return(nil)

			mockMenuItemRepo.EXPECT().FindForOrder(ctx, foreign.ID).Return(foreign, nil)

			txErr = fn(mockFactory)
		}).
		Return(domainerrors.ErrMenuItemNotFound)

	order, err := fx.service.CreateOrder(ctx, uuid.New(), input)

	assert.Error(t, err)
	assert.Nil(t, order)
	// Cross-restaurant items read as unknown, not as unavailable.
	assert.True(t, errors.Is(err, domainerrors.ErrMenuItemNotFound))
	assert.True(t, errors.Is(txErr, domainerrors.ErrMenuItemNotFound))
}

func TestOrderService_CreateOrder_UnknownRestaurant(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	restaurantID := uuid.New()
	input := &usecase.CreateOrderInput{
		RestaurantID: restaurantID,
		Items: []usecase.OrderLineInput{
			{MenuItemID: uuid.New(), Quantity: 1},
		},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockRestaurantRepo := mockRepo.NewMockRestaurantRepository(t)
			mockMenuItemRepo := mockRepo.NewMockMenuItemRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().RestaurantRepo().Return(mockRestaurantRepo)
			mockFactory.EXPECT().MenuItemRepo().Return(mockMenuItemRepo)
			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)

			mockRestaurantRepo.EXPECT().
				FindByID(ctx, restaurantID).
				Return(nil, repository.ErrRestaurantNotFound)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrRestaurantNotFound)

	order, err := fx.service.CreateOrder(ctx, uuid.New(), input)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrRestaurantNotFound))
}

func TestOrderService_CreateOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	restaurantID := uuid.New()
	item := &entity.MenuItem{ID: uuid.New(), RestaurantID: restaurantID, PriceCents: 700, IsAvailable: true}
	input := &usecase.CreateOrderInput{
		RestaurantID: restaurantID,
		Items: []usecase.OrderLineInput{
			{MenuItemID: item.ID, Quantity: 1},
		},
	}

	orderID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockRestaurantRepo := mockRepo.NewMockRestaurantRepository(t)
			mockMenuItemRepo := mockRepo.NewMockMenuItemRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().RestaurantRepo().Return(mockRestaurantRepo)
			mockFactory.EXPECT().MenuItemRepo().Return(mockMenuItemRepo)
			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)

			mockRestaurantRepo.EXPECT().
				FindByID(ctx, restaurantID).
				Return(&entity.Restaurant{ID: restaurantID}, nil)
			mockOrderRepo.EXPECT().
				CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).
				Run(func(ctx context.Context, order *entity.Order) {
					order.ID = orderID
				}).
				Return(nil)
			mockMenuItemRepo.EXPECT().FindForOrder(ctx, item.ID).Return(item, nil)
			mockOrderRepo.EXPECT().
				CreateOrderItems(ctx, orderID, mock.AnythingOfType("[]*entity.OrderItem")).
				Return(nil)
			mockOrderRepo.EXPECT().SumOrderItems(ctx, orderID).Return(int64(700), nil)
			mockOrderRepo.EXPECT().UpdateOrderTotal(ctx, orderID, int64(700)).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.eventPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(errors.New("broker unavailable"))

	order, err := fx.service.CreateOrder(ctx, uuid.New(), input)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, int64(700), order.TotalCents)
}

func TestOrderService_GetOrder_Owner(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: userID, RestaurantID: uuid.New(), Status: entity.OrderStatusPending}

	fx.orderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(stored, nil)

	order, err := fx.service.GetOrder(ctx, userID, orderID)

	require.NoError(t, err)
	assert.Equal(t, stored, order)
}

func TestOrderService_GetOrder_Merchant(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	restaurantID := uuid.New()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), RestaurantID: restaurantID, Status: entity.OrderStatusPending}

	fx.orderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(stored, nil)
	fx.restaurantRepo.EXPECT().
		FindByID(ctx, restaurantID).
		Return(&entity.Restaurant{ID: restaurantID, MerchantID: merchantID}, nil)

	order, err := fx.service.GetOrder(ctx, merchantID, orderID)

	require.NoError(t, err)
	assert.Equal(t, stored, order)
}

func TestOrderService_GetOrder_AccessDenied(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	restaurantID := uuid.New()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), RestaurantID: restaurantID, Status: entity.OrderStatusPending}

	fx.orderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(stored, nil)
	fx.restaurantRepo.EXPECT().
		FindByID(ctx, restaurantID).
		Return(&entity.Restaurant{ID: restaurantID, MerchantID: uuid.New()}, nil)

	order, err := fx.service.GetOrder(ctx, uuid.New(), orderID)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderOwnershipViolation))
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(nil, repository.ErrOrderNotFound)

	order, err := fx.service.GetOrder(ctx, uuid.New(), orderID)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}

func TestOrderService_ListUserOrders(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	stored := []*entity.Order{
		{ID: uuid.New(), UserID: userID, Status: entity.OrderStatusDelivered},
		{ID: uuid.New(), UserID: userID, Status: entity.OrderStatusPending},
	}

	fx.orderRepo.EXPECT().FindOrdersByUser(ctx, userID).Return(stored, nil)

	orders, err := fx.service.ListUserOrders(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, stored, orders)
}

func TestOrderService_CancelOrder_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: userID, RestaurantID: uuid.New(), Status: entity.OrderStatusPending}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)

			mockOrderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(stored, nil)
			mockOrderRepo.EXPECT().
				UpdateOrderStatus(ctx, orderID, entity.OrderStatusPending, entity.OrderStatusCancelled).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.eventPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Run(func(ctx context.Context, event *service.OrderEvent) {
			assert.Equal(t, string(entity.OrderStatusCancelled), event.Status)
		}).
		Return(nil)

	order, err := fx.service.CancelOrder(ctx, userID, orderID)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, entity.OrderStatusCancelled, order.Status)
}

func TestOrderService_CancelOrder_NotOwner(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.OrderStatusPending}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockOrderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrOrderOwnershipViolation)

	order, err := fx.service.CancelOrder(ctx, uuid.New(), orderID)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderOwnershipViolation))
}

func TestOrderService_CancelOrder_TerminalStatus(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: userID, Status: entity.OrderStatusDelivered}

	var txErr error
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockOrderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(stored, nil)

			txErr = fn(mockFactory)

			mockOrderRepo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}).
		Return(domainerrors.ErrOrderStatusConflict)

	order, err := fx.service.CancelOrder(ctx, userID, orderID)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderStatusConflict))
	assert.True(t, errors.Is(txErr, domainerrors.ErrOrderStatusConflict))
}

func TestOrderService_CancelOrder_ConcurrentTransition(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: userID, Status: entity.OrderStatusPending}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockOrderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(stored, nil)
			mockOrderRepo.EXPECT().
				UpdateOrderStatus(ctx, orderID, entity.OrderStatusPending, entity.OrderStatusCancelled).
				Return(repository.ErrOrderStatusConflict)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrOrderStatusConflict)

	order, err := fx.service.CancelOrder(ctx, userID, orderID)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderStatusConflict))
}

func TestOrderService_UpdateOrderStatus_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	restaurantID := uuid.New()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), RestaurantID: restaurantID, Status: entity.OrderStatusPending}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockRestaurantRepo := mockRepo.NewMockRestaurantRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockFactory.EXPECT().RestaurantRepo().Return(mockRestaurantRepo)

			mockOrderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(stored, nil)
			mockRestaurantRepo.EXPECT().
				FindByID(ctx, restaurantID).
				Return(&entity.Restaurant{ID: restaurantID, MerchantID: merchantID}, nil)
			mockOrderRepo.EXPECT().
				UpdateOrderStatus(ctx, orderID, entity.OrderStatusPending, entity.OrderStatusConfirmed).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.eventPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	order, err := fx.service.UpdateOrderStatus(ctx, merchantID, orderID, entity.OrderStatusConfirmed)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, entity.OrderStatusConfirmed, order.Status)
}

func TestOrderService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()

	order, err := fx.service.UpdateOrderStatus(ctx, uuid.New(), uuid.New(), entity.OrderStatus("SHIPPED"))

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateOrderStatus_WrongMerchant(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	restaurantID := uuid.New()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), RestaurantID: restaurantID, Status: entity.OrderStatusPending}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockRestaurantRepo := mockRepo.NewMockRestaurantRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockFactory.EXPECT().RestaurantRepo().Return(mockRestaurantRepo)

			mockOrderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(stored, nil)
			mockRestaurantRepo.EXPECT().
				FindByID(ctx, restaurantID).
				Return(&entity.Restaurant{ID: restaurantID, MerchantID: uuid.New()}, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrRestaurantOwnershipViolation)

	order, err := fx.service.UpdateOrderStatus(ctx, uuid.New(), orderID, entity.OrderStatusConfirmed)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrRestaurantOwnershipViolation))
}

func TestOrderService_UpdateOrderStatus_IllegalTransition(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	restaurantID := uuid.New()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), RestaurantID: restaurantID, Status: entity.OrderStatusPending}

	var txErr error
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockRestaurantRepo := mockRepo.NewMockRestaurantRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockFactory.EXPECT().RestaurantRepo().Return(mockRestaurantRepo)

			mockOrderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(stored, nil)
			mockRestaurantRepo.EXPECT().
				FindByID(ctx, restaurantID).
				Return(&entity.Restaurant{ID: restaurantID, MerchantID: merchantID}, nil)

			txErr = fn(mockFactory)

			mockOrderRepo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}).
		Return(domainerrors.ErrOrderStatusConflict)

	// PENDING cannot jump straight to DELIVERED.
	order, err := fx.service.UpdateOrderStatus(ctx, merchantID, orderID, entity.OrderStatusDelivered)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderStatusConflict))
	assert.True(t, errors.Is(txErr, domainerrors.ErrOrderStatusConflict))
}

func TestOrderService_GeneratePickupQR_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: userID, RestaurantID: uuid.New(), Status: entity.OrderStatusConfirmed}
	png := []byte{0x89, 0x50, 0x4e, 0x47}

	fx.orderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(stored, nil)
	fx.qrcodeService.EXPECT().GeneratePickupQR(orderID).Return(png, nil)

	got, err := fx.service.GeneratePickupQR(ctx, userID, orderID)

	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestOrderService_GeneratePickupQR_AccessDenied(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	restaurantID := uuid.New()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), RestaurantID: restaurantID, Status: entity.OrderStatusConfirmed}

	fx.orderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(stored, nil)
	fx.restaurantRepo.EXPECT().
		FindByID(ctx, restaurantID).
		Return(&entity.Restaurant{ID: restaurantID, MerchantID: uuid.New()}, nil)

	got, err := fx.service.GeneratePickupQR(ctx, uuid.New(), orderID)

	assert.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderOwnershipViolation))
	fx.qrcodeService.AssertNotCalled(t, "GeneratePickupQR", mock.Anything)
}
