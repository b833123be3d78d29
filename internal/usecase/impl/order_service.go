// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "bento/internal/delivery/context"
	"bento/internal/domain/entity"
	domainerrors "bento/internal/domain/errors"
	"bento/internal/domain/repository"
	"bento/internal/domain/service"
	"bento/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager      repository.TransactionManager
	orderRepo      repository.OrderRepository
	restaurantRepo repository.RestaurantRepository
	eventPublisher service.EventPublisher
	qrcodeService  service.QRCodeService
	logger         *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	OrderRepo      repository.OrderRepository
	RestaurantRepo repository.RestaurantRepository
	EventPublisher service.EventPublisher
	QRCodeService  service.QRCodeService
	Logger         *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:      params.TxManager,
		orderRepo:      params.OrderRepo,
		restaurantRepo: params.RestaurantRepo,
		eventPublisher: params.EventPublisher,
		qrcodeService:  params.QRCodeService,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder places a new order atomically. Every step that touches order
// state runs inside a single transaction: the header insert, the per-line
// availability checks with price snapshots, the line inserts, and the total
// derivation. Any failure rolls the whole order back; there is never a
// half-written order visible to other connections.
func (srv *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, input *usecase.CreateOrderInput) (*entity.Order, error) {
	srv.log(ctx).Info("Placing order",
		slog.Any("userID", userID),
		slog.Any("restaurantID", input.RestaurantID),
		slog.Int("lines", len(input.Items)))

	if err := validateOrderLines(input.Items); err != nil {
		srv.log(ctx).Warn("Order rejected before transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	var createdOrder *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		order, err := srv.placeOrderTx(ctx, repoFactory, userID, input)
		if err != nil {
			return err
		}
		createdOrder = order

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute order creation transaction",
			slog.Any("userID", userID),
			slog.Any("restaurantID", input.RestaurantID),
			slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order creation transaction")
	}

	srv.log(ctx).Info("Order placed",
		slog.Any("orderID", createdOrder.ID),
		slog.Int64("totalCents", createdOrder.TotalCents))

	// Post-commit, fire-and-forget: a lost event never fails a committed order.
	srv.publishOrderEvent(ctx, createdOrder)

	return createdOrder, nil
}

// validateOrderLines rejects obviously malformed requests before a
// transaction is opened.
func validateOrderLines(lines []usecase.OrderLineInput) error {
	if len(lines) == 0 {
		return errors.Wrap(domainerrors.ErrEmptyOrder, "order has no line items")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return errors.Wrap(domainerrors.ErrValidationFailed, "order line quantity must be positive")
		}
		if line.MenuItemID == uuid.Nil {
			return errors.Wrap(domainerrors.ErrValidationFailed, "order line is missing a menu item id")
		}
	}

	return nil
}

// placeOrderTx runs the order workflow inside an open transaction.
func (srv *orderService) placeOrderTx(ctx context.Context, repoFactory repository.RepositoryFactory, userID uuid.UUID, input *usecase.CreateOrderInput) (*entity.Order, error) {
	restaurantRepo := repoFactory.RestaurantRepo()
	menuItemRepo := repoFactory.MenuItemRepo()
	orderRepo := repoFactory.OrderRepo()

	// 1. The restaurant must exist before anything is written.
	if _, err := restaurantRepo.FindByID(ctx, input.RestaurantID); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRestaurantNotFound, "order references unknown restaurant")
		}

		return nil, errors.Wrap(err, "failed to load restaurant for order")
	}

	// 2. Create the order header in its initial state with a zero total.
	// The real total is derived after the lines are persisted.
	order := &entity.Order{
		UserID:       userID,
		RestaurantID: input.RestaurantID,
		Status:       entity.OrderStatusPending,
	}
	if err := orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to create order header")
	}

	// 3. Re-check each requested item under a row lock and snapshot its
	// current price. The lock holds until commit, so a merchant flipping
	// availability concurrently cannot slip an unavailable item into this
	// order. Duplicate menu item IDs stay separate lines.
	items := make([]*entity.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		menuItem, err := menuItemRepo.FindForOrder(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, repository.ErrMenuItemNotFound) {
				return nil, domainerrors.ErrMenuItemNotFound.WithDetails("menu item " + line.MenuItemID.String() + " does not exist")
			}

			return nil, errors.Wrap(err, "failed to load menu item for order")
		}
		if menuItem.RestaurantID != input.RestaurantID {
			// Items from another restaurant are treated as unknown rather than
			// leaking which restaurant they belong to.
			return nil, domainerrors.ErrMenuItemNotFound.WithDetails("menu item " + line.MenuItemID.String() + " does not belong to this restaurant's menu")
		}
		if !menuItem.IsAvailable {
			return nil, domainerrors.ErrItemUnavailable.WithDetails("menu item " + menuItem.ID.String() + " is currently unavailable")
		}

		items = append(items, &entity.OrderItem{
			OrderID:    order.ID,
			MenuItemID: menuItem.ID,
			Quantity:   line.Quantity,
			PriceCents: menuItem.PriceCents,
		})
	}

	if err := orderRepo.CreateOrderItems(ctx, order.ID, items); err != nil {
		return nil, errors.Wrap(err, "failed to create order items")
	}

	// 4. Derive the total from the rows actually persisted, not from the
	// in-memory slice, then write it onto the header.
	total, err := orderRepo.SumOrderItems(ctx, order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum order items")
	}
	if err := orderRepo.UpdateOrderTotal(ctx, order.ID, total); err != nil {
		return nil, errors.Wrap(err, "failed to update order total")
	}

	order.TotalCents = total
	order.Items = items

	return order, nil
}

// publishOrderEvent emits an order status event. Failures are logged and
// swallowed: notification delivery is best-effort.
func (srv *orderService) publishOrderEvent(ctx context.Context, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:      order.ID.String(),
		UserID:       order.UserID.String(),
		RestaurantID: order.RestaurantID.String(),
		Status:       string(order.Status),
		TotalCents:   order.TotalCents,
	}

	if err := srv.eventPublisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order event",
			slog.Any("orderID", order.ID),
			slog.String("status", string(order.Status)),
			slog.Any("error", err))
	}
}

// GetOrder retrieves an order for its owner or the owning restaurant's merchant.
func (srv *orderService) GetOrder(ctx context.Context, requesterID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if order.UserID != requesterID {
		// Not the customer; allow the restaurant's merchant through.
		restaurant, err := srv.restaurantRepo.FindByID(ctx, order.RestaurantID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load restaurant for order access check")
		}
		if restaurant.MerchantID != requesterID {
			srv.log(ctx).Warn("Order access denied", slog.Any("orderID", orderID), slog.Any("requesterID", requesterID))

			return nil, errors.Wrap(domainerrors.ErrOrderOwnershipViolation, "order belongs to another user")
		}
	}

	return order, nil
}

// ListUserOrders retrieves the requester's own orders, newest first.
func (srv *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindOrdersByUser(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list orders", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// CancelOrder cancels a pending order on behalf of its owner. The check and
// the conditional update run in one transaction so a concurrent confirmation
// by the merchant cannot race past the cancellation.
func (srv *orderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	srv.log(ctx).Info("Cancelling order", slog.Any("userID", userID), slog.Any("orderID", orderID))

	var cancelled *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindOrderByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order for cancellation")
		}
		if order.UserID != userID {
			return errors.Wrap(domainerrors.ErrOrderOwnershipViolation, "order belongs to another user")
		}
		if !order.Status.CanTransitionTo(entity.OrderStatusCancelled) {
			return domainerrors.ErrOrderStatusConflict.WithDetails("order in status " + string(order.Status) + " can no longer be cancelled")
		}

		if err := orderRepo.UpdateOrderStatus(ctx, orderID, order.Status, entity.OrderStatusCancelled); err != nil {
			if errors.Is(err, repository.ErrOrderStatusConflict) {
				return errors.Wrap(domainerrors.ErrOrderStatusConflict, "order status changed concurrently")
			}

			return errors.Wrap(err, "failed to cancel order")
		}

		order.Status = entity.OrderStatusCancelled
		cancelled = order

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to cancel order", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order cancellation transaction")
	}

	srv.publishOrderEvent(ctx, cancelled)

	return cancelled, nil
}

// UpdateOrderStatus performs a merchant-driven lifecycle transition.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, merchantID, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	srv.log(ctx).Info("Updating order status",
		slog.Any("merchantID", merchantID),
		slog.Any("orderID", orderID),
		slog.String("status", string(status)))

	if !status.Valid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown order status")
	}

	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()
		restaurantRepo := repoFactory.RestaurantRepo()

		order, err := orderRepo.FindOrderByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order for status update")
		}

		restaurant, err := restaurantRepo.FindByID(ctx, order.RestaurantID)
		if err != nil {
			return errors.Wrap(err, "failed to load restaurant for status update")
		}
		if restaurant.MerchantID != merchantID {
			return errors.Wrap(domainerrors.ErrRestaurantOwnershipViolation, "order belongs to another merchant's restaurant")
		}

		if !order.Status.CanTransitionTo(status) {
			return domainerrors.ErrOrderStatusConflict.WithDetails("transition " + string(order.Status) + " -> " + string(status) + " is not allowed")
		}

		if err := orderRepo.UpdateOrderStatus(ctx, orderID, order.Status, status); err != nil {
			if errors.Is(err, repository.ErrOrderStatusConflict) {
				return errors.Wrap(domainerrors.ErrOrderStatusConflict, "order status changed concurrently")
			}

			return errors.Wrap(err, "failed to update order status")
		}

		order.Status = status
		updated = order

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to update order status", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order status transaction")
	}

	srv.publishOrderEvent(ctx, updated)

	return updated, nil
}

// GeneratePickupQR renders the pickup QR code for an order the requester owns.
func (srv *orderService) GeneratePickupQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GeneratePickupQR(order.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate pickup QR code", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate pickup QR code")
	}

	return png, nil
}
