package postgres

import (
	"context"

	"bento/internal/domain/entity"
	domainerrors "bento/internal/domain/errors"
	"bento/internal/domain/repository"
	"bento/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface using GORM.
// Its multi-step write methods are meant to run inside a transaction started
// by the TransactionManager; each one is a single statement on its own.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// CreateOrder persists an order header.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM := &model.OrderModel{
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		Status:       string(order.Status),
		TotalCents:   order.TotalCents,
	}

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrRestaurantNotFound.WrapMessage("order references unknown user or restaurant")
		}

		return translateExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// CreateOrderItems persists all line items of an order in one batch insert,
// preserving request order.
func (repo *orderRepository) CreateOrderItems(ctx context.Context, orderID uuid.UUID, items []*entity.OrderItem) error {
	itemModels := toOrderItemModels(orderID, items)

	if err := repo.db.WithContext(ctx).Create(&itemModels).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrMenuItemNotFound.WrapMessage("order line references unknown menu item")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("order line quantity must be positive")
		}

		return translateExecuteError(err, "failed to create order items")
	}

	for i, itemM := range itemModels {
		items[i].ID = itemM.ID
		items[i].OrderID = itemM.OrderID
		items[i].CreatedAt = itemM.CreatedAt
	}

	return nil
}

// SumOrderItems recomputes the order total from the persisted line rows.
// Summing in SQL over what was actually written is the source of truth for
// the header total.
func (repo *orderRepository) SumOrderItems(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var total int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(price_cents * quantity), 0)").
		Scan(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum order items")
	}

	return total, nil
}

// UpdateOrderTotal writes the final derived total onto the order header.
func (repo *orderRepository) UpdateOrderTotal(ctx context.Context, orderID uuid.UUID, totalCents int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", orderID).
		Update("total_cents", totalCents)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order total")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// FindOrderByID retrieves an order with its line items.
func (repo *orderRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items", orderItemsInRequestOrder).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// FindOrdersByUser retrieves all orders placed by a user, newest first.
func (repo *orderRepository) FindOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items", orderItemsInRequestOrder).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// FindOrdersByRestaurant retrieves all orders for a restaurant, newest first.
func (repo *orderRepository) FindOrdersByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items", orderItemsInRequestOrder).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by restaurant")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// UpdateOrderStatus performs a conditional transition from one status to
// another. The WHERE clause carries the expected current status, so a
// concurrent transition makes this update match no row.
func (repo *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderStatusConflict
	}

	return nil
}

// orderItemsInRequestOrder sorts preloaded line items by their persisted line
// number. Batch-inserted lines share one created_at timestamp, so the line
// number is the only stable request-order key.
func orderItemsInRequestOrder(db *gorm.DB) *gorm.DB {
	return db.Order("line_no ASC")
}

// --- Mapper Functions ---

// toOrderItemModels converts domain line items to GORM models, numbering each
// line with its position so the request order survives the batch insert.
func toOrderItemModels(orderID uuid.UUID, items []*entity.OrderItem) []*model.OrderItemModel {
	itemModels := make([]*model.OrderItemModel, 0, len(items))
	for i, item := range items {
		itemModels = append(itemModels, &model.OrderItemModel{
			OrderID:    orderID,
			MenuItemID: item.MenuItemID,
			LineNo:     i,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
		})
	}

	return itemModels
}

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for i := range data.Items {
		items = append(items, toOrderItemDomain(&data.Items[i]))
	}

	return &entity.Order{
		ID:           data.ID,
		UserID:       data.UserID,
		RestaurantID: data.RestaurantID,
		Status:       entity.OrderStatus(data.Status),
		TotalCents:   data.TotalCents,
		Items:        items,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// toOrderItemDomain converts a GORM OrderItemModel to a domain OrderItem entity.
func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	if data == nil {
		return nil
	}

	return &entity.OrderItem{
		ID:         data.ID,
		OrderID:    data.OrderID,
		MenuItemID: data.MenuItemID,
		Quantity:   data.Quantity,
		PriceCents: data.PriceCents,
		CreatedAt:  data.CreatedAt,
	}
}
