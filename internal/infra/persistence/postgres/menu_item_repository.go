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
	"gorm.io/gorm/clause"
)

// menuItemRepository implements the repository.MenuItemRepository interface using GORM.
type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository is the constructor for menuItemRepository.
func NewMenuItemRepository(db *gorm.DB) repository.MenuItemRepository {
	return &menuItemRepository{
		db: db,
	}
}

// Create persists a new menu item.
func (repo *menuItemRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	itemM := fromMenuItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrRestaurantNotFound.WrapMessage("menu item references unknown restaurant")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("menu item price must be positive")
		}

		return translateExecuteError(err, "failed to create menu item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// FindByID retrieves a menu item by its unique ID.
func (repo *menuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var itemM model.MenuItemModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMenuItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find menu item by id")
	}

	return toMenuItemDomain(&itemM), nil
}

// FindForOrder retrieves a menu item with SELECT ... FOR UPDATE. The returned
// row is locked until the surrounding transaction commits or rolls back, so
// availability and price stay frozen while an order validates against them.
func (repo *menuItemRepository) FindForOrder(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var itemM model.MenuItemModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMenuItemNotFound
		}

		return nil, errors.Wrap(err, "failed to lock menu item for order")
	}

	return toMenuItemDomain(&itemM), nil
}

// ListByRestaurant retrieves a restaurant's menu.
func (repo *menuItemRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, onlyAvailable bool) ([]*entity.MenuItem, error) {
	query := repo.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID)
	if onlyAvailable {
		query = query.Where("is_available = ?", true)
	}

	var itemModels []*model.MenuItemModel
	if err := query.
		Order("category ASC, name ASC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list menu items by restaurant")
	}

	items := make([]*entity.MenuItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toMenuItemDomain(itemM))
	}

	return items, nil
}

// UpdatePrice changes the authoritative price of a menu item.
// Existing order lines keep their snapshots.
func (repo *menuItemRepository) UpdatePrice(ctx context.Context, id uuid.UUID, priceCents int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.MenuItemModel{}).
		Where("id = ?", id).
		Update("price_cents", priceCents)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update menu item price")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMenuItemNotFound
	}

	return nil
}

// UpdateAvailability flips the availability flag of a menu item.
func (repo *menuItemRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.MenuItemModel{}).
		Where("id = ?", id).
		Update("is_available", available)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update menu item availability")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMenuItemNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toMenuItemDomain converts a GORM MenuItemModel to a domain MenuItem entity.
func toMenuItemDomain(data *model.MenuItemModel) *entity.MenuItem {
	if data == nil {
		return nil
	}

	return &entity.MenuItem{
		ID:           data.ID,
		RestaurantID: data.RestaurantID,
		Name:         data.Name,
		Description:  data.Description,
		Category:     data.Category,
		PriceCents:   data.PriceCents,
		IsAvailable:  data.IsAvailable,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromMenuItemDomain converts a domain MenuItem entity to a GORM MenuItemModel.
func fromMenuItemDomain(data *entity.MenuItem) *model.MenuItemModel {
	if data == nil {
		return nil
	}

	return &model.MenuItemModel{
		ID:           data.ID,
		RestaurantID: data.RestaurantID,
		Name:         data.Name,
		Description:  data.Description,
		Category:     data.Category,
		PriceCents:   data.PriceCents,
		IsAvailable:  data.IsAvailable,
	}
}
