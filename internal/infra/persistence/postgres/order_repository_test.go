package postgres

import (
	"testing"

	"bento/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToOrderItemModels_NumbersLinesInRequestOrder(t *testing.T) {
	orderID := uuid.New()
	duplicated := uuid.New()
	items := []*entity.OrderItem{
		{MenuItemID: duplicated, Quantity: 2, PriceCents: 1000},
		{MenuItemID: uuid.New(), Quantity: 1, PriceCents: 500},
		{MenuItemID: duplicated, Quantity: 3, PriceCents: 1000},
	}

	itemModels := toOrderItemModels(orderID, items)

	require.Len(t, itemModels, len(items))
	for i, itemM := range itemModels {
		assert.Equal(t, orderID, itemM.OrderID)
		assert.Equal(t, i, itemM.LineNo)
		assert.Equal(t, items[i].MenuItemID, itemM.MenuItemID)
		assert.Equal(t, items[i].Quantity, itemM.Quantity)
		assert.Equal(t, items[i].PriceCents, itemM.PriceCents)
	}
}
