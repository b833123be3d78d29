package main

import (
	"bento/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.UserProfileModel{},
		model.MerchantProfileModel{},
		model.AuthenticationModel{},
		model.RefreshTokenModel{},
		model.RestaurantModel{},
		model.MenuItemModel{},
		model.OrderModel{},
		model.OrderItemModel{},
		model.UserDeviceModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
