package repository

import (
	"gorm.io/gorm"

	"github.com/ruachost/domainstack/internal/models"
)

type Repositories struct {
	OrderRepository OrderRepository
}

func InitRepositories(storeDB *gorm.DB) *Repositories {
	return &Repositories{
		OrderRepository: NewOrderRepository(storeDB),
	}
}

func MigrateDB(storeDB *gorm.DB) error {
	return storeDB.AutoMigrate(
		&models.Order{},
		&models.OrderDomain{},
	)
}
