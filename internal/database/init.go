package database

import "gorm.io/gorm"

func InitStoreDatabase(dbConfig *DatabaseConfig) (*gorm.DB, error) {
	return NewConnection(dbConfig)
}
