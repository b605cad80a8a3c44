package migration

import (
	"fmt"
	"log"

	"pashameshi-backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Group{}); err != nil {
		log.Fatalf("Error migrating group database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.StockItem{}); err != nil {
		log.Fatalf("Error migrating stock item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ShoppingListItem{}); err != nil {
		log.Fatalf("Error migrating shopping list item database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
