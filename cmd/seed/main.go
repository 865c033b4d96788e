package main

import (
	"encoding/json"
	"log"
	"os"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/model"
	"finance-manager-be/internal/service"
	"finance-manager-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeds the configuration store with the default plan catalog, system
// settings and Stripe state, plus one admin account. Safe to re-run:
// existing config entries are updated, the admin user is kept.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding configuration store...")

	catalog := service.DefaultPlansCatalog()
	settings := service.DefaultSystemSettings()
	stripe := entity.StripeSettings{
		Enabled:     false,
		Environment: "test",
	}

	seedConfig(db, entity.ConfigKeyPlans, catalog, "Subscription plan catalog", entity.ConfigCategoryPlans)
	seedConfig(db, entity.ConfigKeySystemSettings, settings, "Platform behavior toggles", entity.ConfigCategorySystem)
	seedConfig(db, entity.ConfigKeyStripe, stripe, "Stripe integration state", entity.ConfigCategoryPayment)

	seedAdmin(db)

	log.Println("Seed completed successfully.")
}

func seedConfig(db *gorm.DB, key string, value interface{}, description, category string) {
	payload, err := json.Marshal(value)
	if err != nil {
		log.Fatalf("Error: Failed to marshal %s: %v", key, err)
	}

	cfg := model.SystemConfiguration{
		Key:         key,
		Value:       datatypes.JSON(payload),
		Description: description,
		Category:    category,
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "category", "updated_at"}),
	}).Create(&cfg).Error
	if err != nil {
		log.Fatalf("Error: Failed to seed %s: %v", key, err)
	}
	log.Printf("Seeded config entry: %s", key)
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	admin := model.User{
		Email:    email,
		FullName: "Platform Admin",
		Role:     "admin",
		Status:   "active",
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&admin).Error
	if err != nil {
		log.Fatalf("Error: Failed to seed admin user: %v", err)
	}
	log.Printf("Seeded admin user: %s", email)
}
