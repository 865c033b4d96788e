package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/model"
	"finance-manager-be/internal/repository/unitofwork"
	"finance-manager-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.SubscriptionRepository())
	assert.NotNil(t, uow.SystemConfigRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Config Repository", func(t *testing.T) {
		cfg, err := uow.SystemConfigRepository().FindByKey(context.Background(), entity.ConfigKeyPlans)
		assert.NoError(t, err)
		if cfg == nil {
			t.Log("No plans_config entry yet (defaults will be served)")
		} else {
			t.Logf("plans_config present, category=%s", cfg.Category)
		}
	})

	t.Run("Check Transactional Subscription With Payable", func(t *testing.T) {
		ctx := context.Background()

		// Users have no repository-level Create; seed directly.
		userId := uuid.New()
		user := model.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Role:     "user",
			Status:   "active",
		}
		err := gormDB.Create(&user).Error
		assert.NoError(t, err)

		// Transaction Test
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		trialEnd := time.Now().AddDate(0, 0, 7)
		sub := &entity.Subscription{
			Id:          uuid.New(),
			UserId:      userId,
			Status:      entity.SubscriptionStatusTrial,
			TrialEndsAt: &trialEnd,
		}
		err = uow.SubscriptionRepository().Create(ctx, sub)
		assert.NoError(t, err)

		payable := &entity.Payable{
			Id:          uuid.New(),
			UserId:      userId,
			Description: "Integration test invoice",
			Amount:      decimal.NewFromFloat(150.50),
			DueDate:     time.Now().AddDate(0, 0, 30),
			Status:      entity.AccountStatusPending,
		}
		err = uow.PayableRepository().Create(ctx, payable)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Subscription with Payable in Transaction")
	})
}
