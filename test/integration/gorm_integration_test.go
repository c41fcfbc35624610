package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/repository/unitofwork"
	"ai-reportgen-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
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

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.SubscriptionRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Counting touches the table, so these double as schema checks
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Dataset Repository", func(t *testing.T) {
		count, err := uow.DatasetRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Dataset count: %d", count)
	})

	t.Run("Check Transactional Billing Subscription", func(t *testing.T) {
		// Billing rows carry a user FK, so seed the owner first
		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@reportfiber.test",
			FullName: "Integration Test User",
			Role:     "user",
			Status:   "active",
		}

		planId := uuid.New()
		plan := &entity.SubscriptionPlan{
			Id:            planId,
			Name:          "Integration Plan",
			Slug:          "integration-plan-" + uuid.New().String(),
			Price:         10.0,
			BillingPeriod: "monthly",
		}

		err := uow.UserRepository().Create(context.Background(), user)
		assert.NoError(t, err)
		err = uow.SubscriptionRepository().CreatePlan(context.Background(), plan)
		assert.NoError(t, err)

		// Billing address and subscription must land atomically
		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		billingId := uuid.New()
		billing := &entity.BillingAddress{
			Id:           billingId,
			UserId:       userId,
			FirstName:    "Test",
			LastName:     "User",
			Email:        "test@reportfiber.test",
			AddressLine1: "123 Street",
			City:         "Test City",
			State:        "Test State",
			PostalCode:   "12345",
			Country:      "Test Country",
		}

		err = uow.BillingRepository().Create(ctx, billing)
		assert.NoError(t, err)

		subId := uuid.New()
		sub := &entity.UserSubscription{
			Id:               subId,
			UserId:           userId,
			PlanId:           planId,
			BillingAddressId: &billingId,
			Status:           "active",
			PaymentStatus:    "paid",
		}

		err = uow.SubscriptionRepository().CreateSubscription(ctx, sub)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Subscription with Billing in Transaction")
	})
}
