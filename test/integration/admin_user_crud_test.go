package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"ai-reportgen-be/internal/bootstrap"
	"ai-reportgen-be/internal/config"
	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/pkg/serverutils"
	"ai-reportgen-be/internal/server"
	"ai-reportgen-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminUserCRUD(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
		// Middleware falls back to the same default secret
		os.Setenv("JWT_SECRET", "default_secret")
	}
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	// Seed an admin directly, then log in through the API for a real token
	adminPass := "admin123"
	adminHash, _ := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	adminHashStr := string(adminHash)

	adminId := uuid.New()
	adminUser := &entity.User{
		Id:            adminId,
		Email:         "ops-admin@reportfiber.test",
		FullName:      "Ops Admin",
		PasswordHash:  &adminHashStr,
		Role:          entity.UserRoleAdmin,
		Status:        entity.UserStatusActive,
		EmailVerified: true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	db.Create(adminUser)
	defer db.Delete(&entity.User{}, adminId)

	loginReq := dto.LoginRequest{
		Email:    "ops-admin@reportfiber.test",
		Password: "admin123",
	}
	loginBody, _ := json.Marshal(loginReq)
	req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(string(loginBody)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)

	var loginRes serverutils.BaseResponse[dto.LoginResponse]
	json.NewDecoder(resp.Body).Decode(&loginRes)
	token := loginRes.Data.AccessToken
	assert.NotEmpty(t, token, "Admin token should not be empty")

	t.Run("Update User Details", func(t *testing.T) {
		targetId := uuid.New()
		targetUser := &entity.User{
			Id:            targetId,
			Email:         "analyst@reportfiber.test",
			FullName:      "Survey Analyst",
			Role:          entity.UserRoleUser,
			Status:        entity.UserStatusActive,
			EmailVerified: true,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		db.Create(targetUser)
		defer db.Delete(&entity.User{}, targetId)

		updateReq := dto.AdminUpdateUserRequest{
			FullName: "Lead Analyst",
			Role:     "admin",
		}
		updateBody, _ := json.Marshal(updateReq)

		req := httptest.NewRequest("PUT", "/api/admin/users/"+targetId.String(), strings.NewReader(string(updateBody)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)

		var updateRes serverutils.BaseResponse[dto.UserProfileResponse]
		json.NewDecoder(resp.Body).Decode(&updateRes)

		assert.Equal(t, "Lead Analyst", updateRes.Data.FullName)
		assert.Equal(t, "admin", updateRes.Data.Role)

		var dbUser entity.User
		db.First(&dbUser, targetId)
		assert.Equal(t, "Lead Analyst", dbUser.FullName)
		assert.Equal(t, entity.UserRoleAdmin, dbUser.Role)
	})

	t.Run("Delete User", func(t *testing.T) {
		doomedId := uuid.New()
		doomedUser := &entity.User{
			Id:        doomedId,
			Email:     "leaver@reportfiber.test",
			FullName:  "Departing User",
			Role:      entity.UserRoleUser,
			Status:    entity.UserStatusActive,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		db.Create(doomedUser)

		req := httptest.NewRequest("DELETE", "/api/admin/users/"+doomedId.String(), nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, _ := app.Test(req, -1)

		if resp.StatusCode != 200 {
			var errRes serverutils.BaseResponse[any]
			json.NewDecoder(resp.Body).Decode(&errRes)
			fmt.Printf("Delete Status: %d, Msg: %s\n", resp.StatusCode, errRes.Message)
		}
		assert.Equal(t, 200, resp.StatusCode)

		// Accept hard or soft delete; raw query so the soft-delete scope
		// cannot hide the row
		var result struct {
			Id        uuid.UUID
			DeletedAt *time.Time
		}
		db.Raw("SELECT id, deleted_at FROM users WHERE id = ?", doomedId).Scan(&result)

		if result.Id == uuid.Nil {
			return
		}
		assert.NotNil(t, result.DeletedAt, "User row exists but deleted_at is nil")
	})
}
