package main

import (
	"log"

	"ai-reportgen-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedNotificationTypes populates the database with default notification types.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "USER_LOGIN",
			DisplayName: "Login Activity",
			Template:    "You logged in from {device} at {time}",
			TargetType:  "SELF",
			Priority:    "LOW",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "DOCUMENT_GENERATED",
			DisplayName: "Report Generated",
			Template:    "Your report \"{title}\" is ready.",
			TargetType:  "SELF",
			Priority:    "LOW",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "EXPORT_COMPLETED",
			DisplayName: "Export Completed",
			Template:    "Your {format} export of \"{title}\" is ready for download.",
			TargetType:  "SELF",
			Priority:    "LOW",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "TEST_EVENT",
			DisplayName: "Test Notification",
			Template:    "This is a test notification: {message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		// --- Administrative & System Notifications ---
		{
			Code:        "USER_REGISTERED",
			DisplayName: "New User Registration",
			Template:    "New user registered: {email} ({user_id})",
			TargetType:  "ADMIN", // Send to all admins
			Priority:    "MEDIUM",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "USER_DELETED",
			DisplayName: "User Account Deleted",
			Template:    "User deleted account: {user_id}",
			TargetType:  "ADMIN",
			Priority:    "MEDIUM",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "SUBSCRIPTION_CREATED",
			DisplayName: "New Subscription",
			Template:    "New subscription: {plan_name} for user {user_id}",
			TargetType:  "ADMIN",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "REFUND_REQUESTED",
			DisplayName: "Refund Requested",
			Template:    "Refund requested by {user_id} for subscription {subscription_id}. Reason: {reason}",
			TargetType:  "ADMIN",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "REFUND_APPROVED",
			DisplayName: "Refund Approved",
			Template:    "Your refund request for subscription {subscription_id} has been processed.",
			TargetType:  "SELF", // Send to the requesting user
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "REFUND_REJECTED",
			DisplayName: "Refund Rejected",
			Template:    "Your refund request for subscription {subscription_id} has been rejected. Reason: {reason}",
			TargetType:  "SELF", // Send to the requesting user
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "SYSTEM_BROADCAST",
			DisplayName: "System Announcement",
			Template:    "{message}",
			TargetType:  "BROADCAST",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web"]`)),
			IsActive:    true,
		},
		{
			Code:        "GENERATION_USAGE_ADJUSTED",
			DisplayName: "Generation Usage Adjusted",
			Template:    "Your daily generation usage was adjusted by an administrator: {limit_description}.",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			Channels:    datatypes.JSON([]byte(`["web"]`)),
			IsActive:    true,
		},
		{
			Code:        "SUBSCRIPTION_CANCELLATION_REQUESTED",
			DisplayName: "Cancellation Requested",
			Template:    "Subscription cancellation requested by {user_id} for subscription {subscription_id}. Reason: {reason}",
			TargetType:  "ADMIN",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "SUBSCRIPTION_CANCELLATION_PROCESSED",
			DisplayName: "Cancellation Processed",
			Template:    "Your subscription cancellation request for {plan_name} has been {status}.",
			TargetType:  "SELF",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
	}

	for _, t := range types {
		// ON CONFLICT keeps the seeder idempotent across deploys
		err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error
		if err != nil {
			log.Printf("Error seeding notification type %s: %v", t.Code, err)
		} else {
		}
	}
	log.Println("âœ… Notification types seeded successfully.")
}
