package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixtureSeq int

// openTestDB opens an in-memory database and migrates every model into it
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(AllModels()...))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *User {
	t.Helper()
	fixtureSeq++

	user := &User{
		Auth0ID:  fmt.Sprintf("auth0|user%d", fixtureSeq),
		Email:    fmt.Sprintf("user%d@example.com", fixtureSeq),
		Username: fmt.Sprintf("user%d", fixtureSeq),
		FullName: "Test User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestArtisan(t *testing.T, db *gorm.DB) (*User, *ArtisanProfile) {
	t.Helper()

	user := createTestUser(t, db)
	profile := &ArtisanProfile{
		UserID:            user.ID,
		User:              *user,
		BusinessName:      "Test Workshop",
		Specialization:    "Carpentry",
		YearsOfExperience: 5,
		ExperienceLevel:   ExperienceExperienced,
	}
	require.NoError(t, db.Omit("User").Create(profile).Error)
	return user, profile
}

func createTestUserFeed(t *testing.T, db *gorm.DB, owner *User) *UserFeed {
	t.Helper()

	feed := &UserFeed{
		UserID:        owner.ID,
		Title:         "Fix kitchen cabinets",
		Description:   "Two cabinet doors came off their hinges",
		JobCategory:   "CARPENTRY",
		InvoiceImage:  "invoices/cabinet.png",
		InvoiceAmount: 120.50,
		Location:      "Springfield",
		Status:        FeedOpen,
		Priority:      PriorityMedium,
		IsActive:      true,
	}
	require.NoError(t, db.Create(feed).Error)
	return feed
}

func createTestArtisanFeed(t *testing.T, db *gorm.DB, profile *ArtisanProfile) *ArtisanFeed {
	t.Helper()

	feed := &ArtisanFeed{
		ArtisanID:     profile.ID,
		Title:         "Cabinet restoration special",
		Description:   "Twenty percent off cabinet work this month",
		PostType:      PostPromotion,
		FeaturedImage: "artisan_feeds/images/cabinets.png",
		IsActive:      true,
	}
	require.NoError(t, db.Create(feed).Error)
	return feed
}
