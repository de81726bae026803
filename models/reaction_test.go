package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReactionDuplicateRejected(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	feed := createTestUserFeed(t, db, user)

	first := Reaction{UserID: user.ID, ReactionType: ReactionLike, ContentType: ReactOnUserFeed, UserFeedID: &feed.ID}
	require.NoError(t, db.Create(&first).Error)

	// Same user, same target, even with a different reaction type
	second := Reaction{UserID: user.ID, ReactionType: ReactionDislike, ContentType: ReactOnUserFeed, UserFeedID: &feed.ID}
	err := db.Create(&second).Error

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "DUPLICATE_REACTION", verr.Code)
}

func TestReactionDifferentUsersAllowed(t *testing.T) {
	db := openTestDB(t)
	a := createTestUser(t, db)
	b := createTestUser(t, db)
	feed := createTestUserFeed(t, db, a)

	require.NoError(t, db.Create(&Reaction{UserID: a.ID, ReactionType: ReactionLike, ContentType: ReactOnUserFeed, UserFeedID: &feed.ID}).Error)
	require.NoError(t, db.Create(&Reaction{UserID: b.ID, ReactionType: ReactionLike, ContentType: ReactOnUserFeed, UserFeedID: &feed.ID}).Error)
}

func TestReactionInvalidType(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	feed := createTestUserFeed(t, db, user)

	reaction := Reaction{UserID: user.ID, ReactionType: "LOVE", ContentType: ReactOnUserFeed, UserFeedID: &feed.ID}
	err := db.Create(&reaction).Error

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "INVALID_REACTION_TYPE", verr.Code)
}

func TestReactionTargetMustMatchType(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	feed := createTestUserFeed(t, db, user)
	_, profile := createTestArtisan(t, db)
	post := createTestArtisanFeed(t, db, profile)

	reaction := Reaction{
		UserID: user.ID, ReactionType: ReactionLike, ContentType: ReactOnComment,
		UserFeedID: &feed.ID, ArtisanFeedID: &post.ID,
	}
	err := db.Create(&reaction).Error

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "INVALID_TARGET", verr.Code)
}

func TestReactionCountersBothDirections(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	_, profile := createTestArtisan(t, db)
	post := createTestArtisanFeed(t, db, profile)

	reaction := Reaction{UserID: user.ID, ReactionType: ReactionDislike, ContentType: ReactOnArtisanFeed, ArtisanFeedID: &post.ID}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reaction).Error; err != nil {
			return err
		}
		return AdjustReactionCounters(tx, &reaction, 1)
	})
	require.NoError(t, err)

	var reloaded ArtisanFeed
	require.NoError(t, db.First(&reloaded, "id = ?", post.ID).Error)
	assert.Equal(t, 1, reloaded.DislikesCount)
	assert.Equal(t, 0, reloaded.LikesCount)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&reaction).Error; err != nil {
			return err
		}
		return AdjustReactionCounters(tx, &reaction, -1)
	})
	require.NoError(t, err)

	require.NoError(t, db.First(&reloaded, "id = ?", post.ID).Error)
	assert.Equal(t, 0, reloaded.DislikesCount)
}
