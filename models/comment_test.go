package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCommentRequiresMatchingTarget(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	feed := createTestUserFeed(t, db, user)
	_, profile := createTestArtisan(t, db)
	post := createTestArtisanFeed(t, db, profile)

	tests := []struct {
		name    string
		comment Comment
		valid   bool
	}{
		{
			"user feed comment",
			Comment{UserID: user.ID, CommentType: CommentOnUserFeed, UserFeedID: &feed.ID, Content: "hi"},
			true,
		},
		{
			"artisan feed comment",
			Comment{UserID: user.ID, CommentType: CommentOnArtisanFeed, ArtisanFeedID: &post.ID, Content: "hi"},
			true,
		},
		{
			"missing foreign key",
			Comment{UserID: user.ID, CommentType: CommentOnUserFeed, Content: "hi"},
			false,
		},
		{
			"wrong foreign key for type",
			Comment{UserID: user.ID, CommentType: CommentOnUserFeed, ArtisanFeedID: &post.ID, Content: "hi"},
			false,
		},
		{
			"both foreign keys set",
			Comment{UserID: user.ID, CommentType: CommentOnArtisanFeed, UserFeedID: &feed.ID, ArtisanFeedID: &post.ID, Content: "hi"},
			false,
		},
		{
			"unknown discriminator",
			Comment{UserID: user.ID, CommentType: "WORK", UserFeedID: &feed.ID, Content: "hi"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comment := tt.comment
			err := db.Create(&comment).Error
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "INVALID_TARGET", verr.Code)
		})
	}
}

func TestCommentReplies(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	feed := createTestUserFeed(t, db, user)

	parent := Comment{UserID: user.ID, CommentType: CommentOnUserFeed, UserFeedID: &feed.ID, Content: "parent"}
	require.NoError(t, db.Create(&parent).Error)

	reply := Comment{
		UserID: user.ID, CommentType: CommentOnUserFeed, UserFeedID: &feed.ID,
		Content: "reply", ParentCommentID: &parent.ID,
	}
	require.NoError(t, db.Create(&reply).Error)

	var loaded Comment
	require.NoError(t, db.Preload("Replies").First(&loaded, "id = ?", parent.ID).Error)
	require.Len(t, loaded.Replies, 1)
	assert.Equal(t, "reply", loaded.Replies[0].Content)
}

func TestCommentCountersFollowWrites(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	feed := createTestUserFeed(t, db, user)

	comment := Comment{UserID: user.ID, CommentType: CommentOnUserFeed, UserFeedID: &feed.ID, Content: "hi"}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return AdjustCommentCounters(tx, &comment, 1)
	})
	require.NoError(t, err)

	var reloaded UserFeed
	require.NoError(t, db.First(&reloaded, "id = ?", feed.ID).Error)
	assert.Equal(t, 1, reloaded.CommentsCount)

	require.NoError(t, DeleteCommentCascade(db, comment.ID))

	require.NoError(t, db.First(&reloaded, "id = ?", feed.ID).Error)
	assert.Equal(t, 0, reloaded.CommentsCount)
}

func TestDeleteCommentCascadeRemovesThread(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	feed := createTestUserFeed(t, db, user)

	parent := Comment{UserID: user.ID, CommentType: CommentOnUserFeed, UserFeedID: &feed.ID, Content: "parent"}
	require.NoError(t, db.Create(&parent).Error)
	reply := Comment{
		UserID: user.ID, CommentType: CommentOnUserFeed, UserFeedID: &feed.ID,
		Content: "reply", ParentCommentID: &parent.ID,
	}
	require.NoError(t, db.Create(&reply).Error)
	nested := Comment{
		UserID: user.ID, CommentType: CommentOnUserFeed, UserFeedID: &feed.ID,
		Content: "nested", ParentCommentID: &reply.ID,
	}
	require.NoError(t, db.Create(&nested).Error)

	// Reaction on a reply must disappear with the thread
	reaction := Reaction{
		UserID: user.ID, ReactionType: ReactionLike,
		ContentType: ReactOnComment, CommentID: &reply.ID,
	}
	require.NoError(t, db.Create(&reaction).Error)

	require.NoError(t, DeleteCommentCascade(db, parent.ID))

	var commentCount, reactionCount int64
	require.NoError(t, db.Model(&Comment{}).Where("user_feed_id = ?", feed.ID).Count(&commentCount).Error)
	require.NoError(t, db.Model(&Reaction{}).Where("comment_id = ?", reply.ID).Count(&reactionCount).Error)
	assert.EqualValues(t, 0, commentCount, "Whole reply thread should be gone")
	assert.EqualValues(t, 0, reactionCount, "Reactions on replies should be gone")
}
