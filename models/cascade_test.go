package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countWhere(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&count).Error)
	return count
}

func TestDeleteUserCascade(t *testing.T) {
	db := openTestDB(t)

	owner := createTestUser(t, db)
	other := createTestUser(t, db)
	require.NoError(t, db.Create(&Role{UserID: owner.ID, RoleType: RoleUser, IsPrimary: true}).Error)

	feed := createTestUserFeed(t, db, owner)

	// Engagement on the owner's feed by another user
	comment := Comment{UserID: other.ID, CommentType: CommentOnUserFeed, UserFeedID: &feed.ID, Content: "interested"}
	require.NoError(t, db.Create(&comment).Error)
	require.NoError(t, db.Create(&Reaction{UserID: other.ID, ReactionType: ReactionLike, ContentType: ReactOnUserFeed, UserFeedID: &feed.ID}).Error)

	// A proposal against the owner's feed
	_, profile := createTestArtisan(t, db)
	require.NoError(t, db.Create(&ArtisanProposal{
		UserFeedID: feed.ID, ArtisanID: profile.ID,
		ProposedPrice: 100, EstimatedDurationDays: 2, Message: "quote",
	}).Error)

	require.NoError(t, DeleteUserCascade(db, owner.ID))

	assert.EqualValues(t, 0, countWhere(t, db, &User{}, "id = ?", owner.ID))
	assert.EqualValues(t, 0, countWhere(t, db, &Role{}, "user_id = ?", owner.ID))
	assert.EqualValues(t, 0, countWhere(t, db, &UserFeed{}, "id = ?", feed.ID))
	assert.EqualValues(t, 0, countWhere(t, db, &Comment{}, "user_feed_id = ?", feed.ID))
	assert.EqualValues(t, 0, countWhere(t, db, &Reaction{}, "user_feed_id = ?", feed.ID))
	assert.EqualValues(t, 0, countWhere(t, db, &ArtisanProposal{}, "user_feed_id = ?", feed.ID))

	// The commenting user is untouched
	assert.EqualValues(t, 1, countWhere(t, db, &User{}, "id = ?", other.ID))
}

func TestDeleteUserCascadeRemovesArtisanSide(t *testing.T) {
	db := openTestDB(t)

	user, profile := createTestArtisan(t, db)

	work := &ArtisanWork{
		ArtisanID: profile.ID, Title: "Bathroom Tiling",
		Description: "Full bathroom retile", Location: "Springfield",
		FeaturedImage: "works/featured/tiles.png",
	}
	require.NoError(t, db.Create(work).Error)
	require.NoError(t, db.Create(&ArtisanWorkImage{WorkID: work.ID, Image: "works/gallery/tiles1.png"}).Error)

	post := createTestArtisanFeed(t, db, profile)
	viewer := createTestUser(t, db)
	require.NoError(t, db.Create(&Reaction{UserID: viewer.ID, ReactionType: ReactionLike, ContentType: ReactOnArtisanFeed, ArtisanFeedID: &post.ID}).Error)

	require.NoError(t, DeleteUserCascade(db, user.ID))

	assert.EqualValues(t, 0, countWhere(t, db, &ArtisanProfile{}, "id = ?", profile.ID))
	assert.EqualValues(t, 0, countWhere(t, db, &ArtisanWork{}, "artisan_id = ?", profile.ID))
	assert.EqualValues(t, 0, countWhere(t, db, &ArtisanWorkImage{}, "work_id = ?", work.ID))
	assert.EqualValues(t, 0, countWhere(t, db, &ArtisanFeed{}, "artisan_id = ?", profile.ID))
	assert.EqualValues(t, 0, countWhere(t, db, &Reaction{}, "artisan_feed_id = ?", post.ID))
}

func TestDeleteUserCascadeAdjustsSurvivingCounters(t *testing.T) {
	db := openTestDB(t)

	owner := createTestUser(t, db)
	feed := createTestUserFeed(t, db, owner)
	engager := createTestUser(t, db)

	// Engagement by the departing user on someone else's feed, with the
	// counters bumped the way the write path does it
	comment := Comment{UserID: engager.ID, CommentType: CommentOnUserFeed, UserFeedID: &feed.ID, Content: "interested"}
	require.NoError(t, db.Create(&comment).Error)
	require.NoError(t, AdjustCommentCounters(db, &comment, 1))

	reaction := Reaction{UserID: engager.ID, ReactionType: ReactionLike, ContentType: ReactOnUserFeed, UserFeedID: &feed.ID}
	require.NoError(t, db.Create(&reaction).Error)
	require.NoError(t, AdjustReactionCounters(db, &reaction, 1))

	report := Report{
		ReporterID: engager.ID, ContentType: ReportOnUserFeed, UserFeedID: &feed.ID,
		Reason: ReasonSpam, Description: "spammy request", Status: ReportPending,
	}
	require.NoError(t, db.Create(&report).Error)
	require.NoError(t, AdjustReportCounters(db, &report, 1))

	// A reply by a third user hangs off the departing user's comment and
	// goes down with the thread
	replier := createTestUser(t, db)
	reply := Comment{
		UserID: replier.ID, CommentType: CommentOnUserFeed, UserFeedID: &feed.ID,
		ParentCommentID: &comment.ID, Content: "me too",
	}
	require.NoError(t, db.Create(&reply).Error)
	require.NoError(t, AdjustCommentCounters(db, &reply, 1))

	require.NoError(t, DeleteUserCascade(db, engager.ID))

	var reloaded UserFeed
	require.NoError(t, db.First(&reloaded, "id = ?", feed.ID).Error)
	assert.EqualValues(t, 0, reloaded.CommentsCount, "Thread removal should drop both comments")
	assert.EqualValues(t, 0, reloaded.LikesCount)
	assert.EqualValues(t, 0, reloaded.ReportsCount)
	assert.EqualValues(t, 0, countWhere(t, db, &Comment{}, "user_feed_id = ?", feed.ID))
}

func TestDeleteUserFeedCascade(t *testing.T) {
	db := openTestDB(t)

	owner := createTestUser(t, db)
	feed := createTestUserFeed(t, db, owner)
	keep := createTestUserFeed(t, db, owner)

	comment := Comment{UserID: owner.ID, CommentType: CommentOnUserFeed, UserFeedID: &feed.ID, Content: "bump"}
	require.NoError(t, db.Create(&comment).Error)

	require.NoError(t, DeleteUserFeedCascade(db, feed.ID))

	assert.EqualValues(t, 0, countWhere(t, db, &UserFeed{}, "id = ?", feed.ID))
	assert.EqualValues(t, 0, countWhere(t, db, &Comment{}, "user_feed_id = ?", feed.ID))
	assert.EqualValues(t, 1, countWhere(t, db, &UserFeed{}, "id = ?", keep.ID), "Other feeds stay")
}

func TestDeleteArtisanProfileCascade(t *testing.T) {
	db := openTestDB(t)

	owner := createTestUser(t, db)
	feed := createTestUserFeed(t, db, owner)
	user, profile := createTestArtisan(t, db)

	require.NoError(t, db.Create(&ArtisanProposal{
		UserFeedID: feed.ID, ArtisanID: profile.ID,
		ProposedPrice: 80, EstimatedDurationDays: 1, Message: "quote",
	}).Error)

	require.NoError(t, DeleteArtisanProfileCascade(db, profile.ID))

	assert.EqualValues(t, 0, countWhere(t, db, &ArtisanProfile{}, "id = ?", profile.ID))
	assert.EqualValues(t, 0, countWhere(t, db, &ArtisanProposal{}, "artisan_id = ?", profile.ID))

	// The account itself survives losing its artisan profile
	assert.EqualValues(t, 1, countWhere(t, db, &User{}, "id = ?", user.ID))
	assert.EqualValues(t, 1, countWhere(t, db, &UserFeed{}, "id = ?", feed.ID))
}
