package models

import (
	"gorm.io/gorm"
)

// Denormalized engagement counters on feeds and comments are maintained
// transactionally: every comment/reaction/report write adjusts the target's
// counter with an atomic column update in the same transaction as the row
// write, so concurrent engagement cannot lose updates.

// AdjustCommentCounters moves the comments_count on the comment's target
// feed by delta (+1 on create, -1 on delete).
func AdjustCommentCounters(tx *gorm.DB, c *Comment, delta int) error {
	switch c.CommentType {
	case CommentOnUserFeed:
		return bump(tx, &UserFeed{}, *c.UserFeedID, "comments_count", delta)
	case CommentOnArtisanFeed:
		return bump(tx, &ArtisanFeed{}, *c.ArtisanFeedID, "comments_count", delta)
	}
	return nil
}

// AdjustReactionCounters moves the likes_count or dislikes_count on the
// reaction's target by delta.
func AdjustReactionCounters(tx *gorm.DB, r *Reaction, delta int) error {
	column := "likes_count"
	if r.ReactionType == ReactionDislike {
		column = "dislikes_count"
	}

	switch r.ContentType {
	case ReactOnUserFeed:
		return bump(tx, &UserFeed{}, *r.UserFeedID, column, delta)
	case ReactOnArtisanFeed:
		return bump(tx, &ArtisanFeed{}, *r.ArtisanFeedID, column, delta)
	case ReactOnComment:
		return bump(tx, &Comment{}, *r.CommentID, column, delta)
	}
	return nil
}

// AdjustReportCounters moves the reports_count on the report's target feed
// by delta. Reports on comments and users carry no counter.
func AdjustReportCounters(tx *gorm.DB, r *Report, delta int) error {
	switch r.ContentType {
	case ReportOnUserFeed:
		return bump(tx, &UserFeed{}, *r.UserFeedID, "reports_count", delta)
	case ReportOnArtisanFeed:
		return bump(tx, &ArtisanFeed{}, *r.ArtisanFeedID, "reports_count", delta)
	}
	return nil
}

// BumpViews atomically increments the views_count on a feed or work row.
func BumpViews(tx *gorm.DB, model interface{}, id string) error {
	return bump(tx, model, id, "views_count", 1)
}

// BumpShares atomically increments the shares_count on an artisan post.
func BumpShares(tx *gorm.DB, artisanFeedID string) error {
	return bump(tx, &ArtisanFeed{}, artisanFeedID, "shares_count", 1)
}

func bump(tx *gorm.DB, model interface{}, id, column string, delta int) error {
	return tx.Model(model).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}
