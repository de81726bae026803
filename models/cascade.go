package models

import (
	"gorm.io/gorm"
)

// Ownership is strictly hierarchical, but rows are soft-deleted, so the
// storage engine's ON DELETE CASCADE never fires. The functions in this file
// reproduce the cascade semantics in application code. Each must run inside
// a transaction supplied by the caller; DeleteUserCascade opens its own.

// DeleteUserCascade removes a user and everything the user owns: roles,
// artisan profile (with portfolio, feed posts and proposals), job requests
// (with comments, reactions, reports and proposals on them), and the user's
// own comments, reactions and reports. Reports the user merely reviewed are
// kept with the reviewer link cleared.
func DeleteUserCascade(db *gorm.DB, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Reviewer link is nulled, not cascaded: the report record survives.
		// UpdateColumn keeps Report.BeforeSave out of the batch update.
		err := tx.Model(&Report{}).Where("reviewed_by_id = ?", userID).
			UpdateColumn("reviewed_by_id", nil).Error
		if err != nil {
			return err
		}

		// Job requests owned by the user, each with its dependents.
		var feedIDs []string
		if err := tx.Model(&UserFeed{}).Where("user_id = ?", userID).Pluck("id", &feedIDs).Error; err != nil {
			return err
		}
		for _, feedID := range feedIDs {
			if err := deleteUserFeedDependents(tx, feedID); err != nil {
				return err
			}
		}
		if len(feedIDs) > 0 {
			if err := tx.Where("id IN ?", feedIDs).Delete(&UserFeed{}).Error; err != nil {
				return err
			}
		}

		// Artisan profile, if the user has one.
		var profile ArtisanProfile
		switch err := tx.Where("user_id = ?", userID).First(&profile).Error; err {
		case nil:
			if err := deleteArtisanProfileDependents(tx, profile.ID); err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		case gorm.ErrRecordNotFound:
			// nothing to do
		default:
			return err
		}

		// The user's own engagement rows on other content. The rows deleted
		// here live on feeds that outlive the cascade (engagement on the
		// user's own feeds is already gone), so the target counters come
		// down with them.
		var comments []Comment
		if err := tx.Where("user_id = ?", userID).Find(&comments).Error; err != nil {
			return err
		}
		for i := range comments {
			// A reply may already be gone as part of an earlier thread.
			var present int64
			if err := tx.Model(&Comment{}).Where("id = ?", comments[i].ID).Count(&present).Error; err != nil {
				return err
			}
			if present == 0 {
				continue
			}
			removed, err := deleteCommentsAndDependents(tx, tx.Model(&Comment{}).Where("id = ?", comments[i].ID))
			if err != nil {
				return err
			}
			if err := AdjustCommentCounters(tx, &comments[i], -removed); err != nil {
				return err
			}
		}

		var reactions []Reaction
		if err := tx.Where("user_id = ?", userID).Find(&reactions).Error; err != nil {
			return err
		}
		for i := range reactions {
			if err := AdjustReactionCounters(tx, &reactions[i], -1); err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&Reaction{}).Error; err != nil {
			return err
		}

		var reports []Report
		if err := tx.Where("reporter_id = ?", userID).Find(&reports).Error; err != nil {
			return err
		}
		for i := range reports {
			if err := AdjustReportCounters(tx, &reports[i], -1); err != nil {
				return err
			}
		}
		if err := tx.Where("reporter_id = ?", userID).Delete(&Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reported_user_id = ?", userID).Delete(&Report{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&Role{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", userID).Delete(&User{}).Error
	})
}

// DeleteArtisanProfileCascade removes a profile with its portfolio works,
// feed posts and proposals.
func DeleteArtisanProfileCascade(db *gorm.DB, profileID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteArtisanProfileDependents(tx, profileID); err != nil {
			return err
		}
		return tx.Where("id = ?", profileID).Delete(&ArtisanProfile{}).Error
	})
}

// DeleteUserFeedCascade removes a job request with its comments, reactions,
// reports and proposals.
func DeleteUserFeedCascade(db *gorm.DB, feedID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteUserFeedDependents(tx, feedID); err != nil {
			return err
		}
		return tx.Where("id = ?", feedID).Delete(&UserFeed{}).Error
	})
}

// DeleteArtisanFeedCascade removes an artisan post with its comments,
// reactions and reports.
func DeleteArtisanFeedCascade(db *gorm.DB, feedID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteArtisanFeedDependents(tx, feedID); err != nil {
			return err
		}
		return tx.Where("id = ?", feedID).Delete(&ArtisanFeed{}).Error
	})
}

// DeleteCommentCascade removes a comment with its replies and the reactions
// and reports attached to any of them, then moves the target feed's
// comments_count down by the size of the removed thread.
func DeleteCommentCascade(db *gorm.DB, commentID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var comment Comment
		if err := tx.First(&comment, "id = ?", commentID).Error; err != nil {
			return err
		}
		removed, err := deleteCommentsAndDependents(tx, tx.Model(&Comment{}).Where("id = ?", commentID))
		if err != nil {
			return err
		}
		return AdjustCommentCounters(tx, &comment, -removed)
	})
}

func deleteArtisanProfileDependents(tx *gorm.DB, profileID string) error {
	// Portfolio works and their gallery images.
	var workIDs []string
	if err := tx.Model(&ArtisanWork{}).Where("artisan_id = ?", profileID).Pluck("id", &workIDs).Error; err != nil {
		return err
	}
	if len(workIDs) > 0 {
		if err := tx.Where("work_id IN ?", workIDs).Delete(&ArtisanWorkImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", workIDs).Delete(&ArtisanWork{}).Error; err != nil {
			return err
		}
	}

	// Feed posts, each with its engagement rows.
	var feedIDs []string
	if err := tx.Model(&ArtisanFeed{}).Where("artisan_id = ?", profileID).Pluck("id", &feedIDs).Error; err != nil {
		return err
	}
	for _, feedID := range feedIDs {
		if err := deleteArtisanFeedDependents(tx, feedID); err != nil {
			return err
		}
	}
	if len(feedIDs) > 0 {
		if err := tx.Where("id IN ?", feedIDs).Delete(&ArtisanFeed{}).Error; err != nil {
			return err
		}
	}

	return tx.Where("artisan_id = ?", profileID).Delete(&ArtisanProposal{}).Error
}

func deleteUserFeedDependents(tx *gorm.DB, feedID string) error {
	if _, err := deleteCommentsAndDependents(tx, tx.Model(&Comment{}).Where("user_feed_id = ?", feedID)); err != nil {
		return err
	}
	if err := tx.Where("user_feed_id = ?", feedID).Delete(&Reaction{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_feed_id = ?", feedID).Delete(&Report{}).Error; err != nil {
		return err
	}
	return tx.Where("user_feed_id = ?", feedID).Delete(&ArtisanProposal{}).Error
}

func deleteArtisanFeedDependents(tx *gorm.DB, feedID string) error {
	if _, err := deleteCommentsAndDependents(tx, tx.Model(&Comment{}).Where("artisan_feed_id = ?", feedID)); err != nil {
		return err
	}
	if err := tx.Where("artisan_feed_id = ?", feedID).Delete(&Reaction{}).Error; err != nil {
		return err
	}
	return tx.Where("artisan_feed_id = ?", feedID).Delete(&Report{}).Error
}

// deleteCommentsAndDependents soft-deletes the comments selected by query,
// walks reply threads to any depth, and removes reactions and reports that
// point at any of the deleted comments. Returns how many comments were
// removed.
func deleteCommentsAndDependents(tx *gorm.DB, query *gorm.DB) (int, error) {
	var ids []string
	if err := query.Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	// Collect reply threads breadth-first.
	all := append([]string{}, ids...)
	frontier := ids
	for len(frontier) > 0 {
		var next []string
		err := tx.Model(&Comment{}).Where("parent_comment_id IN ?", frontier).Pluck("id", &next).Error
		if err != nil {
			return 0, err
		}
		all = append(all, next...)
		frontier = next
	}

	if err := tx.Where("comment_id IN ?", all).Delete(&Reaction{}).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("comment_id IN ?", all).Delete(&Report{}).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("id IN ?", all).Delete(&Comment{}).Error; err != nil {
		return 0, err
	}
	return len(all), nil
}

// AllModels lists every model for AutoMigrate, leaf-first by dependency.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Role{},
		&ArtisanProfile{},
		&ArtisanWork{},
		&ArtisanWorkImage{},
		&UserFeed{},
		&ArtisanFeed{},
		&Comment{},
		&Reaction{},
		&Report{},
		&ArtisanProposal{},
	}
}
