package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStatusTransitions(t *testing.T) {
	assert.True(t, ReportPending.CanTransitionTo(ReportUnderReview))
	assert.False(t, ReportPending.CanTransitionTo(ReportResolved))
	assert.True(t, ReportUnderReview.CanTransitionTo(ReportResolved))
	assert.True(t, ReportUnderReview.CanTransitionTo(ReportDismissed))
	assert.False(t, ReportResolved.CanTransitionTo(ReportDismissed))
	assert.False(t, ReportDismissed.CanTransitionTo(ReportPending))
}

func TestReportReasonIsValid(t *testing.T) {
	assert.True(t, ReasonSpam.IsValid())
	assert.True(t, ReasonOther.IsValid())
	assert.False(t, ReportReason("ANNOYING").IsValid())
}

func TestReportRequiresExactlyOneTarget(t *testing.T) {
	db := openTestDB(t)
	reporter := createTestUser(t, db)
	reported := createTestUser(t, db)
	feed := createTestUserFeed(t, db, reporter)

	// No target
	report := Report{ReporterID: reporter.ID, ContentType: ReportOnUser, Reason: ReasonSpam, Description: "spam"}
	err := db.Create(&report).Error
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "INVALID_TARGET", verr.Code)

	// Two targets
	report = Report{
		ReporterID: reporter.ID, ContentType: ReportOnUser, Reason: ReasonSpam, Description: "spam",
		ReportedUserID: &reported.ID, UserFeedID: &feed.ID,
	}
	err = db.Create(&report).Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "INVALID_TARGET", verr.Code)

	// Target that does not match the discriminator
	report = Report{
		ReporterID: reporter.ID, ContentType: ReportOnComment, Reason: ReasonSpam, Description: "spam",
		ReportedUserID: &reported.ID,
	}
	err = db.Create(&report).Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "INVALID_TARGET", verr.Code)

	// Valid
	report = Report{
		ReporterID: reporter.ID, ContentType: ReportOnUser, Reason: ReasonSpam, Description: "spam",
		ReportedUserID: &reported.ID,
	}
	assert.NoError(t, db.Create(&report).Error)
}

func TestReportSurvivesReviewerDeletion(t *testing.T) {
	db := openTestDB(t)
	reporter := createTestUser(t, db)
	reported := createTestUser(t, db)
	moderator := createTestUser(t, db)

	now := time.Now()
	report := Report{
		ReporterID: reporter.ID, ContentType: ReportOnUser, Reason: ReasonHarassment,
		Description: "abusive messages", ReportedUserID: &reported.ID,
		Status: ReportUnderReview, ReviewedByID: &moderator.ID, ReviewedAt: &now,
	}
	require.NoError(t, db.Create(&report).Error)

	require.NoError(t, DeleteUserCascade(db, moderator.ID))

	var reloaded Report
	require.NoError(t, db.First(&reloaded, "id = ?", report.ID).Error)
	assert.Nil(t, reloaded.ReviewedByID, "Reviewer link should be cleared, not cascaded")
	assert.Equal(t, ReportUnderReview, reloaded.Status, "Moderation state should survive")
}
