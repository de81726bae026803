package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/craftconnect/artisan-market-api/config"
	"github.com/craftconnect/artisan-market-api/controllers"
	"github.com/craftconnect/artisan-market-api/models"
	"github.com/craftconnect/artisan-market-api/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ProposalIntegrationTestSuite defines the test suite for the proposal
// workflow: artisans quote against job requests and owners decide
type ProposalIntegrationTestSuite struct {
	suite.Suite
	db *gorm.DB
}

// SetupSuite runs once before all tests
func (suite *ProposalIntegrationTestSuite) SetupSuite() {
	testutil.MustSetTestEnvironment(suite.T())
	gin.SetMode(gin.TestMode)
}

// SetupTest runs before each test
func (suite *ProposalIntegrationTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.db = db

	err = db.AutoMigrate(models.AllModels()...)
	suite.NoError(err)

	config.SetDB(db)
}

// TearDownTest runs after each test
func (suite *ProposalIntegrationTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// routerFor builds the proposal routes authenticated as the given subject
func (suite *ProposalIntegrationTestSuite) routerFor(auth0ID string) *gin.Engine {
	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		v1.POST("/proposals", mockAuth(auth0ID), controllers.CreateProposal)
		v1.PATCH("/proposals/:id/status", mockAuth(auth0ID), controllers.UpdateProposalStatus)
		v1.GET("/user-feeds/:slug/proposals", mockAuth(auth0ID), controllers.ListFeedProposals)
		v1.GET("/artisans/me/proposals", mockAuth(auth0ID), controllers.ListMyProposals)
	}
	return router
}

func (suite *ProposalIntegrationTestSuite) createUser(handle string) models.User {
	user := models.User{
		Auth0ID:  "auth0|" + handle,
		Email:    handle + "@test.com",
		Username: handle,
		FullName: "Test " + handle,
	}
	suite.NoError(suite.db.Create(&user).Error)
	return user
}

func (suite *ProposalIntegrationTestSuite) createArtisan(handle string) (models.User, models.ArtisanProfile) {
	user := suite.createUser(handle)
	profile := models.ArtisanProfile{
		UserID:       user.ID,
		BusinessName: handle + " Workshop",
	}
	suite.NoError(suite.db.Omit("User").Create(&profile).Error)
	return user, profile
}

func (suite *ProposalIntegrationTestSuite) createJobRequest(owner models.User) models.UserFeed {
	feed := models.UserFeed{
		UserID:        owner.ID,
		Title:         "Rewire kitchen sockets",
		Description:   "Four double sockets quoted too high elsewhere",
		JobCategory:   "electrical",
		InvoiceImage:  "invoices/quote.png",
		InvoiceAmount: 850.00,
		Status:        models.FeedOpen,
	}
	suite.NoError(suite.db.Omit("User").Create(&feed).Error)
	return feed
}

func (suite *ProposalIntegrationTestSuite) submitProposal(router *gin.Engine, feedID string, price float64) *httptest.ResponseRecorder {
	body := map[string]interface{}{
		"user_feed_id":            feedID,
		"proposed_price":          price,
		"estimated_duration_days": 3,
		"message":                 "Can start this week",
	}
	bodyJSON, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/proposals", bytes.NewBuffer(bodyJSON))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

// TestProposalWorkflow_SubmitListAndAccept tests the full quote lifecycle
func (suite *ProposalIntegrationTestSuite) TestProposalWorkflow_SubmitListAndAccept() {
	owner := suite.createUser("homeowner")
	artisan1, profile1 := suite.createArtisan("sparky")
	artisan2, _ := suite.createArtisan("volt")

	feed := suite.createJobRequest(owner)

	// Step 1: both artisans submit quotes
	w := suite.submitProposal(suite.routerFor(artisan1.Auth0ID), feed.ID, 600)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var createResponse map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &createResponse))
	assert.True(suite.T(), createResponse["success"].(bool))

	proposalData := createResponse["data"].(map[string]interface{})
	proposal1ID := proposalData["id"].(string)
	assert.Equal(suite.T(), "PENDING", proposalData["status"])

	w = suite.submitProposal(suite.routerFor(artisan2.Auth0ID), feed.ID, 700)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	// Step 2: the owner lists the quotes against their request
	ownerRouter := suite.routerFor(owner.Auth0ID)
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/user-feeds/%s/proposals", feed.Slug), nil)
	ownerRouter.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var listResponse map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &listResponse))
	proposals := listResponse["data"].([]interface{})
	assert.Equal(suite.T(), 2, len(proposals))

	// Step 3: the owner accepts the first quote
	decisionBody, _ := json.Marshal(map[string]string{"status": "ACCEPTED"})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/proposals/"+proposal1ID+"/status", bytes.NewBuffer(decisionBody))
	req.Header.Set("Content-Type", "application/json")
	ownerRouter.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var acceptResponse map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &acceptResponse))
	acceptedData := acceptResponse["data"].(map[string]interface{})
	assert.Equal(suite.T(), "ACCEPTED", acceptedData["status"])
	assert.NotNil(suite.T(), acceptedData["accepted_at"])

	// The winning quote is stamped, the rival quote is rejected and the
	// request moves into negotiation
	var accepted models.ArtisanProposal
	suite.NoError(suite.db.First(&accepted, "id = ?", proposal1ID).Error)
	assert.Equal(suite.T(), models.ProposalAccepted, accepted.Status)
	assert.NotNil(suite.T(), accepted.AcceptedAt)
	assert.Equal(suite.T(), profile1.ID, accepted.ArtisanID)

	var rival models.ArtisanProposal
	suite.NoError(suite.db.Where("user_feed_id = ? AND id <> ?", feed.ID, proposal1ID).First(&rival).Error)
	assert.Equal(suite.T(), models.ProposalRejected, rival.Status)

	var updatedFeed models.UserFeed
	suite.NoError(suite.db.First(&updatedFeed, "id = ?", feed.ID).Error)
	assert.Equal(suite.T(), models.FeedNegotiating, updatedFeed.Status)
}

// TestCreateProposal_DuplicateRejected tests one quote per artisan per request
func (suite *ProposalIntegrationTestSuite) TestCreateProposal_DuplicateRejected() {
	owner := suite.createUser("homeowner")
	artisan, _ := suite.createArtisan("sparky")
	feed := suite.createJobRequest(owner)

	router := suite.routerFor(artisan.Auth0ID)
	w := suite.submitProposal(router, feed.ID, 600)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.submitProposal(router, feed.ID, 550)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(suite.T(), response["success"].(bool))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "DUPLICATE_PROPOSAL", errorData["code"])
}

// TestCreateProposal_ClosedFeedRejected tests that closed requests take no quotes
func (suite *ProposalIntegrationTestSuite) TestCreateProposal_ClosedFeedRejected() {
	owner := suite.createUser("homeowner")
	artisan, _ := suite.createArtisan("sparky")

	feed := suite.createJobRequest(owner)
	suite.NoError(suite.db.Model(&feed).Update("status", models.FeedClosed).Error)

	w := suite.submitProposal(suite.routerFor(artisan.Auth0ID), feed.ID, 600)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "FEED_NOT_OPEN", errorData["code"])
}

// TestCreateProposal_RequiresArtisanProfile tests that plain users cannot quote
func (suite *ProposalIntegrationTestSuite) TestCreateProposal_RequiresArtisanProfile() {
	owner := suite.createUser("homeowner")
	pretender := suite.createUser("pretender")
	feed := suite.createJobRequest(owner)

	w := suite.submitProposal(suite.routerFor(pretender.Auth0ID), feed.ID, 600)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "NOT_AN_ARTISAN", errorData["code"])
}

// TestListFeedProposals_OwnerOnly tests that quotes are hidden from non-owners
func (suite *ProposalIntegrationTestSuite) TestListFeedProposals_OwnerOnly() {
	owner := suite.createUser("homeowner")
	artisan, _ := suite.createArtisan("sparky")
	snoop := suite.createUser("snoop")

	feed := suite.createJobRequest(owner)
	w := suite.submitProposal(suite.routerFor(artisan.Auth0ID), feed.ID, 600)
	suite.Equal(http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/user-feeds/%s/proposals", feed.Slug), nil)
	suite.routerFor(snoop.Auth0ID).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "FORBIDDEN", errorData["code"])
}

// TestUpdateProposalStatus_ArtisanCannotAcceptOwnQuote tests decision authorization
func (suite *ProposalIntegrationTestSuite) TestUpdateProposalStatus_ArtisanCannotAcceptOwnQuote() {
	owner := suite.createUser("homeowner")
	artisan, _ := suite.createArtisan("sparky")
	feed := suite.createJobRequest(owner)

	artisanRouter := suite.routerFor(artisan.Auth0ID)
	w := suite.submitProposal(artisanRouter, feed.ID, 600)
	suite.Equal(http.StatusCreated, w.Code)

	var createResponse map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &createResponse))
	proposalID := createResponse["data"].(map[string]interface{})["id"].(string)

	decisionBody, _ := json.Marshal(map[string]string{"status": "ACCEPTED"})
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/proposals/"+proposalID+"/status", bytes.NewBuffer(decisionBody))
	req.Header.Set("Content-Type", "application/json")
	artisanRouter.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestUpdateProposalStatus_WithdrawByArtisan tests that only the proposing
// artisan can withdraw a pending quote
func (suite *ProposalIntegrationTestSuite) TestUpdateProposalStatus_WithdrawByArtisan() {
	owner := suite.createUser("homeowner")
	artisan, _ := suite.createArtisan("sparky")
	feed := suite.createJobRequest(owner)

	artisanRouter := suite.routerFor(artisan.Auth0ID)
	w := suite.submitProposal(artisanRouter, feed.ID, 600)
	suite.Equal(http.StatusCreated, w.Code)

	var createResponse map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &createResponse))
	proposalID := createResponse["data"].(map[string]interface{})["id"].(string)

	// The owner cannot withdraw on the artisan's behalf
	decisionBody, _ := json.Marshal(map[string]string{"status": "WITHDRAWN"})
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/proposals/"+proposalID+"/status", bytes.NewBuffer(decisionBody))
	req.Header.Set("Content-Type", "application/json")
	suite.routerFor(owner.Auth0ID).ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	// The artisan can
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/proposals/"+proposalID+"/status", bytes.NewBuffer(decisionBody))
	req.Header.Set("Content-Type", "application/json")
	artisanRouter.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var withdrawn models.ArtisanProposal
	suite.NoError(suite.db.First(&withdrawn, "id = ?", proposalID).Error)
	assert.Equal(suite.T(), models.ProposalWithdrawn, withdrawn.Status)
}

// TestUpdateProposalStatus_DecidedQuoteIsFinal tests that decided quotes
// cannot move again
func (suite *ProposalIntegrationTestSuite) TestUpdateProposalStatus_DecidedQuoteIsFinal() {
	owner := suite.createUser("homeowner")
	artisan, _ := suite.createArtisan("sparky")
	feed := suite.createJobRequest(owner)

	w := suite.submitProposal(suite.routerFor(artisan.Auth0ID), feed.ID, 600)
	suite.Equal(http.StatusCreated, w.Code)

	var createResponse map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &createResponse))
	proposalID := createResponse["data"].(map[string]interface{})["id"].(string)

	ownerRouter := suite.routerFor(owner.Auth0ID)
	acceptBody, _ := json.Marshal(map[string]string{"status": "ACCEPTED"})
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/proposals/"+proposalID+"/status", bytes.NewBuffer(acceptBody))
	req.Header.Set("Content-Type", "application/json")
	ownerRouter.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	rejectBody, _ := json.Marshal(map[string]string{"status": "REJECTED"})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/proposals/"+proposalID+"/status", bytes.NewBuffer(rejectBody))
	req.Header.Set("Content-Type", "application/json")
	ownerRouter.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "INVALID_TRANSITION", errorData["code"])
}

// TestListMyProposals_FiltersByStatus tests the artisan's own quote listing
func (suite *ProposalIntegrationTestSuite) TestListMyProposals_FiltersByStatus() {
	owner := suite.createUser("homeowner")
	other := suite.createUser("landlord")
	artisan, _ := suite.createArtisan("sparky")

	feed1 := suite.createJobRequest(owner)
	feed2 := suite.createJobRequest(other)

	artisanRouter := suite.routerFor(artisan.Auth0ID)
	w := suite.submitProposal(artisanRouter, feed1.ID, 600)
	suite.Equal(http.StatusCreated, w.Code)

	var createResponse map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &createResponse))
	proposalID := createResponse["data"].(map[string]interface{})["id"].(string)

	w = suite.submitProposal(artisanRouter, feed2.ID, 450)
	suite.Equal(http.StatusCreated, w.Code)

	// Withdraw the first quote, then filter on each status
	withdrawBody, _ := json.Marshal(map[string]string{"status": "WITHDRAWN"})
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/proposals/"+proposalID+"/status", bytes.NewBuffer(withdrawBody))
	req.Header.Set("Content-Type", "application/json")
	artisanRouter.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/artisans/me/proposals", nil)
	artisanRouter.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), 2, len(response["data"].([]interface{})))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/artisans/me/proposals?status=PENDING", nil)
	artisanRouter.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	pending := response["data"].([]interface{})
	assert.Equal(suite.T(), 1, len(pending))
	assert.Equal(suite.T(), feed2.ID, pending[0].(map[string]interface{})["user_feed_id"])
}

// TestCreateProposal_FeedNotFound tests quoting against a missing request
func (suite *ProposalIntegrationTestSuite) TestCreateProposal_FeedNotFound() {
	artisan, _ := suite.createArtisan("sparky")

	w := suite.submitProposal(suite.routerFor(artisan.Auth0ID), "no-such-feed", 600)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "FEED_NOT_FOUND", errorData["code"])
}

// TestProposalIntegrationSuite runs the test suite
func TestProposalIntegrationSuite(t *testing.T) {
	suite.Run(t, new(ProposalIntegrationTestSuite))
}
