package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alex-pricope/contest-voting/api/models"
	"github.com/alex-pricope/contest-voting/api/transport"
	"github.com/alex-pricope/contest-voting/logging"
	"github.com/alex-pricope/contest-voting/storage"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	admissionStorage storage.VoteAdmissionStorage
	ledgerStorage    storage.VoteLedgerStorage
	photoStorage     storage.PhotoStorage
}

func NewAdminController(admissionStorage storage.VoteAdmissionStorage, ledgerStorage storage.VoteLedgerStorage, photoStorage storage.PhotoStorage) *AdminController {
	return &AdminController{
		admissionStorage: admissionStorage,
		ledgerStorage:    ledgerStorage,
		photoStorage:     photoStorage,
	}
}

func (c *AdminController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin", transport.AdminAuthMiddleware())

	group.GET("/votes", c.listVotes)
	group.POST("/votes/reset", c.resetVotes)
	group.POST("/uploads", c.createUploadURL)
}

// @Security AdminToken
// listVotes godoc
// @Summary List all vote ledger entries
// @Tags admin
// @Produce json
// @Success 200 {array} storage.VoteLedgerEntry
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/votes [get]
func (c *AdminController) listVotes(g *gin.Context) {
	entries, err := c.ledgerStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list ledger entries: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logging.Log.Infof("ADMIN: listed %d ledger entries", len(entries))
	g.JSON(http.StatusOK, entries)
}

// @Security AdminToken
// resetVotes godoc
// @Summary Reset all votes
// @Description Zeroes every participant tally and clears the vote ledger
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/votes/reset [post]
func (c *AdminController) resetVotes(g *gin.Context) {
	// Destructive and system-wide: verify the token here as well instead of
	// assuming the middleware was in front of us.
	if !transport.IsAdminRequest(g) {
		logging.Log.Warnf("ADMIN: unauthorized reset attempt")
		g.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := c.admissionStorage.ResetAll(g.Request.Context()); err != nil {
		logging.Log.Errorf("ADMIN: failed to reset votes: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logging.Log.Info("ADMIN: reset all votes")
	g.JSON(http.StatusOK, gin.H{"message": "All votes reset"})
}

// @Security AdminToken
// createUploadURL godoc
// @Summary Issue a presigned photo upload URL
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.UploadURLRequest true "Upload request"
// @Success 200 {object} models.UploadURLResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/uploads [post]
func (c *AdminController) createUploadURL(g *gin.Context) {
	var req models.UploadURLRequest
	if err := g.ShouldBindJSON(&req); err != nil || req.FileName == "" {
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request, missing file name"})
		return
	}
	if req.ContentType == "" {
		req.ContentType = "application/octet-stream"
	}

	key := fmt.Sprintf("public/%d-%s", time.Now().UTC().UnixMilli(), req.FileName)
	uploadURL, publicURL, err := c.photoStorage.PresignUpload(g.Request.Context(), key, req.ContentType)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to presign upload for %s: %v", key, err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": "could not create upload url"})
		return
	}

	logging.Log.Infof("ADMIN: issued upload url for %s", key)
	g.JSON(http.StatusOK, &models.UploadURLResponse{UploadURL: uploadURL, PublicURL: publicURL})
}
