package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/alex-pricope/contest-voting/api/models"
	"github.com/alex-pricope/contest-voting/logging"
	"github.com/alex-pricope/contest-voting/storage"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type VotingController struct {
	participantsStorage storage.ParticipantStorage
	ledgerStorage       storage.VoteLedgerStorage
	admissionStorage    storage.VoteAdmissionStorage
}

func NewVotingController(participantStorage storage.ParticipantStorage, ledgerStorage storage.VoteLedgerStorage, admissionStorage storage.VoteAdmissionStorage) *VotingController {
	return &VotingController{
		participantsStorage: participantStorage,
		ledgerStorage:       ledgerStorage,
		admissionStorage:    admissionStorage,
	}
}

func (c *VotingController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api")

	group.POST("/vote", c.registerVote)
	group.GET("/verify/:visitorId", c.visitorStatus)
	group.GET("/results", c.voteResults)
}

// registerVote godoc
// @Summary Register a vote
// @Description Admits one vote per visitor fingerprint and increments the participant tally atomically
// @Tags voting
// @Accept json
// @Produce json
// @Param vote body models.RegisterVoteRequest true "Vote submission"
// @Success 200 {object} models.RegisterVoteResponse
// @Failure 400 {object} models.ErrorResponse "Missing participant or visitor id"
// @Failure 404 {object} models.ErrorResponse "Participant does not exist"
// @Failure 409 {object} models.ErrorResponse "Visitor has already voted"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /api/vote [post]
func (c *VotingController) registerVote(g *gin.Context) {
	var req models.RegisterVoteRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	// A blank fingerprint must never reach the ledger: it would collapse
	// every broken client onto one identity.
	req.ParticipantID = strings.TrimSpace(req.ParticipantID)
	req.VisitorID = strings.TrimSpace(req.VisitorID)
	if req.ParticipantID == "" || req.VisitorID == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "participant and visitor id required"})
		return
	}

	// Friendly pre-check for stale clients. Not a correctness gate: the
	// admission transaction re-checks existence under its own conditions.
	participant, err := c.participantsStorage.Get(g.Request.Context(), req.ParticipantID)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to look up participant %s: %v", req.ParticipantID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not verify participant"})
		return
	}
	if participant == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "participant not found"})
		return
	}

	entry := &storage.VoteLedgerEntry{
		VisitorID:     req.VisitorID,
		EntryID:       c.generateEntryID(),
		ParticipantID: req.ParticipantID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := c.admissionStorage.Admit(g.Request.Context(), entry); err != nil {
		switch {
		case errors.Is(err, storage.ErrVisitorAlreadyVoted):
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "you have already voted"})
		case errors.Is(err, storage.ErrParticipantNotFound):
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "participant not found"})
		default:
			logging.Log.Errorf("VOTE: failed to admit vote: %v", err)
			g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not register vote"})
		}
		return
	}

	logging.Log.Infof("VOTE: admitted vote for participant %s", req.ParticipantID)
	g.JSON(http.StatusOK, &models.RegisterVoteResponse{Message: "vote registered"})
}

// visitorStatus godoc
// @Summary Check whether a visitor has voted
// @Description Returns the ledger state for a visitor fingerprint so clients can lock their voting UI
// @Tags voting
// @Produce json
// @Param visitorId path string true "Visitor fingerprint"
// @Success 200 {object} models.VisitorStatusResponse
// @Failure 400 {object} models.ErrorResponse "Missing visitor id"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /api/verify/{visitorId} [get]
func (c *VotingController) visitorStatus(g *gin.Context) {
	visitorID := strings.TrimSpace(g.Param("visitorId"))
	if visitorID == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "visitor id is required"})
		return
	}

	entry, err := c.ledgerStorage.Get(g.Request.Context(), visitorID)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to check visitor %s: %v", visitorID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not check visitor status"})
		return
	}
	if entry == nil {
		g.JSON(http.StatusOK, &models.VisitorStatusResponse{Voted: false})
		return
	}

	g.JSON(http.StatusOK, &models.VisitorStatusResponse{
		Voted:         true,
		ParticipantID: entry.ParticipantID,
		VotedAt:       entry.CreatedAt,
	})
}

// voteResults godoc
// @Summary Get the current standings
// @Description Participants ordered by vote count, highest first
// @Tags voting
// @Produce json
// @Success 200 {object} models.VoteResultsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/results [get]
func (c *VotingController) voteResults(g *gin.Context) {
	participants, err := c.participantsStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("VOTE: failed to load participants for results: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load results"})
		return
	}

	sort.Slice(participants, func(i, j int) bool {
		if participants[i].VoteCount != participants[j].VoteCount {
			return participants[i].VoteCount > participants[j].VoteCount
		}
		return participants[i].Number < participants[j].Number
	})

	response := models.VoteResultsResponse{
		Results: make([]models.ParticipantResponse, 0, len(participants)),
	}
	for _, p := range participants {
		response.TotalVotes += p.VoteCount
		response.Results = append(response.Results, models.TransformParticipantFromStorage(p))
	}

	g.JSON(http.StatusOK, response)
}

func (c *VotingController) generateEntryID() string {
	id, err := gonanoid.Generate(models.Alphabet, 12)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to generate entry id: %v", err)
		return "ERROR"
	}
	return id
}
