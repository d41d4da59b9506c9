package controllers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/alex-pricope/contest-voting/api/models"
	"github.com/alex-pricope/contest-voting/api/transport"
	"github.com/alex-pricope/contest-voting/logging"
	"github.com/alex-pricope/contest-voting/storage"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type ParticipantMetaController struct {
	storage      storage.ParticipantStorage
	photoStorage storage.PhotoStorage
}

func NewParticipantMetaController(s storage.ParticipantStorage, photos storage.PhotoStorage) *ParticipantMetaController {
	return &ParticipantMetaController{storage: s, photoStorage: photos}
}

func (c *ParticipantMetaController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/participants")

	group.GET("", c.getAll)
	group.GET("/:id", transport.AdminAuthMiddleware(), c.get)
	group.POST("", transport.AdminAuthMiddleware(), c.create)
	group.PUT("/:id", transport.AdminAuthMiddleware(), c.update)
	group.DELETE("/:id", transport.AdminAuthMiddleware(), c.delete)
}

// @Summary Get all participants
// @Tags Participants
// @Produce json
// @Success 200 {array} models.ParticipantResponse
// @Failure 500 {object} map[string]string
// @Router /api/participants [get]
func (c *ParticipantMetaController) getAll(g *gin.Context) {
	participants, err := c.storage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("META: failed to get all participants: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sort.Slice(participants, func(i, j int) bool {
		return participants[i].Number < participants[j].Number
	})

	responses := make([]models.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		responses = append(responses, models.TransformParticipantFromStorage(p))
	}
	g.JSON(http.StatusOK, responses)
}

// @Security AdminToken
// @Summary Get a participant by ID
// @Tags Participants
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} models.ParticipantResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/participants/{id} [get]
func (c *ParticipantMetaController) get(g *gin.Context) {
	id := g.Param("id")
	if id == "" {
		g.JSON(http.StatusBadRequest, gin.H{"error": "missing participant id"})
		return
	}
	participant, err := c.storage.Get(g.Request.Context(), id)
	if err != nil {
		logging.Log.Errorf("META: failed to get participant: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if participant == nil {
		g.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
		return
	}
	g.JSON(http.StatusOK, models.TransformParticipantFromStorage(participant))
}

// @Security AdminToken
// @Summary Create a participant
// @Tags Participants
// @Accept json
// @Produce json
// @Param participant body models.ParticipantCreateRequest true "Participant object"
// @Success 200 {object} models.ParticipantResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/participants [post]
func (c *ParticipantMetaController) create(g *gin.Context) {
	var req models.ParticipantCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Errorf("META: invalid create participant request: %v", err)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.Name == "" {
		logging.Log.Errorf("META: invalid create participant request: %v", req)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request empty name"})
		return
	}

	participant := &storage.Participant{
		ID:          c.generateParticipantID(),
		Name:        req.Name,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		Number:      req.Number,
	}

	if err := c.storage.Create(g.Request.Context(), participant); err != nil {
		if errors.Is(err, storage.ErrItemWithIDAlreadyExists) {
			logging.Log.Warnf("META: participant with ID %s already exists", participant.ID)
			g.JSON(http.StatusConflict, gin.H{"error": "participant with ID already exists"})
			return
		}

		logging.Log.Errorf("META: failed to create participant: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	g.JSON(http.StatusOK, models.TransformParticipantFromStorage(participant))
}

// @Security AdminToken
// @Summary Update an existing participant
// @Tags Participants
// @Accept json
// @Produce json
// @Param id path string true "Participant ID"
// @Param participant body models.ParticipantUpdateRequest true "Participant update object"
// @Success 200 {object} models.ParticipantResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/participants/{id} [put]
func (c *ParticipantMetaController) update(g *gin.Context) {
	id := g.Param("id")
	if id == "" {
		g.JSON(http.StatusBadRequest, gin.H{"error": "missing participant id"})
		return
	}

	var req models.ParticipantUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Errorf("META: invalid update participant request: %v", err)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == "" {
		logging.Log.Errorf("META: invalid update participant request: %v", req)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request empty name"})
		return
	}

	participant := &storage.Participant{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		Number:      req.Number,
	}

	if err := c.storage.Update(g.Request.Context(), participant); err != nil {
		if errors.Is(err, storage.ErrParticipantNotFound) {
			g.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
			return
		}
		logging.Log.Errorf("META: failed to update participant: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	g.JSON(http.StatusOK, models.TransformParticipantFromStorage(participant))
}

// @Security AdminToken
// @Summary Delete a participant
// @Description Deletes the row and its photo. Historical ledger entries are kept, so the voters stay blocked.
// @Tags Participants
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} models.DeleteParticipantResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/participants/{id} [delete]
func (c *ParticipantMetaController) delete(g *gin.Context) {
	id := g.Param("id")
	if id == "" {
		g.JSON(http.StatusBadRequest, gin.H{"error": "missing participant id"})
		return
	}

	participant, err := c.storage.Get(g.Request.Context(), id)
	if err != nil {
		logging.Log.Errorf("META: failed to get participant for delete: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if participant == nil {
		g.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
		return
	}

	if err := c.storage.Delete(g.Request.Context(), id); err != nil {
		logging.Log.Errorf("META: failed to delete participant: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// The row is gone either way; a failed photo cleanup is reported to the
	// admin instead of being swallowed.
	response := models.DeleteParticipantResponse{Message: "participant deleted"}
	if participant.PhotoURL != "" {
		if err := c.photoStorage.Delete(g.Request.Context(), participant.PhotoURL); err != nil {
			logging.Log.Errorf("META: failed to delete photo for participant %s: %v", id, err)
			response.Warning = "participant photo could not be removed: " + err.Error()
		}
	}
	g.JSON(http.StatusOK, response)
}

func (c *ParticipantMetaController) generateParticipantID() string {
	id, err := gonanoid.Generate(models.Alphabet, 12)
	if err != nil {
		logging.Log.Errorf("META: failed to generate participant id: %v", err)
		return "ERROR"
	}
	return id
}
