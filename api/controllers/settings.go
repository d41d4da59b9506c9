package controllers

import (
	"errors"
	"net/http"

	"github.com/alex-pricope/contest-voting/api/models"
	"github.com/alex-pricope/contest-voting/api/transport"
	"github.com/alex-pricope/contest-voting/logging"
	"github.com/alex-pricope/contest-voting/storage"
	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	storage storage.SettingStorage
}

func NewSettingsController(s storage.SettingStorage) *SettingsController {
	return &SettingsController{storage: s}
}

func (c *SettingsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/settings")

	group.GET("", c.get)
	group.PUT("", transport.AdminAuthMiddleware(), c.update)
}

// @Summary Get event settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.SettingsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/settings [get]
func (c *SettingsController) get(g *gin.Context) {
	settings, err := c.storage.GetAll(g.Request.Context())
	if err != nil && !errors.Is(err, storage.ErrSettingNotFound) {
		logging.Log.Errorf("SETTINGS: failed to load settings: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load settings"})
		return
	}

	response := models.SettingsResponse{EventName: models.DefaultEventName}
	for _, s := range settings {
		switch s.Key {
		case models.SettingEventName:
			response.EventName = s.Value
		case models.SettingLogoURL:
			response.LogoURL = s.Value
		}
	}
	g.JSON(http.StatusOK, response)
}

// @Security AdminToken
// @Summary Update event settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body models.UpdateSettingsRequest true "Settings"
// @Success 200 {object} models.SettingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/settings [put]
func (c *SettingsController) update(g *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	if req.EventName == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "event name is required"})
		return
	}

	if err := c.storage.Put(g.Request.Context(), &storage.Setting{Key: models.SettingEventName, Value: req.EventName}); err != nil {
		logging.Log.Errorf("SETTINGS: failed to store event name: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not store settings"})
		return
	}

	if req.LogoURL != "" {
		if err := c.storage.Put(g.Request.Context(), &storage.Setting{Key: models.SettingLogoURL, Value: req.LogoURL}); err != nil {
			logging.Log.Errorf("SETTINGS: failed to store logo url: %v", err)
			g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not store settings"})
			return
		}
	}

	logging.Log.Infof("SETTINGS: updated event settings")
	c.get(g)
}
