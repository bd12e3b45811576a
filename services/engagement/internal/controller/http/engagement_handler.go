package http

import (
	"net/http"

	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/middleware"
	"umkm-reels/pkg/models"
	"umkm-reels/pkg/response"
	"umkm-reels/services/engagement/internal/usecase"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementUseCase usecase.EngagementUseCase
	logger            *logger.Logger
}

func NewEngagementHandler(engagementUseCase usecase.EngagementUseCase, logger *logger.Logger) *EngagementHandler {
	return &EngagementHandler{
		engagementUseCase: engagementUseCase,
		logger:            logger,
	}
}

type RecordEventRequest struct {
	ReelID    string `json:"reel_id" binding:"required"`
	EventType string `json:"event_type" binding:"required,oneof=view like share click_wa"`
}

// RecordEvent godoc
// @Summary      Record an engagement event
// @Description  Appends a view, like, share or click_wa event for a reel. Anonymous callers are identified by IP. Rate limited per caller.
// @Tags         engagement
// @Accept       json
// @Produce      json
// @Param        request  body  RecordEventRequest  true  "Event"
// @Success      201  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}
// @Failure      429  {object}  map[string]string
// @Router       /engagement-events [post]
func (h *EngagementHandler) RecordEvent(c *gin.Context) {
	var req RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	_, err := h.engagementUseCase.Record(c.Request.Context(), usecase.RecordInput{
		ReelID:    req.ReelID,
		EventType: models.EventType(req.EventType),
		UserID:    middleware.UserID(c),
		ClientIP:  c.ClientIP(),
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Message(c, http.StatusCreated, "Event recorded")
}

// GetReelStats godoc
// @Summary      Engagement totals of one reel
// @Description  Available to the reel's owner and to admins
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reel ID"
// @Success      200  {object}  entity.ReelStats
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /reels/{id}/stats [get]
func (h *EngagementHandler) GetReelStats(c *gin.Context) {
	stats, err := h.engagementUseCase.ReelStats(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Data(c, http.StatusOK, stats)
}

// GetSellerStats godoc
// @Summary      Engagement totals of the caller's profile
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.SellerStats
// @Failure      404  {object}  map[string]string
// @Router       /seller/stats [get]
func (h *EngagementHandler) GetSellerStats(c *gin.Context) {
	stats, err := h.engagementUseCase.SellerStats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Data(c, http.StatusOK, stats)
}
