package http

import (
	"net/http"

	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/middleware"
	"umkm-reels/pkg/models"
	"umkm-reels/pkg/pagination"
	"umkm-reels/pkg/response"
	"umkm-reels/services/admin/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	moderationUseCase usecase.ModerationUseCase
	statsUseCase      usecase.StatsUseCase
	logger            *logger.Logger
}

func NewAdminHandler(moderationUseCase usecase.ModerationUseCase, statsUseCase usecase.StatsUseCase, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		moderationUseCase: moderationUseCase,
		statsUseCase:      statsUseCase,
		logger:            logger,
	}
}

type BlockReelRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ordinary seller admin"`
}

// ListSellers godoc
// @Summary      List sellers
// @Description  Seller users, newest first, with their profile, reel count and engagement totals
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page      query  int  false  "Page"      default(1)
// @Param        per_page  query  int  false  "Per page"  default(20)
// @Success      200  {array}   entity.Seller
// @Failure      403  {object}  map[string]string
// @Router       /sellers [get]
func (h *AdminHandler) ListSellers(c *gin.Context) {
	page := pagination.Parse(c, pagination.AdminOpts)

	sellers, total, err := h.moderationUseCase.ListSellers(c.Request.Context(), middleware.UserID(c), page.PerPage, page.Offset())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Paginated(c, sellers, pagination.NewMeta(page, total))
}

// BlockSeller godoc
// @Summary      Block a seller
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Seller user ID"
// @Success      200  {object}  entity.SellerBlock
// @Failure      404  {object}  map[string]string
// @Router       /sellers/{id}/block [post]
func (h *AdminHandler) BlockSeller(c *gin.Context) {
	h.setSellerBlocked(c, true, "Seller blocked")
}

// UnblockSeller godoc
// @Summary      Unblock a seller
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Seller user ID"
// @Success      200  {object}  entity.SellerBlock
// @Failure      404  {object}  map[string]string
// @Router       /sellers/{id}/unblock [post]
func (h *AdminHandler) UnblockSeller(c *gin.Context) {
	h.setSellerBlocked(c, false, "Seller unblocked")
}

func (h *AdminHandler) setSellerBlocked(c *gin.Context, blocked bool, message string) {
	result, err := h.moderationUseCase.SetSellerBlocked(c.Request.Context(), middleware.UserID(c), c.Param("id"), blocked)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.MessageData(c, http.StatusOK, message, result)
}

// BlockReel godoc
// @Summary      Block a reel
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string            true   "Reel ID"
// @Param        request  body  BlockReelRequest  false  "Reason"
// @Success      200  {object}  entity.ReelModeration
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}
// @Router       /reels/{id}/block [post]
func (h *AdminHandler) BlockReel(c *gin.Context) {
	var req BlockReelRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindError(c, err)
			return
		}
	}

	reel, err := h.moderationUseCase.SetReelBlocked(c.Request.Context(), middleware.UserID(c), c.Param("id"), true, req.Reason)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.MessageData(c, http.StatusOK, "Reel blocked", reel)
}

// UnblockReel godoc
// @Summary      Unblock a reel
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reel ID"
// @Success      200  {object}  entity.ReelModeration
// @Failure      404  {object}  map[string]string
// @Router       /reels/{id}/unblock [post]
func (h *AdminHandler) UnblockReel(c *gin.Context) {
	reel, err := h.moderationUseCase.SetReelBlocked(c.Request.Context(), middleware.UserID(c), c.Param("id"), false, "")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.MessageData(c, http.StatusOK, "Reel unblocked", reel)
}

// ChangeRole godoc
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string             true  "User ID"
// @Param        request  body  ChangeRoleRequest  true  "Role"
// @Success      200  {object}  entity.User
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}
// @Router       /users/{id}/role [put]
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.moderationUseCase.ChangeRole(c.Request.Context(), middleware.UserID(c), c.Param("id"), models.UserRole(req.Role))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.MessageData(c, http.StatusOK, "Role updated", user)
}

// GetStats godoc
// @Summary      Platform statistics
// @Description  Totals over every user, seller, reel and engagement event
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.PlatformStats
// @Failure      403  {object}  map[string]string
// @Router       /stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.statsUseCase.Platform(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Data(c, http.StatusOK, stats)
}

// ResetEngagement godoc
// @Summary      Delete engagement events
// @Description  Deletes the events of one reel, or every event when reel_id is omitted
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        reel_id  query     string  false  "Reel ID"
// @Success      200      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]string
// @Router       /engagement-events [delete]
func (h *AdminHandler) ResetEngagement(c *gin.Context) {
	deleted, err := h.statsUseCase.ResetEngagement(c.Request.Context(), middleware.UserID(c), c.Query("reel_id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.MessageData(c, http.StatusOK, "Engagement events deleted", gin.H{"deleted": deleted})
}
