package http

import (
	"net/http"

	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/middleware"
	"umkm-reels/pkg/response"
	"umkm-reels/services/catalog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// GetMe godoc
// @Summary      Get current user
// @Description  Identity projection of the authenticated caller
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userUseCase.GetMe(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Data(c, http.StatusOK, user)
}
