package http

import (
	"net/http"

	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/middleware"
	"umkm-reels/pkg/models"
	"umkm-reels/pkg/pagination"
	"umkm-reels/pkg/response"
	"umkm-reels/services/catalog/internal/entity"
	"umkm-reels/services/catalog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ReelHandler struct {
	reelUseCase usecase.ReelUseCase
	logger      *logger.Logger
}

func NewReelHandler(reelUseCase usecase.ReelUseCase, logger *logger.Logger) *ReelHandler {
	return &ReelHandler{
		reelUseCase: reelUseCase,
		logger:      logger,
	}
}

type CreateReelRequest struct {
	ProductName string `form:"product_name" binding:"required,max=255"`
	Caption     string `form:"caption" binding:"max=2000"`
	Price       int64  `form:"price" binding:"gte=0"`
	Category    string `form:"category" binding:"max=50"`
	MediaType   string `form:"media_type" binding:"omitempty,oneof=video image"`
	Status      string `form:"status" binding:"omitempty,oneof=draft review published"`
}

type UpdateReelRequest struct {
	ProductName *string `json:"product_name" binding:"omitempty,min=1,max=255"`
	Caption     *string `json:"caption" binding:"omitempty,max=2000"`
	Price       *int64  `json:"price" binding:"omitempty,gte=0"`
	Category    *string `json:"category" binding:"omitempty,max=50"`
	Status      *string `json:"status" binding:"omitempty,oneof=draft review published"`
}

// CreateReel godoc
// @Summary      Create a reel
// @Description  Upload a video reel (one video file) or an image reel (1-10 images).
// @Tags         reels
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        product_name  formData  string  true   "Product name"
// @Param        caption       formData  string  false  "Caption"
// @Param        price         formData  int     false  "Price in rupiah"
// @Param        category      formData  string  false  "Category (defaults to the profile's)"
// @Param        media_type    formData  string  false  "Media type"  Enums(video, image)
// @Param        status        formData  string  false  "Status"      Enums(draft, review, published)
// @Param        video         formData  file    false  "Video file (mp4/webm/mov)"
// @Param        images[]      formData  file    false  "Image files (jpg/png/gif/webp)"
// @Success      201  {object}  entity.Reel
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}
// @Router       /reels [post]
func (h *ReelHandler) CreateReel(c *gin.Context) {
	var req CreateReelRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindError(c, err)
		return
	}

	input := usecase.CreateReelInput{
		ProductName: req.ProductName,
		Caption:     req.Caption,
		Price:       req.Price,
		Category:    req.Category,
		MediaType:   models.MediaType(req.MediaType),
		Status:      models.ReelStatus(req.Status),
	}

	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["video"]; len(files) > 0 {
			input.Video = files[0]
		}
		input.Images = form.File["images[]"]
		if len(input.Images) == 0 {
			input.Images = form.File["images"]
		}
	}

	reel, err := h.reelUseCase.Create(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.MessageData(c, http.StatusCreated, "Reel created", reel)
}

// UpdateReel godoc
// @Summary      Update a reel
// @Description  Partial update of the caller's own reel. Status may only stay or move one step forward (draft, review, published).
// @Tags         reels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string             true  "Reel ID"
// @Param        request  body  UpdateReelRequest  true  "Fields to change"
// @Success      200  {object}  entity.Reel
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}
// @Router       /reels/{id} [put]
func (h *ReelHandler) UpdateReel(c *gin.Context) {
	var req UpdateReelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	input := usecase.UpdateReelInput{
		ProductName: req.ProductName,
		Caption:     req.Caption,
		Price:       req.Price,
		Category:    req.Category,
	}
	if req.Status != nil {
		status := models.ReelStatus(*req.Status)
		input.Status = &status
	}

	reel, err := h.reelUseCase.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.MessageData(c, http.StatusOK, "Reel updated", reel)
}

// DeleteReel godoc
// @Summary      Delete a reel
// @Tags         reels
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reel ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /reels/{id} [delete]
func (h *ReelHandler) DeleteReel(c *gin.Context) {
	if err := h.reelUseCase.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Message(c, http.StatusOK, "Reel deleted")
}

// ListSellerReels godoc
// @Summary      List own reels
// @Description  The caller's reels in every status, newest first
// @Tags         reels
// @Produce      json
// @Security     BearerAuth
// @Param        page      query  int  false  "Page"      default(1)
// @Param        per_page  query  int  false  "Per page"  default(15)
// @Success      200  {array}   entity.Reel
// @Failure      404  {object}  map[string]string
// @Router       /seller/reels [get]
func (h *ReelHandler) ListSellerReels(c *gin.Context) {
	page := pagination.Parse(c, pagination.DefaultOpts)

	reels, total, err := h.reelUseCase.ListMine(c.Request.Context(), middleware.UserID(c), page.PerPage, page.Offset())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Paginated(c, reels, pagination.NewMeta(page, total))
}

// ListReels godoc
// @Summary      Reel feed
// @Description  Published reels of unblocked sellers, newest first
// @Tags         reels
// @Produce      json
// @Param        category  query  string  false  "Category"
// @Param        page      query  int     false  "Page"      default(1)
// @Param        per_page  query  int     false  "Per page"  default(15)
// @Success      200  {array}  entity.Reel
// @Router       /reels [get]
func (h *ReelHandler) ListReels(c *gin.Context) {
	page := pagination.Parse(c, pagination.DefaultOpts)
	filter := entity.ReelFilter{Category: c.Query("category")}

	reels, total, err := h.reelUseCase.Feed(c.Request.Context(), filter, page.PerPage, page.Offset())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Paginated(c, reels, pagination.NewMeta(page, total))
}

// GetReel godoc
// @Summary      Get a published reel
// @Tags         reels
// @Produce      json
// @Param        id   path      string  true  "Reel ID"
// @Success      200  {object}  entity.Reel
// @Failure      404  {object}  map[string]string
// @Router       /reels/{id} [get]
func (h *ReelHandler) GetReel(c *gin.Context) {
	reel, err := h.reelUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Data(c, http.StatusOK, reel)
}
