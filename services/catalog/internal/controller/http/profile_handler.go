package http

import (
	"net/http"

	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/middleware"
	"umkm-reels/pkg/pagination"
	"umkm-reels/pkg/response"
	"umkm-reels/services/catalog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase usecase.ProfileUseCase
	logger         *logger.Logger
}

func NewProfileHandler(profileUseCase usecase.ProfileUseCase, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

type CreateProfileRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Phone       string   `json:"phone" binding:"omitempty,idphone"`
	Address     string   `json:"address" binding:"max=500"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Category    string   `json:"category" binding:"required,max=50"`
	Description string   `json:"description" binding:"max=2000"`
	Avatar      string   `json:"avatar"`
	IsOpen      *bool    `json:"is_open"`
	Hours       string   `json:"hours" binding:"max=255"`
}

type UpdateProfileRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Phone       *string  `json:"phone" binding:"omitempty,idphone"`
	Address     *string  `json:"address" binding:"omitempty,max=500"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Category    *string  `json:"category" binding:"omitempty,min=1,max=50"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Avatar      *string  `json:"avatar"`
	IsOpen      *bool    `json:"is_open"`
	Hours       *string  `json:"hours" binding:"omitempty,max=255"`
}

type NearbyRequest struct {
	Latitude  *float64 `form:"lat" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `form:"lng" binding:"required,gte=-180,lte=180"`
	RadiusKM  float64  `form:"radius_km" binding:"omitempty,gt=0,lte=50"`
}

// CreateProfile godoc
// @Summary      Create business profile
// @Description  Onboards the calling seller. The avatar may be sent inline as data:image/<ext>;base64,<payload>.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateProfileRequest true "Profile"
// @Success      201  {object}  entity.Profile
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}
// @Router       /umkm-profile [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	profile, err := h.profileUseCase.Create(c.Request.Context(), middleware.UserID(c), usecase.CreateProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Category:    req.Category,
		Description: req.Description,
		Avatar:      req.Avatar,
		IsOpen:      req.IsOpen,
		Hours:       req.Hours,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.MessageData(c, http.StatusCreated, "Profile created", profile)
}

// UpdateProfile godoc
// @Summary      Update business profile
// @Description  Partial update; only the fields sent are changed. Sending an empty avatar removes it.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "Fields to change"
// @Success      200  {object}  entity.Profile
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}
// @Router       /umkm-profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	profile, err := h.profileUseCase.Update(c.Request.Context(), middleware.UserID(c), usecase.UpdateProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Category:    req.Category,
		Description: req.Description,
		Avatar:      req.Avatar,
		IsOpen:      req.IsOpen,
		Hours:       req.Hours,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.MessageData(c, http.StatusOK, "Profile updated", profile)
}

// GetOwnProfile godoc
// @Summary      Get own business profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Profile
// @Failure      404  {object}  map[string]string
// @Router       /umkm-profile [get]
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	profile, err := h.profileUseCase.GetOwn(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Data(c, http.StatusOK, profile)
}

// GetPublicProfile godoc
// @Summary      Get a business profile
// @Description  Public projection; blocked profiles are reported as not found
// @Tags         profiles
// @Produce      json
// @Param        id   path      string  true  "Profile ID"
// @Success      200  {object}  entity.PublicProfile
// @Failure      404  {object}  map[string]string
// @Router       /umkm/{id} [get]
func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	profile, err := h.profileUseCase.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Data(c, http.StatusOK, profile)
}

// ListProfileReels godoc
// @Summary      List a profile's published reels
// @Tags         profiles
// @Produce      json
// @Param        id        path   string  true   "Profile ID"
// @Param        page      query  int     false  "Page"      default(1)
// @Param        per_page  query  int     false  "Per page"  default(15)
// @Success      200  {array}   entity.Reel
// @Failure      404  {object}  map[string]string
// @Router       /umkm/{id}/reels [get]
func (h *ProfileHandler) ListProfileReels(c *gin.Context) {
	page := pagination.Parse(c, pagination.DefaultOpts)

	reels, total, err := h.profileUseCase.ListPublicReels(c.Request.Context(), c.Param("id"), page.PerPage, page.Offset())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Paginated(c, reels, pagination.NewMeta(page, total))
}

// Nearby godoc
// @Summary      Find businesses nearby
// @Description  Unblocked profiles within radius_km of the point, closest first
// @Tags         profiles
// @Produce      json
// @Param        lat        query  number  true   "Latitude"
// @Param        lng        query  number  true   "Longitude"
// @Param        radius_km  query  number  false  "Radius in km (max 50)"  default(5)
// @Success      200  {array}   entity.NearbyProfile
// @Failure      422  {object}  map[string]interface{}
// @Router       /umkm/nearby [get]
func (h *ProfileHandler) Nearby(c *gin.Context) {
	var req NearbyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	profiles, err := h.profileUseCase.Nearby(c.Request.Context(), usecase.NearbyQuery{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		RadiusKM:  req.RadiusKM,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Data(c, http.StatusOK, profiles)
}

// QRCode godoc
// @Summary      Profile QR code
// @Description  PNG QR code linking to the public profile page
// @Tags         profiles
// @Produce      png
// @Param        id   path  string  true  "Profile ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  map[string]string
// @Router       /umkm/{id}/qrcode [get]
func (h *ProfileHandler) QRCode(c *gin.Context) {
	png, err := h.profileUseCase.QRCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}
