package issues

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/civiclens/internal/middleware"
	"github.com/xyz-asif/civiclens/internal/pkg/cloudinary"
	"github.com/xyz-asif/civiclens/internal/pkg/response"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// PhotoStore is the photo storage surface Upload depends on.
// *cloudinary.Service satisfies it; a nil PhotoStore disables photo uploads.
type PhotoStore interface {
	UploadPhoto(ctx context.Context, file multipart.File, filename string) (*cloudinary.UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

type Handler struct {
	store  Store
	photos PhotoStore
}

func NewHandler(store Store, photos PhotoStore) *Handler {
	return &Handler{store: store, photos: photos}
}

// Create godoc
// @Summary Report a new issue
// @Description Create a civic issue from a JSON payload
// @Tags issues
// @Accept json
// @Produce json
// @Param x-api-key header string true "API key"
// @Param request body CreateIssueRequest true "Issue data"
// @Success 201 {object} Issue
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /issues [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if violations := ValidateCreateIssue(&req); len(violations) > 0 {
		response.ValidationFailed(c, violations)
		return
	}

	issue := &Issue{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Lat:         req.Lat,
		Lng:         req.Lng,
		PhotoURL:    req.PhotoURL,
		Ward:        req.Ward,
		ReporterID:  req.UserID,
	}

	if err := h.store.Create(c.Request.Context(), issue); err != nil {
		response.InternalServerError(c, "Failed to create issue")
		return
	}

	response.Created(c, issue)
}

// Upload godoc
// @Summary Report a new issue with a photo
// @Description Create a civic issue from a multipart form; the photo is stored and its URL recorded
// @Tags issues
// @Accept multipart/form-data
// @Produce json
// @Param x-api-key header string true "API key"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param category formData string true "Category"
// @Param lat formData string false "Latitude"
// @Param lng formData string false "Longitude"
// @Param photo formData file false "Issue photo"
// @Success 201 {object} Issue
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /issues/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	req := CreateIssueRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Ward:        c.PostForm("ward"),
	}

	if latStr := c.PostForm("lat"); latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			response.ValidationFailed(c, []response.FieldViolation{{Field: "lat", Message: "must be a number"}})
			return
		}
		req.Lat = &lat
	}
	if lngStr := c.PostForm("lng"); lngStr != "" {
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			response.ValidationFailed(c, []response.FieldViolation{{Field: "lng", Message: "must be a number"}})
			return
		}
		req.Lng = &lng
	}

	if violations := ValidateCreateIssue(&req); len(violations) > 0 {
		response.ValidationFailed(c, violations)
		return
	}

	photoURL := ""
	photoID := ""
	if file, header, err := c.Request.FormFile("photo"); err == nil {
		defer file.Close()

		if h.photos == nil {
			response.InternalServerError(c, "Photo storage not configured")
			return
		}
		if err := cloudinary.ValidatePhotoFile(header); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		result, err := h.photos.UploadPhoto(c.Request.Context(), file, header.Filename)
		if err != nil {
			response.InternalServerError(c, "Failed to store photo")
			return
		}
		photoURL = result.URL
		photoID = result.PublicID
	}

	issue := &Issue{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Lat:         req.Lat,
		Lng:         req.Lng,
		PhotoURL:    photoURL,
		Ward:        req.Ward,
	}

	if err := h.store.Create(c.Request.Context(), issue); err != nil {
		// The photo was stored before the record failed; remove it so
		// storage does not accumulate orphans.
		if photoID != "" {
			h.photos.Delete(c.Request.Context(), photoID)
		}
		response.InternalServerError(c, "Failed to create issue")
		return
	}

	response.Created(c, issue)
}

// Upvote godoc
// @Summary Upvote an issue
// @Description Increment an issue's upvote counter; at most once per verified user
// @Tags issues
// @Produce json
// @Security BearerAuth
// @Param id path string true "Issue ID"
// @Success 200 {object} UpvoteResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /issues/{id}/upvote [post]
func (h *Handler) Upvote(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	upvotes, err := h.store.Upvote(c.Request.Context(), c.Param("id"), identity.ID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Issue not found")
		case errors.Is(err, ErrInvalidID):
			response.BadRequest(c, "Invalid issue ID")
		default:
			response.InternalServerError(c, "Failed to upvote issue")
		}
		return
	}

	response.OK(c, UpvoteResponse{Upvotes: upvotes})
}

// Get godoc
// @Summary Fetch a single issue
// @Tags issues
// @Produce json
// @Param id path string true "Issue ID"
// @Success 200 {object} Issue
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /issues/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	issue, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Issue not found")
		case errors.Is(err, ErrInvalidID):
			response.BadRequest(c, "Invalid issue ID")
		default:
			response.InternalServerError(c, "Failed to retrieve issue")
		}
		return
	}

	response.OK(c, issue)
}

// List godoc
// @Summary List issues
// @Description Paginated issue listing, optionally scoped to a ward slug
// @Tags issues
// @Produce json
// @Param limit query int false "Page size (default 10, max 100)"
// @Param page query int false "Page number (default 1)"
// @Param sort query string false "newest|oldest"
// @Param ward query string false "Ward slug"
// @Param status query string false "Status filter"
// @Success 200 {object} response.ListResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /issues [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}

	status := c.Query("status")
	if status != "" && status != "all" && !ValidStatus(status) {
		response.BadRequest(c, "Invalid status filter")
		return
	}

	q := ListQuery{
		Ward:   c.Query("ward"),
		Status: status,
		Sort:   c.DefaultQuery("sort", "newest"),
		Page:   page,
		Limit:  limit,
	}

	items, err := h.store.List(c.Request.Context(), q)
	if err != nil {
		response.InternalServerError(c, "Failed to retrieve issues")
		return
	}

	response.List(c, items)
}

// Analytics godoc
// @Summary Issue totals
// @Description Aggregate counts of issues by lifecycle stage
// @Tags issues
// @Produce json
// @Success 200 {object} Analytics
// @Failure 500 {object} response.ErrorResponse
// @Router /issues/analytics [get]
func (h *Handler) Analytics(c *gin.Context) {
	analytics, err := h.store.Analytics(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to compute analytics")
		return
	}

	response.OK(c, analytics)
}
