package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/content-gallery/internal/model"
	"github.com/d60-Lab/content-gallery/internal/service"
	"github.com/d60-Lab/content-gallery/pkg/response"
)

type submitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
}

type decideRequest struct {
	ID         string `json:"id"`
	Action     string `json:"action"`
	AdminNotes string `json:"adminNotes"`
}

// Submit accepts a new community submission in pending state.
// @Summary Submit content
// @Tags content
// @Accept json
// @Produce json
// @Param request body submitRequest true "submission"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/content/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	content, err := h.contentService.Submit(c.Request.Context(), service.SubmitInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, gin.H{
		"message": "Content submitted successfully",
		"content": content,
	})
}

// Approved lists approved content for the public gallery.
// @Summary List approved content
// @Tags content
// @Produce json
// @Param category query string false "category filter"
// @Param limit query int false "page size" default(50)
// @Param offset query int false "window start" default(0)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/content/approved [get]
func (h *Handler) Approved(c *gin.Context) {
	h.listByStatus(c, model.StatusApproved, c.Query("category"))
}

// Pending lists submissions awaiting moderation. Admin only.
// @Summary List pending content
// @Tags content
// @Produce json
// @Param limit query int false "page size" default(50)
// @Param offset query int false "window start" default(0)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/content/pending [get]
func (h *Handler) Pending(c *gin.Context) {
	h.listByStatus(c, model.StatusPending, "")
}

// Rejected lists rejected submissions. Admin only.
// @Summary List rejected content
// @Tags content
// @Produce json
// @Param limit query int false "page size" default(50)
// @Param offset query int false "window start" default(0)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/content/rejected [get]
func (h *Handler) Rejected(c *gin.Context) {
	h.listByStatus(c, model.StatusRejected, "")
}

func (h *Handler) listByStatus(c *gin.Context, status, category string) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	res, err := h.contentService.List(c.Request.Context(), status, category, limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"content": res.Items,
		"count":   res.Total,
		"pagination": gin.H{
			"limit":   res.Limit,
			"offset":  res.Offset,
			"hasMore": res.HasMore,
		},
	})
}

// Decide applies an approve/reject decision to a submission. Admin only.
// @Summary Moderate content
// @Tags content
// @Accept json
// @Produce json
// @Param request body decideRequest true "decision"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/content/approve [put]
func (h *Handler) Decide(c *gin.Context) {
	var req decideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	var missing []string
	if req.ID == "" {
		missing = append(missing, "id")
	}
	if req.Action == "" {
		missing = append(missing, "action")
	}
	if len(missing) > 0 {
		response.MissingFields(c, missing)
		return
	}

	content, err := h.contentService.Decide(c.Request.Context(), req.ID, req.Action, req.AdminNotes)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"message": "Content " + content.Status + " successfully",
		"content": content,
	})
}

// Delete removes a submission outright. Admin only; independent of the
// moderation lifecycle.
// @Summary Delete content
// @Tags content
// @Produce json
// @Param id path string true "content id"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/content/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.contentService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

// Stats reports moderation counters. The counters are maintained
// asynchronously after each decision, so they may trail the store
// briefly. Admin only.
// @Summary Moderation stats
// @Tags content
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/content/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.contentService.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"stats": stats})
}
