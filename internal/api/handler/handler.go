package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/content-gallery/internal/service"
	"github.com/d60-Lab/content-gallery/internal/storage"
	"github.com/d60-Lab/content-gallery/pkg/response"
)

// Handler bundles the HTTP endpoints over the gallery services.
type Handler struct {
	authService    service.AuthService
	contentService service.ContentService
	objectStore    storage.ObjectStore
}

func New(auth service.AuthService, content service.ContentService, store storage.ObjectStore) *Handler {
	return &Handler{authService: auth, contentService: content, objectStore: store}
}

// writeServiceError maps the service error taxonomy onto HTTP. Internal
// causes never reach the body; services already logged them.
func writeServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		if len(verr.Fields) > 0 {
			response.MissingFields(c, verr.Fields)
		} else {
			response.BadRequest(c, verr.Message)
		}
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, service.ErrInvalidToken):
		response.Forbidden(c, "Forbidden - Invalid admin token")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "Forbidden")
	case errors.Is(err, service.ErrContentNotFound):
		response.NotFound(c, "Content not found")
	case errors.Is(err, service.ErrNotConfigured):
		response.InternalError(c, "Admin authentication not configured")
	default:
		response.InternalError(c, "Internal server error")
	}
}
