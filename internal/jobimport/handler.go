package jobimport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumind-backend/internal/shared/server/middleware"
	"resumind-backend/internal/shared/server/respond"
)

// Handler exposes the job posting import endpoint.
type Handler struct {
	importer *Importer
}

func NewHandler(importer *Importer) *Handler {
	return &Handler{importer: importer}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/import", h.importPosting)
}

type importRequest struct {
	URL string `json:"url" binding:"required"`
}

func (h *Handler) importPosting(c *gin.Context) {
	if middleware.UserIDFromContext(c) == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "url is required", nil)
		return
	}

	result, err := h.importer.Import(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, ErrInvalidURL) {
			respond.Error(c, http.StatusBadRequest, "invalid_url", "please enter a valid job posting url", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "import_failed", "could not import the job posting, copy the details manually", nil)
		return
	}
	respond.OK(c, result)
}
