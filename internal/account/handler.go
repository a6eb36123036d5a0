package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumind-backend/internal/shared/server/middleware"
	"resumind-backend/internal/shared/server/respond"
)

// Handler exposes the account data endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.DELETE("/account/data", h.wipe)
}

func (h *Handler) wipe(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}

	result, err := h.svc.Wipe(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "wipe_failed", "could not delete account data", nil)
		return
	}
	respond.OK(c, result)
}
