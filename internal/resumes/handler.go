package resumes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumind-backend/internal/shared/server/middleware"
	"resumind-backend/internal/shared/server/respond"
	"resumind-backend/internal/shared/util"
)

// Handler exposes the resume analysis endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts routes on the authenticated API group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/resumes/analyze", h.analyze)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
}

// analyze accepts a multipart form with fields companyName, jobTitle,
// jobDescription and a PDF file part named resume, runs the pipeline
// and returns the completed record.
func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "resume file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "resume file exceeds 20MB", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read resume file", nil)
		return
	}
	defer file.Close()

	pdfData, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read resume file", nil)
		return
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid resume file name", nil)
		return
	}

	in := AnalyzeInput{
		UserID:         userID,
		CompanyName:    c.PostForm("companyName"),
		JobTitle:       c.PostForm("jobTitle"),
		JobDescription: c.PostForm("jobDescription"),
		FileName:       fileName,
		PDF:            pdfData,
	}

	rec, err := h.svc.Analyze(c.Request.Context(), in)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			respond.Error(c, http.StatusBadRequest, "invalid_request", vErr.Message, gin.H{"field": vErr.Field})
			return
		}
		var sErr *StageError
		if errors.As(err, &sErr) {
			respond.Error(c, stageHTTPStatus(sErr.Stage), "analysis_failed", sErr.Status, gin.H{"stage": sErr.Stage})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Something went wrong. Please try again.", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, rec)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}
	rec, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load resume", nil)
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}
	records, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not list resumes", nil)
		return
	}
	respond.OK(c, gin.H{"resumes": records})
}

// stageHTTPStatus maps a halted stage to a response status. Model
// failures are upstream errors; everything else is internal.
func stageHTTPStatus(stage string) int {
	switch stage {
	case StageAnalyze, StageExtract, StageParse, StageValidate:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
