package resumes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumind-backend/internal/ai"
	"resumind-backend/internal/convert"
	"resumind-backend/internal/feedback"
	"resumind-backend/internal/shared/storage/object"
	"resumind-backend/internal/shared/telemetry"
)

const (
	maxUploadBytes     = 20 << 20
	minDescriptionLen  = 50
	previewImageSuffix = ".png"
)

// AnalyzeInput is a validated analysis request.
type AnalyzeInput struct {
	UserID         string
	CompanyName    string
	JobTitle       string
	JobDescription string
	FileName       string
	PDF            []byte
}

// Service runs the analysis pipeline and serves stored records.
type Service struct {
	objects       object.ObjectStore
	repo          *Repo
	model         ai.Client
	converter     convert.Converter
	feedbackModel string
}

func NewService(objects object.ObjectStore, repo *Repo, model ai.Client, converter convert.Converter, feedbackModel string) *Service {
	return &Service{
		objects:       objects,
		repo:          repo,
		model:         model,
		converter:     converter,
		feedbackModel: feedbackModel,
	}
}

// ValidateInput rejects bad analysis requests before any stage runs.
func ValidateInput(in AnalyzeInput) error {
	if strings.TrimSpace(in.JobTitle) == "" {
		return &ValidationError{Field: "jobTitle", Message: "job title is required"}
	}
	if len(strings.TrimSpace(in.JobDescription)) < minDescriptionLen {
		return &ValidationError{Field: "jobDescription", Message: fmt.Sprintf("job description must be at least %d characters", minDescriptionLen)}
	}
	if len(in.PDF) == 0 {
		return &ValidationError{Field: "resume", Message: "resume file is empty"}
	}
	if len(in.PDF) > maxUploadBytes {
		return &ValidationError{Field: "resume", Message: "resume file exceeds 20MB"}
	}
	if strings.ToLower(filepath.Ext(in.FileName)) != ".pdf" {
		return &ValidationError{Field: "resume", Message: "only PDF files are supported"}
	}
	return nil
}

// Analyze runs the full pipeline for one resume. Stages run strictly
// in order; the first failure halts the pipeline and is reported as a
// StageError carrying a user-facing status. A record saved at the draft
// stage stays pending when a later stage fails.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (*Record, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logStage := func(stage string) {
		telemetry.Info("pipeline.stage", map[string]any{
			"stage":     stage,
			"resume_id": id,
			"user_id":   in.UserID,
		})
	}

	logStage(StageUpload)
	resumePath, _, _, err := s.objects.Save(ctx, in.UserID, in.FileName, bytes.NewReader(in.PDF))
	if err != nil {
		return nil, stageErr(StageUpload, "We could not upload your file. Please try again.", err)
	}

	logStage(StageConvert)
	preview, err := s.converter.FirstPagePNG(ctx, in.PDF)
	if err != nil {
		status := "We had trouble processing your resume. Please try again."
		if preview != nil && preview.Detail != "" {
			status = "We had trouble processing your resume: " + preview.Detail
		}
		return nil, stageErr(StageConvert, status, err)
	}

	logStage(StagePreview)
	previewName := strings.TrimSuffix(in.FileName, filepath.Ext(in.FileName)) + previewImageSuffix
	imagePath, _, _, err := s.objects.Save(ctx, in.UserID, previewName, bytes.NewReader(preview.PNG))
	if err != nil {
		return nil, stageErr(StagePreview, "Something went wrong. Please try uploading again.", err)
	}

	rec := Record{
		ID:             id,
		ResumePath:     resumePath,
		ImagePath:      imagePath,
		CompanyName:    in.CompanyName,
		JobTitle:       in.JobTitle,
		JobDescription: in.JobDescription,
		Feedback:       PendingFeedback,
		CreatedAt:      time.Now().UTC(),
	}

	logStage(StageSave)
	if err := s.repo.Save(ctx, in.UserID, rec); err != nil {
		return nil, stageErr(StageSave, "Failed to save resume data. Please try again.", err)
	}

	logStage(StageAnalyze)
	instructions := feedback.PrepareInstructions(in.JobTitle, in.JobDescription)
	resp, err := s.model.Feedback(ctx, resumePath, instructions, ai.ChatOptions{Model: s.feedbackModel})
	if err != nil {
		return nil, stageErr(StageAnalyze, "AI analysis failed. Please try again.", err)
	}
	if resp == nil {
		return nil, stageErr(StageAnalyze, "AI analysis failed. Please try again.", errors.New("model returned no response"))
	}

	logStage(StageExtract)
	feedbackText := ai.MessageText(resp.Message.Content)
	if feedbackText == "" {
		return nil, stageErr(StageExtract, "AI response was empty. Please try again.", errors.New("empty model reply"))
	}

	logStage(StageParse)
	var parsed any
	if err := json.Unmarshal([]byte(feedbackText), &parsed); err != nil {
		return nil, stageErr(StageParse, "Please try again later!", err)
	}

	logStage(StageValidate)
	if !feedback.Valid(parsed) {
		return nil, stageErr(StageValidate, "AI returned incomplete analysis. Please try again.", errors.New("feedback structure validation failed"))
	}

	rec.Feedback = json.RawMessage(feedbackText)

	logStage(StagePersist)
	if err := s.persistWithRetry(ctx, in.UserID, rec); err != nil {
		// The critique is valid but unstorable. Log it so it is not
		// lost with the orphaned pending record.
		telemetry.Error("pipeline.persist_failed", map[string]any{
			"resume_id": id,
			"user_id":   in.UserID,
			"feedback":  feedbackText,
			"error":     err.Error(),
		})
		return nil, stageErr(StagePersist, "Failed to save analysis. Please try again.", err)
	}

	telemetry.Info("pipeline.complete", map[string]any{
		"resume_id": id,
		"user_id":   in.UserID,
	})
	return &rec, nil
}

// persistWithRetry writes the final record, retrying once on failure.
func (s *Service) persistWithRetry(ctx context.Context, userID string, rec Record) error {
	err := s.repo.Save(ctx, userID, rec)
	if err == nil {
		return nil
	}
	telemetry.Warn("pipeline.persist_retry", map[string]any{
		"resume_id": rec.ID,
		"user_id":   userID,
		"error":     err.Error(),
	})
	return s.repo.Save(ctx, userID, rec)
}

// Get returns one of the account's records.
func (s *Service) Get(ctx context.Context, userID, id string) (*Record, error) {
	return s.repo.Get(ctx, userID, id)
}

// List returns all of the account's records.
func (s *Service) List(ctx context.Context, userID string) ([]Record, error) {
	return s.repo.List(ctx, userID)
}
