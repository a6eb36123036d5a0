// Package convert renders the first page of a resume PDF to a PNG
// preview image by shelling out to pdftoppm (poppler-utils).
package convert

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Result is a rendered preview. Detail carries tool output useful for
// diagnostics when rendering fails.
type Result struct {
	PNG    []byte
	Detail string
}

// Converter renders the first page of a PDF to a PNG image.
type Converter interface {
	FirstPagePNG(ctx context.Context, pdfData []byte) (*Result, error)
}

// Pdftoppm is a Converter backed by the pdftoppm binary.
type Pdftoppm struct {
	binPath string
	timeout time.Duration
}

// NewPdftoppm locates pdftoppm on PATH. Returns an error when the
// binary is not installed.
func NewPdftoppm() (*Pdftoppm, error) {
	path, err := exec.LookPath("pdftoppm")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm not found on PATH: %w", err)
	}
	return &Pdftoppm{binPath: path, timeout: 30 * time.Second}, nil
}

// FirstPagePNG writes the PDF to a temp dir, renders page 1 at 150 DPI
// and returns the PNG bytes.
func (p *Pdftoppm) FirstPagePNG(ctx context.Context, pdfData []byte) (*Result, error) {
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("empty pdf data")
	}

	workDir, err := os.MkdirTemp("", "resume-convert-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	inputPath := filepath.Join(workDir, "input.pdf")
	if err := os.WriteFile(inputPath, pdfData, 0o600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	outputBase := filepath.Join(workDir, "page")
	cmd := exec.CommandContext(runCtx, p.binPath,
		"-png", "-singlefile", "-f", "1", "-l", "1", "-r", "150",
		inputPath, outputBase)
	output, err := cmd.CombinedOutput()
	detail := strings.TrimSpace(string(output))
	if err != nil {
		return &Result{Detail: detail}, fmt.Errorf("pdftoppm: %w", err)
	}

	png, err := os.ReadFile(outputBase + ".png")
	if err != nil {
		return &Result{Detail: detail}, fmt.Errorf("read rendered png: %w", err)
	}
	if len(png) == 0 {
		return &Result{Detail: detail}, fmt.Errorf("rendered png is empty")
	}
	return &Result{PNG: png, Detail: detail}, nil
}

var _ Converter = (*Pdftoppm)(nil)
