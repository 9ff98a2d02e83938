// Package pdf extracts text from PDF uploads by shelling out to the
// poppler pdftotext tool. The tool must be installed separately; use
// CheckAvailable at startup and surface InstallInstructions when it is
// missing.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// pdfHeader is the magic prefix every well-formed PDF starts with.
var pdfHeader = []byte("%PDF-")

// CommandRunner executes external commands. Extracted as an interface
// so tests can run without poppler installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor handles PDF documents via pdftotext.
type Extractor struct {
	runner CommandRunner
}

// New creates a new PDF extractor using the system pdftotext.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates a PDF extractor with a custom command runner.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Format returns the upload format this extractor handles.
func (e *Extractor) Format() string {
	return "pdf"
}

// CheckAvailable returns an error if pdftotext is not installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns guidance for installing pdftotext.
func InstallInstructions() string {
	return strings.Join([]string{
		"PDF extraction requires the pdftotext tool from poppler:",
		"  macOS:         brew install poppler",
		"  Debian/Ubuntu: apt install poppler-utils",
		"  Fedora:        dnf install poppler-utils",
	}, "\n")
}

// Extract converts PDF bytes into plain text with page offsets.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawUpload) (*domain.Extraction, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !bytes.HasPrefix(raw.Content, pdfHeader) {
		return nil, fmt.Errorf("missing PDF header: %w", domain.ErrCorruptDocument)
	}

	// pdftotext reads from a file, so stage the bytes in a temp file.
	tmp, err := os.CreateTemp("", "clauseline-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("staging upload: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw.Content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("staging upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("staging upload: %w", err)
	}

	output, err := e.runner.Run(ctx, "pdftotext", "-layout", "-enc", "UTF-8", tmp.Name(), "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", domain.ErrCorruptDocument)
	}

	text, offsets := splitPages(string(output))
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrNoExtractableContent
	}

	return &domain.Extraction{
		Text:        text,
		PageOffsets: offsets,
		Title:       extractTitle(text, raw.Filename),
	}, nil
}

// splitPages converts pdftotext's form-feed page markers into byte
// offsets, returning the text without the markers.
func splitPages(raw string) (string, []int) {
	pages := strings.Split(raw, "\f")

	// pdftotext emits a trailing form feed after the final page.
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}

	var sb strings.Builder
	offsets := make([]int, 0, len(pages))
	for i, page := range pages {
		if i > 0 {
			sb.WriteString("\n")
		}
		offsets = append(offsets, sb.Len())
		sb.WriteString(page)
	}
	return sb.String(), offsets
}

// extractTitle takes the first short non-empty line, falling back to
// the filename.
func extractTitle(content, filename string) string {
	for _, line := range strings.SplitN(content, "\n", 10) {
		line = strings.TrimSpace(line)
		if line != "" && len(line) <= 200 {
			return line
		}
	}

	base := filepath.Base(filename)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return base
}
