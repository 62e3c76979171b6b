// Package output materializes a generation run on disk: sanitized names, the
// per-run directory, and the HTML/PDF/TXT artifact bundle.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/zmalik/job-automator/internal/render"
)

// AnschreibenFile is the fixed name of the cover letter artifact.
const AnschreibenFile = "Anschreiben.txt"

// unsafeChars matches everything outside the sanitisation alphabet.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_ -]+`)

// SafeName strips every character outside [A-Za-z0-9_ -] and trims
// surrounding whitespace. Used for directory name components.
func SafeName(s string) string {
	return strings.TrimSpace(unsafeChars.ReplaceAllString(s, ""))
}

// FileSlug is the filename variant of SafeName: spaces become underscores.
func FileSlug(s string) string {
	return strings.ReplaceAll(SafeName(s), " ", "_")
}

// JobDirName builds the per-run directory name: "<YYYY-MM-DD> - <company> - <role>".
func JobDirName(now time.Time, company, role string) string {
	return fmt.Sprintf("%s - %s - %s", now.Format("2006-01-02"), SafeName(company), SafeName(role))
}

// MakeJobDir creates the per-run directory under root, parents included.
// Re-running on the same day with the same inputs yields the same path.
func MakeJobDir(root string, now time.Time, company, role string) (string, error) {
	dir := filepath.Join(root, JobDirName(now, company, role))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return dir, nil
}

// CVFileName returns the CV artifact name for the given extension ("html" or "pdf").
func CVFileName(userName, role, ext string) string {
	return fmt.Sprintf("CV_%s_%s.%s", userName, FileSlug(role), ext)
}

// WriteBundle writes the three artifacts in fixed order: HTML, then PDF via
// the renderer, then the Anschreiben text. The first failure stops the write;
// files already on disk are left in place.
func WriteBundle(ctx context.Context, renderer render.Renderer, dir, userName, role, tailoredCV, anschreiben string) error {
	htmlPath := filepath.Join(dir, CVFileName(userName, role, "html"))
	if err := os.WriteFile(htmlPath, []byte(tailoredCV), 0644); err != nil {
		return fmt.Errorf("failed to save HTML CV: %w", err)
	}

	pdfPath := filepath.Join(dir, CVFileName(userName, role, "pdf"))
	if err := renderer.RenderPDF(ctx, tailoredCV, pdfPath); err != nil {
		return fmt.Errorf("failed to save PDF CV: %w", err)
	}

	letterPath := filepath.Join(dir, AnschreibenFile)
	if err := os.WriteFile(letterPath, []byte(anschreiben), 0644); err != nil {
		return fmt.Errorf("failed to save Anschreiben: %w", err)
	}

	return nil
}
