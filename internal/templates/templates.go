// Package templates loads the three on-disk texts every generation run needs:
// the résumé HTML skeleton, the candidate contact block, and the long-form
// reference CV used to ground the cover letter.
package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File names expected inside the templates directory.
const (
	CVTemplateFile  = "cv_template.html"
	CoreInfoFile    = "core_info.txt"
	ReferenceCVFile = "reference_cv.txt"
)

// Bundle holds the loaded template texts. All three are guaranteed non-empty.
type Bundle struct {
	// CVTemplateHTML is the résumé skeleton with stable tag/class structure.
	CVTemplateHTML string
	// CoreInfo is the candidate contact block.
	CoreInfo string
	// ReferenceCV is the long-form candidate history, used only to ground the letter.
	ReferenceCV string
}

// Load reads all three template files from dir. Every file must exist and be
// non-empty after trimming; a partial bundle is never returned.
func Load(dir string) (*Bundle, error) {
	cvTemplate, err := readTemplate(dir, CVTemplateFile)
	if err != nil {
		return nil, err
	}
	coreInfo, err := readTemplate(dir, CoreInfoFile)
	if err != nil {
		return nil, err
	}
	referenceCV, err := readTemplate(dir, ReferenceCVFile)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		CVTemplateHTML: cvTemplate,
		CoreInfo:       coreInfo,
		ReferenceCV:    referenceCV,
	}, nil
}

func readTemplate(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("template file not found: %s", path)
		}
		return "", fmt.Errorf("error reading template file %s: %w", path, err)
	}
	content := string(data)
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("template file is empty: %s", path)
	}
	return content, nil
}
