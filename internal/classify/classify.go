// Package classify extracts the company name and job title from a raw job
// description using the fast model tier.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/zmalik/job-automator/internal/llm"
	"github.com/zmalik/job-automator/internal/prompts"
)

// Sentinel values substituted when the model output cannot be parsed.
const (
	UnknownCompany = "Unknown Company"
	UnknownRole    = "Unknown Role"
)

// ErrUnparseable marks a soft failure: the model responded, but no usable
// JSON could be recovered. Callers receive the sentinel classification
// alongside it and are expected to continue.
var ErrUnparseable = errors.New("failed to parse company/role from AI response")

// Classification is the extracted (company, job title) pair.
type Classification struct {
	Company  string `json:"company_name"`
	JobTitle string `json:"job_title"`
}

// Sentinel returns the fallback classification.
func Sentinel() Classification {
	return Classification{Company: UnknownCompany, JobTitle: UnknownRole}
}

// IsSentinel reports whether c carries only fallback values.
func (c Classification) IsSentinel() bool {
	return c.Company == UnknownCompany && c.JobTitle == UnknownRole
}

// Classify asks the model for a single JSON object naming company and role.
// A provider failure is returned as a hard error. An unparseable response
// returns the sentinel classification wrapped with ErrUnparseable so the
// caller can report it and proceed.
func Classify(ctx context.Context, client llm.Client, model, system, jd string) (Classification, error) {
	prompt := prompts.Format(prompts.MustGet("classify.json", "extract-company-role"), map[string]string{
		"JD": jd,
	})

	response, err := client.Generate(ctx, model, prompt, system)
	if err != nil {
		return Classification{}, fmt.Errorf("company/role extraction failed: %w", err)
	}

	if strings.TrimSpace(response) == "" {
		return Sentinel(), fmt.Errorf("%w: AI returned an empty response", ErrUnparseable)
	}

	object, err := llm.ExtractJSONObject(response)
	if err != nil {
		return Sentinel(), fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	var c Classification
	if err := json.Unmarshal([]byte(object), &c); err != nil {
		return Sentinel(), fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	if strings.TrimSpace(c.Company) == "" {
		c.Company = UnknownCompany
	}
	if strings.TrimSpace(c.JobTitle) == "" {
		c.JobTitle = UnknownRole
	}

	return c, nil
}
