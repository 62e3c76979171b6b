// Package tailor rewrites the résumé HTML skeleton against a job description
// using the powerful model tier.
package tailor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zmalik/job-automator/internal/llm"
	"github.com/zmalik/job-automator/internal/prompts"
)

// ErrEmptyGeneration indicates the model returned nothing usable for a
// mandatory generative stage.
var ErrEmptyGeneration = errors.New("AI failed to generate CV content")

// Tailor asks the model to rewrite cvTemplateHTML to match jd. The model is
// instructed to preserve every tag and CSS class and to mutate only text
// nodes; that contract is between the user and the model and is not validated
// here. An empty or whitespace-only result is a hard failure.
func Tailor(ctx context.Context, client llm.Client, model, system, jd, cvTemplateHTML string) (string, error) {
	prompt := prompts.Format(prompts.MustGet("tailor.json", "tailor-cv"), map[string]string{
		"JD":         jd,
		"CVTemplate": cvTemplateHTML,
	})

	response, err := client.Generate(ctx, model, prompt, system)
	if err != nil {
		return "", fmt.Errorf("CV tailoring failed: %w", err)
	}

	if strings.TrimSpace(response) == "" {
		return "", ErrEmptyGeneration
	}

	return response, nil
}
