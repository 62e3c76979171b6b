// Package compose produces the German DIN-5008 cover letter ("Anschreiben")
// using the powerful model tier.
package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zmalik/job-automator/internal/llm"
	"github.com/zmalik/job-automator/internal/prompts"
)

// ErrEmptyGeneration indicates the model returned nothing usable for the letter.
var ErrEmptyGeneration = errors.New("AI failed to generate Anschreiben content")

// Input carries everything the letter prompt needs.
type Input struct {
	JD          string
	TailoredCV  string
	CoreInfo    string
	ReferenceCV string
	// Date is the letter date, injected into the prompt as DD.MM.YYYY.
	Date time.Time
}

// Compose asks the model for a formal German business letter grounded in the
// reference CV. Plain text only; an empty result is a hard failure.
func Compose(ctx context.Context, client llm.Client, model, system string, in Input) (string, error) {
	prompt := prompts.Format(prompts.MustGet("compose.json", "anschreiben"), map[string]string{
		"JD":          in.JD,
		"TailoredCV":  in.TailoredCV,
		"ReferenceCV": in.ReferenceCV,
		"CoreInfo":    in.CoreInfo,
		"Date":        in.Date.Format("02.01.2006"),
	})

	response, err := client.Generate(ctx, model, prompt, system)
	if err != nil {
		return "", fmt.Errorf("Anschreiben composition failed: %w", err)
	}

	if strings.TrimSpace(response) == "" {
		return "", ErrEmptyGeneration
	}

	return response, nil
}
