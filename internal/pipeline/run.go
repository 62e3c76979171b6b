// Package pipeline provides the high-level orchestration for the application
// packet generation process: classify the job description, tailor the CV,
// compose the Anschreiben, and materialize the bundle on disk.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/zmalik/job-automator/internal/classify"
	"github.com/zmalik/job-automator/internal/compose"
	"github.com/zmalik/job-automator/internal/llm"
	"github.com/zmalik/job-automator/internal/output"
	"github.com/zmalik/job-automator/internal/prompts"
	"github.com/zmalik/job-automator/internal/render"
	"github.com/zmalik/job-automator/internal/tailor"
	"github.com/zmalik/job-automator/internal/templates"
)

// ClientSource yields a client for a provider. Production uses the shared
// lazy registry; tests inject fakes.
type ClientSource interface {
	ClientFor(ctx context.Context, provider llm.Provider) (llm.Client, error)
}

// Options holds configuration for running the pipeline. Provider, JD, and
// Report come from the caller; the remaining collaborators default to their
// production implementations when left unset.
type Options struct {
	Provider llm.Provider
	JD       string
	Report   Reporter

	UserName     string
	TemplatesDir string
	OutputRoot   string

	Clients  ClientSource
	Renderer render.Renderer
	Catalog  llm.Catalog
	Now      func() time.Time
}

// sharedRegistry holds the per-process provider clients. Created on first
// use, never torn down.
var sharedRegistry = llm.NewRegistry()

// Run executes the full generation pipeline and returns the output directory.
// On any fatal condition it emits exactly one error event and returns an
// empty path with the cause. The pipeline is strictly sequential; callers
// that need non-blocking behaviour run it on their own goroutine.
func Run(ctx context.Context, opts Options) (string, error) {
	report := opts.Report
	if report == nil {
		report = func(string, Severity) {}
	}
	if opts.Clients == nil {
		opts.Clients = sharedRegistry
	}
	if opts.Renderer == nil {
		opts.Renderer = render.NewChromeRenderer()
	}
	if opts.Catalog == nil {
		opts.Catalog = llm.DefaultCatalog()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.UserName == "" {
		opts.UserName = "Candidate"
	}
	if opts.TemplatesDir == "" {
		opts.TemplatesDir = "templates"
	}

	fail := func(err error) (string, error) {
		report(err.Error(), SeverityError)
		return "", err
	}

	// INIT: bind the provider client and resolve the per-stage models.
	rawClient, err := opts.Clients.ClientFor(ctx, opts.Provider)
	if err != nil {
		return fail(err)
	}
	fastModel, err := opts.Catalog.Model(opts.Provider, llm.TierFast)
	if err != nil {
		return fail(err)
	}
	powerfulModel, err := opts.Catalog.Model(opts.Provider, llm.TierPowerful)
	if err != nil {
		return fail(err)
	}
	client := &reportingClient{inner: rawClient, provider: opts.Provider, report: report}
	persona := prompts.Persona()

	report(fmt.Sprintf("Starting process with %q...", opts.Provider), SeverityInfo)

	if strings.TrimSpace(opts.JD) == "" {
		return fail(errors.New("job description text is empty; process stopped"))
	}

	// Classify: sentinel values are a degraded success, not a failure.
	classification, err := classify.Classify(ctx, client, fastModel, persona, opts.JD)
	if err != nil {
		if !errors.Is(err, classify.ErrUnparseable) {
			return fail(err)
		}
		report(err.Error(), SeverityError)
	}
	report(fmt.Sprintf("Identified role: %s at %s", classification.JobTitle, classification.Company), SeveritySuccess)

	// Create the output directory as soon as the names are known.
	jobDir, err := output.MakeJobDir(opts.OutputRoot, opts.Now(), classification.Company, classification.JobTitle)
	if err != nil {
		return fail(err)
	}
	report(fmt.Sprintf("Created application folder: %s", filepath.Base(jobDir)), SeveritySuccess)

	// All three templates are required before any generative call.
	bundle, err := templates.Load(opts.TemplatesDir)
	if err != nil {
		return fail(err)
	}
	report(fmt.Sprintf("Loaded templates from %s", opts.TemplatesDir), SeverityInfo)

	tailoredCV, err := tailor.Tailor(ctx, client, powerfulModel, persona, opts.JD, bundle.CVTemplateHTML)
	if err != nil {
		return fail(err)
	}
	report("Successfully tailored CV with AI.", SeveritySuccess)

	anschreiben, err := compose.Compose(ctx, client, powerfulModel, persona, compose.Input{
		JD:          opts.JD,
		TailoredCV:  tailoredCV,
		CoreInfo:    bundle.CoreInfo,
		ReferenceCV: bundle.ReferenceCV,
		Date:        opts.Now(),
	})
	if err != nil {
		return fail(err)
	}
	report("Successfully generated Anschreiben with AI.", SeveritySuccess)

	if err := output.WriteBundle(ctx, opts.Renderer, jobDir, output.FileSlug(opts.UserName), classification.JobTitle, tailoredCV, anschreiben); err != nil {
		return fail(err)
	}
	report(fmt.Sprintf("Saved tailored CV (HTML and PDF) and Anschreiben to %s", filepath.Base(jobDir)), SeveritySuccess)

	return jobDir, nil
}

// reportingClient emits a working event before each LLM call so front-ends
// can show in-flight status. It never logs the prompt or the credential.
type reportingClient struct {
	inner    llm.Client
	provider llm.Provider
	report   Reporter
}

func (r *reportingClient) Generate(ctx context.Context, model, prompt, system string) (string, error) {
	r.report(fmt.Sprintf("Calling %s model (%s)... This may take a moment.", r.provider, model), SeverityWorking)
	return r.inner.Generate(ctx, model, prompt, system)
}
