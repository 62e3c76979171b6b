package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zmalik/job-automator/internal/llm"
	"github.com/zmalik/job-automator/internal/templates"
)

// recorder collects progress events for assertions.
type recorder struct {
	events []ProgressEvent
}

func (r *recorder) report(message string, severity Severity) {
	r.events = append(r.events, ProgressEvent{Message: message, Severity: severity})
}

func (r *recorder) errorEvents() []ProgressEvent {
	var out []ProgressEvent
	for _, e := range r.events {
		if e.Severity == SeverityError {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) messages() string {
	var sb strings.Builder
	for _, e := range r.events {
		sb.WriteString(e.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// scriptedClient returns canned responses keyed by model name, in call order.
type scriptedClient struct {
	byModel map[string][]string
	err     error
	calls   []string
}

func (s *scriptedClient) Generate(_ context.Context, model, _, _ string) (string, error) {
	s.calls = append(s.calls, model)
	if s.err != nil {
		return "", s.err
	}
	queue := s.byModel[model]
	if len(queue) == 0 {
		return "", fmt.Errorf("unexpected call for model %s", model)
	}
	response := queue[0]
	s.byModel[model] = queue[1:]
	return response, nil
}

type fakeSource struct {
	client llm.Client
	err    error
	calls  int
}

func (f *fakeSource) ClientFor(_ context.Context, _ llm.Provider) (llm.Client, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

// fakeRenderer writes a placeholder PDF, or fails.
type fakeRenderer struct {
	err   error
	calls int
}

func (f *fakeRenderer) RenderPDF(_ context.Context, _ string, outPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outPath, []byte("%PDF-1.4 fake"), 0644)
}

func writeTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		templates.CVTemplateFile:  `<html><body class="cv">skeleton</body></html>`,
		templates.CoreInfoFile:    "Max Mustermann\nMusterstr. 1\n12345 Berlin",
		templates.ReferenceCVFile: "Long reference history with concrete project examples.",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

const (
	testFast     = "gemini-2.5-flash"
	testPowerful = "gemini-2.5-pro"
)

func happyClient() *scriptedClient {
	return &scriptedClient{byModel: map[string][]string{
		testFast: {`{"company_name":"ACME GmbH","job_title":"Data Engineer"}`},
		testPowerful: {
			`<html><body class="cv">tailored</body></html>`,
			"Sehr geehrte Damen und Herren,\n\nhiermit bewerbe ich mich...",
		},
	}}
}

func baseOptions(t *testing.T, rec *recorder, client llm.Client, renderer *fakeRenderer) Options {
	t.Helper()
	return Options{
		Provider:     llm.ProviderGemini,
		JD:           "We are hiring a Data Engineer at ACME GmbH in Berlin.",
		Report:       rec.report,
		UserName:     "MaxMustermann",
		TemplatesDir: writeTemplates(t),
		OutputRoot:   t.TempDir(),
		Clients:      &fakeSource{client: client},
		Renderer:     renderer,
		Now:          func() time.Time { return time.Date(2026, time.August, 24, 12, 0, 0, 0, time.Local) },
	}
}

func TestRun_HappyPath(t *testing.T) {
	rec := &recorder{}
	client := happyClient()
	renderer := &fakeRenderer{}
	opts := baseOptions(t, rec, client, renderer)

	dir, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(opts.OutputRoot, "2026-08-24 - ACME GmbH - Data Engineer"), dir)

	// S4: filename slug uses underscores.
	assert.FileExists(t, filepath.Join(dir, "CV_MaxMustermann_Data_Engineer.html"))
	assert.FileExists(t, filepath.Join(dir, "CV_MaxMustermann_Data_Engineer.pdf"))
	assert.FileExists(t, filepath.Join(dir, "Anschreiben.txt"))

	// Tier mapping: one fast call, two powerful calls, nothing else.
	assert.Equal(t, []string{testFast, testPowerful, testPowerful}, client.calls)
	assert.Empty(t, rec.errorEvents())
}

func TestRun_EventOrdering(t *testing.T) {
	rec := &recorder{}
	opts := baseOptions(t, rec, happyClient(), &fakeRenderer{})

	_, err := Run(context.Background(), opts)
	require.NoError(t, err)

	var successes []string
	for _, e := range rec.events {
		if e.Severity == SeveritySuccess || e.Severity == SeverityInfo {
			successes = append(successes, e.Message)
		}
	}

	wantOrder := []string{"Starting process", "Identified role", "Created application folder", "Loaded templates", "tailored CV", "Anschreiben", "Saved"}
	idx := 0
	for _, msg := range successes {
		if idx < len(wantOrder) && strings.Contains(msg, wantOrder[idx]) {
			idx++
		}
	}
	assert.Equal(t, len(wantOrder), idx, "stage events out of order: %v", successes)
}

func TestRun_MissingClaudeCredential(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	require.NoError(t, os.Unsetenv("ANTHROPIC_API_KEY"))

	rec := &recorder{}
	dir, err := Run(context.Background(), Options{
		Provider: llm.ProviderClaude,
		JD:       "some jd",
		Report:   rec.report,
		Clients:  llm.NewRegistry(),
		Renderer: &fakeRenderer{},
	})
	require.Error(t, err)
	assert.Empty(t, dir)

	errs := rec.errorEvents()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "ANTHROPIC_API_KEY")
}

func TestRun_MissingGeminiCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))

	rec := &recorder{}
	dir, err := Run(context.Background(), Options{
		Provider: llm.ProviderGemini,
		JD:       "some jd",
		Report:   rec.report,
		Clients:  llm.NewRegistry(),
		Renderer: &fakeRenderer{},
	})
	require.Error(t, err)
	assert.Empty(t, dir)

	errs := rec.errorEvents()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "GEMINI_API_KEY")
}

func TestRun_EmptyJD_NoClassifierCall(t *testing.T) {
	rec := &recorder{}
	client := happyClient()
	opts := baseOptions(t, rec, client, &fakeRenderer{})
	opts.JD = "   \n\t  "

	dir, err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.Empty(t, dir)
	assert.Empty(t, client.calls, "no LLM call may happen for an empty JD")

	errs := rec.errorEvents()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "empty")
}

func TestRun_UnparseableClassification_StillCompletes(t *testing.T) {
	rec := &recorder{}
	client := &scriptedClient{byModel: map[string][]string{
		testFast: {"I could not find any structured data in this text, sorry."},
		testPowerful: {
			`<html><body class="cv">tailored</body></html>`,
			"Sehr geehrte Damen und Herren, ...",
		},
	}}
	opts := baseOptions(t, rec, client, &fakeRenderer{})

	dir, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-24 - Unknown Company - Unknown Role", filepath.Base(dir))

	// Degraded success: one error event about parsing, full bundle written anyway.
	errs := rec.errorEvents()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "parse")
	assert.FileExists(t, filepath.Join(dir, "CV_MaxMustermann_Unknown_Role.html"))
	assert.FileExists(t, filepath.Join(dir, "CV_MaxMustermann_Unknown_Role.pdf"))
	assert.FileExists(t, filepath.Join(dir, "Anschreiben.txt"))
}

func TestRun_EmptyTailorResult_Aborts(t *testing.T) {
	rec := &recorder{}
	client := &scriptedClient{byModel: map[string][]string{
		testFast:     {`{"company_name":"ACME GmbH","job_title":"Data Engineer"}`},
		testPowerful: {"   \n\t  "},
	}}
	renderer := &fakeRenderer{}
	opts := baseOptions(t, rec, client, renderer)

	dir, err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.Empty(t, dir)
	assert.Zero(t, renderer.calls, "no PDF may be rendered after an empty tailor result")

	errs := rec.errorEvents()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "CV")
}

func TestRun_EmptyComposeResult_NoFilesWritten(t *testing.T) {
	rec := &recorder{}
	client := &scriptedClient{byModel: map[string][]string{
		testFast: {`{"company_name":"ACME GmbH","job_title":"Data Engineer"}`},
		testPowerful: {
			`<html><body class="cv">tailored</body></html>`,
			"",
		},
	}}
	opts := baseOptions(t, rec, client, &fakeRenderer{})

	dir, err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.Empty(t, dir)

	jobDir := filepath.Join(opts.OutputRoot, "2026-08-24 - ACME GmbH - Data Engineer")
	assert.NoFileExists(t, filepath.Join(jobDir, "Anschreiben.txt"))
	assert.NoFileExists(t, filepath.Join(jobDir, "CV_MaxMustermann_Data_Engineer.pdf"))
}

func TestRun_MissingTemplate_Aborts(t *testing.T) {
	rec := &recorder{}
	client := happyClient()
	renderer := &fakeRenderer{}
	opts := baseOptions(t, rec, client, renderer)
	require.NoError(t, os.Remove(filepath.Join(opts.TemplatesDir, templates.ReferenceCVFile)))

	dir, err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.Empty(t, dir)
	assert.Zero(t, renderer.calls)

	jobDir := filepath.Join(opts.OutputRoot, "2026-08-24 - ACME GmbH - Data Engineer")
	assert.NoFileExists(t, filepath.Join(jobDir, "CV_MaxMustermann_Data_Engineer.html"))
}

func TestRun_RendererFailure_Aborts(t *testing.T) {
	rec := &recorder{}
	opts := baseOptions(t, rec, happyClient(), &fakeRenderer{err: errors.New("chrome not installed")})

	dir, err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.Empty(t, dir)

	errs := rec.errorEvents()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "PDF")
}

func TestRun_Idempotent_SameDirectoryOnRerun(t *testing.T) {
	rec := &recorder{}
	opts := baseOptions(t, rec, happyClient(), &fakeRenderer{})

	first, err := Run(context.Background(), opts)
	require.NoError(t, err)

	opts.Clients = &fakeSource{client: happyClient()}
	second, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_NoCredentialLeakage(t *testing.T) {
	const secret = "sk-ant-super-secret-key"
	t.Setenv("ANTHROPIC_API_KEY", secret)

	rec := &recorder{}
	client := &scriptedClient{byModel: map[string][]string{
		"claude-3-5-haiku-20241022": {"no json here at all"},
		"claude-3-7-sonnet-latest": {
			`<html><body class="cv">tailored</body></html>`,
			"Sehr geehrte Damen und Herren, ...",
		},
	}}
	opts := baseOptions(t, rec, client, &fakeRenderer{})
	opts.Provider = llm.ProviderClaude

	_, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.NotContains(t, rec.messages(), secret)
}
