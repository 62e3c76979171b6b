package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zmalik/job-automator/internal/config"
	"github.com/zmalik/job-automator/internal/ingestion"
	"github.com/zmalik/job-automator/internal/llm"
	"github.com/zmalik/job-automator/internal/pipeline"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Generate an application packet from a job description",
	Long:  "Generate a tailored CV (HTML and PDF) and a German Anschreiben from a job description file. Without --jd, the most recent file in the JD directory is used.",
	RunE:  runApply,
}

var (
	jdPath       string
	jdDir        string
	providerFlag string
	configPath   string
	userName     string
	outputRoot   string
	templatesDir string
)

func init() {
	applyCmd.Flags().StringVarP(&jdPath, "jd", "j", "", "Path to a job description file (.txt, .pdf, or .html)")
	applyCmd.Flags().StringVar(&jdDir, "jd-dir", "", "Directory scanned for the newest job description when --jd is not given")
	applyCmd.Flags().StringVarP(&providerFlag, "provider", "p", "", "LLM provider: claude or gemini")
	applyCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a JSON config file")
	applyCmd.Flags().StringVar(&userName, "user", "", "Name used in generated CV file names")
	applyCmd.Flags().StringVar(&outputRoot, "output-root", "", "Root directory for application folders")
	applyCmd.Flags().StringVar(&templatesDir, "templates", "", "Directory holding cv_template.html, core_info.txt, and reference_cv.txt")

	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	provider := llm.Provider(cfg.Provider)
	if !provider.Valid() {
		return fmt.Errorf("unsupported provider %q (want claude or gemini)", cfg.Provider)
	}

	path := jdPath
	if path == "" {
		path, err = ingestion.FindLatest(cfg.JDDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Using newest job description: %s\n", path)
	}

	jd, err := ingestion.ReadJobDescription(path)
	if err != nil {
		return err
	}

	dir, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Provider:     provider,
		JD:           jd,
		Report:       consoleReporter(cmd.OutOrStdout()),
		UserName:     cfg.UserName,
		TemplatesDir: cfg.TemplatesDir,
		OutputRoot:   cfg.OutputRoot,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nDone. Application packet: %s\n", dir)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// applyFlagOverrides lets explicit flags win over config file values.
func applyFlagOverrides(cfg *config.Config) {
	if providerFlag != "" {
		cfg.Provider = providerFlag
	}
	if userName != "" {
		cfg.UserName = userName
	}
	if outputRoot != "" {
		cfg.OutputRoot = outputRoot
	}
	if templatesDir != "" {
		cfg.TemplatesDir = templatesDir
	}
	if jdDir != "" {
		cfg.JDDir = jdDir
	}
}

// consoleReporter renders progress events with a severity glyph, one per line.
func consoleReporter(w io.Writer) pipeline.Reporter {
	return func(message string, severity pipeline.Severity) {
		fmt.Fprintf(w, "%s %s\n", severityGlyph(severity), message)
	}
}

func severityGlyph(severity pipeline.Severity) string {
	switch severity {
	case pipeline.SeverityWorking:
		return "⚙️"
	case pipeline.SeveritySuccess:
		return "✅"
	case pipeline.SeverityError:
		return "❌"
	default:
		return "▶️"
	}
}
