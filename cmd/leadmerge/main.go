// Package main provides the CLI entry point for leadmerge.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/leadmerge-go/internal/config"
	"github.com/ukaji3/leadmerge-go/pkg/leadmerge"
	"github.com/ukaji3/leadmerge-go/pkg/leadmerge/output"
)

var (
	configPath      string
	annotations     string
	annotationsFile string
	accountsPath    string
	usersPath       string
	outputPath      string
	minScore        int
	strict          bool
	previewRows     int
	verbose         bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// reportError prints one line for a failed run. Missing input has already
// been reported as a warning.
func reportError(w io.Writer, err error) {
	if errors.Is(err, leadmerge.ErrMissingInput) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

const missingInputWarning = "Warning: please provide an input file and the annotation string."

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leadmerge [input.xlsx]",
		Short: "Merge a social-media export with location scores and account owners",
		Long: `leadmerge combines a social-media export workbook with an annotation
string of the form "City: ZIP: Score|City: ZIP: Score|...", one entry per
export row in the same order. Each row's ZIP is matched against the CRM
account export to find the account owner. Rows scoring below the threshold,
rows with ZIP "N/A", and repeated messages are dropped, and the result is
saved next to the input as <name>_processed.xlsx.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: ./leadmerge.toml)")
	rootCmd.Flags().StringVarP(&annotations, "annotations", "a", "", "Annotation string (City: ZIP: Score|...)")
	rootCmd.Flags().StringVar(&annotationsFile, "annotations-file", "", "Read the annotation string from a file (- for stdin)")
	rootCmd.Flags().StringVar(&accountsPath, "accounts", "", "Account export CSV (default from config: SOQL.csv)")
	rootCmd.Flags().StringVar(&usersPath, "users", "", "User export CSV (default from config: Users.csv)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: <input>_processed.xlsx)")
	rootCmd.Flags().IntVar(&minScore, "min-score", leadmerge.DefaultThreshold, "Minimum score threshold (1-10)")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "Fail when annotation entries and rows differ in count")
	rootCmd.Flags().IntVar(&previewRows, "preview", 0, "Print the first N output rows")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	text, err := readAnnotations(cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(args) == 0 || strings.TrimSpace(text) == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), missingInputWarning)
		return leadmerge.ErrMissingInput
	}
	inputPath := args[0]

	cfg, resolvedConfig, configExists, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	applyFlagOverrides(cmd, cfg)

	logger, err := newLogger(cfg.Logging, verbose, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger = logger.With(zap.String("run_id", uuid.NewString()))
	if configExists {
		logger.Debug("loaded config", zap.String("path", resolvedConfig))
	}

	opts := cfg.MergeOptions()
	opts.Logger = logger
	if err := opts.Validate(); err != nil {
		return err
	}

	paths := leadmerge.Paths{
		Input:    inputPath,
		Accounts: cfg.References.Accounts,
		Users:    cfg.References.Users,
		Output:   outputPath,
	}
	written, result, err := leadmerge.Process(paths, text, opts)
	if err != nil {
		if errors.Is(err, leadmerge.ErrMissingInput) {
			fmt.Fprintln(cmd.ErrOrStderr(), missingInputWarning)
		}
		logger.Debug("processing failed", zap.Error(err))
		return fmt.Errorf("processing failed: %w", err)
	}

	stats := result.Stats
	fmt.Fprintf(cmd.OutOrStdout(), "File processed and saved as %s (%s of %s rows kept, %s without account owner)\n",
		written,
		humanize.Comma(int64(stats.Output)),
		humanize.Comma(int64(stats.Combined)),
		humanize.Comma(int64(stats.Unowned)))

	if previewRows > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), output.Preview(result.Table, previewRows))
	}

	return nil
}

// readAnnotations returns the annotation string from --annotations or
// --annotations-file. Setting both is an error.
func readAnnotations(stdin io.Reader) (string, error) {
	if annotations != "" && annotationsFile != "" {
		return "", errors.New("use either --annotations or --annotations-file, not both")
	}
	if annotationsFile == "" {
		return annotations, nil
	}

	var data []byte
	var err error
	if annotationsFile == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(annotationsFile)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read annotations: %w", err)
	}
	return string(data), nil
}

// applyFlagOverrides copies explicitly set flags over config values.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("accounts") {
		cfg.References.Accounts = accountsPath
	}
	if flags.Changed("users") {
		cfg.References.Users = usersPath
	}
	if flags.Changed("min-score") {
		cfg.Filter.MinScore = minScore
	}
	if flags.Changed("strict") {
		cfg.Input.StrictAlignment = strict
	}
}
