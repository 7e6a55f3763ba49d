package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/payops-dev/payoutconv/internal/config"
	"github.com/payops-dev/payoutconv/internal/logger"
	"github.com/payops-dev/payoutconv/internal/model"
	"github.com/payops-dev/payoutconv/internal/normalize"
	"github.com/payops-dev/payoutconv/internal/payout"
	"github.com/payops-dev/payoutconv/internal/runlog"
)

// defaultConfigFile is picked up from the working directory when no
// --config flag is given.
const defaultConfigFile = "payoutconv.yaml"

type convertOptions struct {
	input      string
	provider   string
	kind       string
	outputDir  string
	configPath string
	batchSize  int
	out        io.Writer
}

func newConvertCommand() *cobra.Command {
	opts := convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an ads or publishers payout file for the settlement tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.out = cmd.OutOrStdout()
			return runConvert(opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "payout file to convert (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "wallet provider: uphold, bitflyer or gemini (required)")
	_ = cmd.MarkFlagRequired("provider")
	cmd.Flags().StringVar(&opts.kind, "kind", "", "payout kind: ads or publishers (required)")
	_ = cmd.MarkFlagRequired("kind")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "directory for output files (default: the input file's directory)")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 0, "records per batched output file (default: from config)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to payoutconv.yaml")

	return cmd
}

func runConvert(opts convertOptions) error {
	if opts.kind != "ads" && opts.kind != "publishers" {
		return fmt.Errorf("unsupported kind %q (want ads or publishers)", opts.kind)
	}

	provider, err := model.ParseProvider(opts.provider)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	rounding, err := normalize.ParseRounding(cfg.Conversion.Rounding)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	batchSize := cfg.Conversion.BatchSize
	if opts.batchSize > 0 {
		batchSize = opts.batchSize
	}

	outDir := opts.outputDir
	if outDir == "" {
		outDir = filepath.Dir(opts.input)
	}

	runID := uuid.NewString()
	log := logger.New(level).With().Str("run_id", runID).Logger()

	svc := payout.NewService(payout.Options{
		Rounding:  rounding,
		BatchSize: batchSize,
		OutputDir: outDir,
		Logger:    log,
	})

	entry := runlog.Entry{
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		Kind:      opts.kind,
		Provider:  string(provider),
		Input:     filepath.Base(opts.input),
	}

	switch opts.kind {
	case "ads":
		res, err := svc.ConvertAds(opts.input, provider)
		if err != nil {
			return err
		}
		fmt.Fprintf(opts.out, "Total BAT: %s to %s\n", res.Total, strings.Join(res.Files, ", "))
		entry.Written = res.Written
		entry.Skipped = res.Skipped
		entry.TotalBAT = res.Total.String()
		entry.Files = len(res.Files)

	case "publishers":
		res, err := svc.ConvertPublishers(opts.input, provider)
		if err != nil {
			return err
		}
		fmt.Fprintf(opts.out, "total contribution amount: %s\n", res.ContributionTotal)
		fmt.Fprintf(opts.out, "total referral amount: %s\n", res.ReferralTotal)
		fmt.Fprintf(opts.out, "total: %s\n", res.Total)
		entry.Written = res.Contributions + res.Referrals
		entry.Skipped = res.SkippedType + res.DroppedKeys
		entry.TotalBAT = res.Total.String()
		entry.Files = 2
	}

	if err := runlog.Append(outDir, []runlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write run log: %v\n", err)
	}

	return nil
}

// loadConfig loads the file at path, or payoutconv.yaml from the
// working directory if present, or the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load(defaultConfigFile)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}
