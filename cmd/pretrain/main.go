package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"StockCast/internal/di"
	"StockCast/internal/usecase"
	"StockCast/pkg/config"
	"StockCast/pkg/util"
)

var (
	configPath  string
	symbols     []string
	symbolsFile string
	startDate   string
	endDate     string
	lookback    int
	epochs      int
	batchSize   int
	force       bool
	concurrency int
	maxFailures int
)

var rootCmd = &cobra.Command{
	Use:   "pretrain",
	Short: "Train price models for a batch of symbols",
	Long: `Fetches daily closes for each symbol and trains a model, writing
artifacts to the configured models directory. Symbols that already have an
artifact are skipped unless --force is given.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "config/config.yaml", "config file path")
	rootCmd.Flags().StringSliceVar(&symbols, "symbols", nil, "comma-separated ticker symbols")
	rootCmd.Flags().StringVar(&symbolsFile, "symbols-file", "", "file with one symbol per line")
	rootCmd.Flags().StringVar(&startDate, "start", "", "range start (YYYY-MM-DD, default 2 years ago)")
	rootCmd.Flags().StringVar(&endDate, "end", "", "range end (YYYY-MM-DD, default today)")
	rootCmd.Flags().IntVar(&lookback, "lookback", 0, "lookback window (default from config)")
	rootCmd.Flags().IntVar(&epochs, "epochs", 0, "training epochs (default from config)")
	rootCmd.Flags().IntVar(&batchSize, "batch-size", 0, "training batch size (default from config)")
	rootCmd.Flags().BoolVar(&force, "force", false, "retrain even when an artifact exists")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", 2, "symbols trained in parallel")
	rootCmd.Flags().IntVar(&maxFailures, "max-failures", 0, "abort after this many failures (0 = no limit)")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	list, err := collectSymbols()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("no symbols: use --symbols or --symbols-file")
	}

	start, end, err := resolveRange()
	if err != nil {
		return err
	}

	if lookback == 0 {
		lookback = cfg.Pipeline.Lookback
	}
	if epochs == 0 {
		epochs = cfg.Pipeline.Epochs
	}
	if batchSize == 0 {
		batchSize = cfg.Pipeline.BatchSize
	}

	pretrainer, err := di.InitializePretrainer(cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	summary, err := pretrainer.Run(cmd.Context(), usecase.PretrainParams{
		Symbols:     list,
		Start:       start,
		End:         end,
		Lookback:    lookback,
		Epochs:      epochs,
		BatchSize:   batchSize,
		Force:       force,
		Concurrency: concurrency,
		MaxFailures: maxFailures,
	})
	if err != nil {
		return err
	}

	fmt.Printf("trained: %d  skipped: %d  failed: %d\n",
		len(summary.Trained), len(summary.Skipped), len(summary.Failed))
	for sym, ferr := range summary.Failed {
		fmt.Printf("  %s: %v\n", sym, ferr)
	}
	if summary.Aborted {
		return fmt.Errorf("sweep aborted after %d failures", maxFailures)
	}
	if len(summary.Failed) > 0 {
		return fmt.Errorf("%d symbols failed", len(summary.Failed))
	}
	return nil
}

func collectSymbols() ([]string, error) {
	list := append([]string(nil), symbols...)

	if symbolsFile != "" {
		f, err := os.Open(symbolsFile)
		if err != nil {
			return nil, fmt.Errorf("open symbols file: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			list = append(list, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read symbols file: %w", err)
		}
	}
	return list, nil
}

func resolveRange() (time.Time, time.Time, error) {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(-2, 0, 0)

	if startDate != "" {
		t, ok := util.ParseDate(startDate)
		if !ok {
			return time.Time{}, time.Time{}, fmt.Errorf("bad --start %q: want YYYY-MM-DD", startDate)
		}
		start = t
	}
	if endDate != "" {
		t, ok := util.ParseDate(endDate)
		if !ok {
			return time.Time{}, time.Time{}, fmt.Errorf("bad --end %q: want YYYY-MM-DD", endDate)
		}
		end = t
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--end must be after --start")
	}
	return start, end, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
