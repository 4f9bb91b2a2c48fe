package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/purchase-analyzer/internal/config"
	"github.com/example/purchase-analyzer/internal/logging"
	"github.com/example/purchase-analyzer/internal/textenc"
	"github.com/example/purchase-analyzer/internal/ui"
	"github.com/example/purchase-analyzer/pkg/purchase"
	"github.com/example/purchase-analyzer/pkg/report"
)

const version = "1.0.0"

func main() {
	os.Exit(execute(newRootCmd()))
}

// execute runs cmd and returns the process exit code
func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

type options struct {
	configPath string
	input      string
	output     string
	top        int
	encoding   string
	logLevel   string
	category   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "purchase-analyzer",
		Short: "Summarize a purchase log and write a spending report",
		Long: `Purchase Analyzer reads a semicolon-separated purchase log
(date;category;name;price;qty), skips invalid lines, prints totals per category
and the most expensive purchases, and saves a text report.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			return run(cfg, opts.category, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a TOML configuration file")
	flags.StringVarP(&opts.input, "input", "i", "", "Purchase log to analyze (default purchases.txt)")
	flags.StringVarP(&opts.output, "output", "o", "", "Report file to write (default report.txt)")
	flags.IntVarP(&opts.top, "top", "n", 0, "Number of most expensive purchases to print (default 3)")
	flags.StringVar(&opts.encoding, "encoding", "", "Charset of the purchase log, e.g. utf-8, windows-1251")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.category, "category", "", "Also list the purchases of this category")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "purchase-analyzer v%s\n", version)
		},
	})

	return cmd
}

// resolveConfig loads the config file and environment, then applies the
// flags that were set explicitly on the command line before validation.
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	flags := cmd.Flags()
	return config.LoadConfig(opts.configPath, func(cfg *config.Config) {
		if flags.Changed("input") {
			cfg.InputFile = opts.input
		}
		if flags.Changed("output") {
			cfg.OutputFile = opts.output
		}
		if flags.Changed("top") {
			cfg.TopN = opts.top
		}
		if flags.Changed("encoding") {
			cfg.Encoding = opts.encoding
		}
		if flags.Changed("log-level") {
			cfg.LogLevel = opts.logLevel
		}
	})
}

func run(cfg *config.Config, category string, logger zerolog.Logger) error {
	enc, err := textenc.Lookup(cfg.Encoding)
	if err != nil {
		return err
	}

	ui.Header("анализ покупок")
	ui.Step(1, 3, fmt.Sprintf("анализируем файл %s...", cfg.InputFile))
	logger.Debug().Str("path", cfg.InputFile).Str("encoding", cfg.Encoding).Msg("loading purchases")

	log, err := purchase.LoadEncoded(cfg.InputFile, enc)
	if err != nil {
		logger.Error().Err(err).Msg("load failed")
		return fmt.Errorf("failed to load purchases: %w", err)
	}
	logger.Debug().Int("lines", log.Lines).Int("valid", len(log.Records)).Int("errors", log.Errors).Msg("purchases loaded")

	ui.Step(2, 3, "подсчитываем траты")
	ui.Success(fmt.Sprintf("найдено валидных покупок: %d", len(log.Records)))
	if log.Errors > 0 {
		ui.Warning(fmt.Sprintf("найдено строк с ошибками: %d", log.Errors))
	} else {
		ui.Info(fmt.Sprintf("найдено строк с ошибками: %d", log.Errors))
	}
	ui.Info(fmt.Sprintf("общая сумма покупок: %.2f", purchase.TotalSpent(log.Records)))

	ui.Section("траты по категориям:")
	byCategory := purchase.SpentByCategory(log.Records)
	for _, name := range purchase.SortedCategories(byCategory) {
		ui.Item(fmt.Sprintf("%s: %.2f", name, byCategory[name]))
	}

	ui.Section(fmt.Sprintf("топ-%d самых дорогих покупок:", cfg.TopN))
	for i, r := range purchase.TopNExpensive(log.Records, cfg.TopN) {
		ui.Item(fmt.Sprintf("%d. %s: %.2f", i+1, r.Name(), r.Total()))
	}

	if category != "" {
		ui.Section(fmt.Sprintf("покупки в категории %s:", category))
		matches := log.ByCategory(category)
		if len(matches) == 0 {
			ui.Warning("нет покупок")
		}
		for _, r := range matches {
			ui.Item(fmt.Sprintf("%s %s: %.2f", r.Date(), r.Name(), r.Total()))
		}
	}

	ui.Step(3, 3, "сохраняем отчёт")
	if err := report.Write(cfg.OutputFile, log.Records, log.Errors); err != nil {
		logger.Error().Err(err).Msg("report failed")
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Debug().Str("path", cfg.OutputFile).Msg("report written")

	ui.Section(fmt.Sprintf("отчёт сохранён в файл %s", cfg.OutputFile))
	return nil
}
