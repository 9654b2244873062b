package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bingrab/pkg/config"
	"bingrab/pkg/errors"
	"bingrab/pkg/logger"
	"bingrab/pkg/scraper"
	"bingrab/pkg/ui"
	"bingrab/pkg/ui/tui"
)

var (
	// Fetch command flags
	query              string
	outputDir          string
	disableAdultFilter bool
	filters            string
	limit              int
	threads            int
	useTUI             bool
)

// fetchCmd represents the fetch command.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Search for images and download them",
	Long: `Search the Bing image endpoint for a query and download matching
images concurrently into the output directory.

The output directory defaults to images/<query>. Filenames are derived
from the source URL, so re-running the same query overwrites the files
from the previous run.`,
	Example: `  # Download up to 100 puppy images with default settings
  bingrab fetch -q puppy

  # Custom output directory, limit and pool size
  bingrab fetch -q "red panda" -o ./pandas --limit 50 --threads 8

  # Append endpoint query filters, e.g. a license restriction
  bingrab fetch -q sunset --filters "+filterui:license-L1"

  # Watch the run in a live terminal view
  bingrab fetch -q puppy --tui`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runFetch()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	addFetchFlags(fetchCmd)
}

// addFetchFlags registers the fetch flag set on a command. The same set
// lives on the root command so the subcommand name can be omitted.
func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&query, "query", "q", "", "search query (required)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (default: images/<query>)")
	cmd.Flags().BoolVar(&disableAdultFilter, "disable-adult-filter", false, "disable the adult content filter")
	cmd.Flags().StringVar(&filters, "filters", "", "extra query filters appended to the search request")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of images to download")
	cmd.Flags().IntVar(&threads, "threads", 0, "download worker pool size")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "show a live terminal view of the run")
}

func runFetch() {
	q := strings.TrimSpace(query)
	if q == "" {
		ui.PrintError("A non-empty query is required", "use -q/--query")
		os.Exit(1)
	}

	// Build flags map from command line
	flags := make(map[string]interface{})
	if outputDir != "" {
		flags["output-dir"] = outputDir
	}
	if disableAdultFilter {
		flags["disable-adult-filter"] = true
	}
	if filters != "" {
		flags["filters"] = filters
	}
	if limit != 0 {
		flags["limit"] = limit
	}
	if threads != 0 {
		flags["threads"] = threads
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Invalid configuration", err.Error())
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logging", err.Error())
		os.Exit(1)
	}
	logger.WithField("version", version).Info("bingrab starting")

	ui.PrintInfo("Query", q)
	ui.PrintInfo("Output", cfg.Output.DirFor(q))

	s, err := scraper.New(cfg)
	if err != nil {
		ui.PrintError("Failed to initialize scraper", err.Error())
		os.Exit(1)
	}

	if useTUI {
		runWithTUI(s, q)
		return
	}

	summary, err := s.Run(q)
	if err != nil {
		logger.WithError(err).WithField("query", q).Error("run failed")
		ui.PrintError("DOWNLOAD FAILED", err.Error())
		if errors.IsType(err, errors.ErrorTypeInvalidArgument) {
			os.Exit(2)
		}
		os.Exit(1)
	}

	// Per-image failures are already counted in the summary; the run
	// itself still succeeded.
	logger.WithFields(map[string]interface{}{
		"query":      q,
		"downloaded": summary.Downloaded,
		"failed":     summary.Failed,
	}).Info("run finished")
	ui.PrintSuccess("[DOWNLOAD COMPLETED]")
}

// runWithTUI runs the pipeline alongside the live terminal view.
func runWithTUI(s *scraper.Scraper, q string) {
	terminal := tui.New()
	s.SetTUI(terminal)

	scraperDone := make(chan error, 1)
	go func() {
		_, err := s.Run(q)
		scraperDone <- err
	}()

	tuiDone := make(chan error, 1)
	go func() {
		tuiDone <- terminal.Start()
	}()

	select {
	case err := <-scraperDone:
		terminal.Stop()
		<-tuiDone
		if err != nil {
			logger.WithError(err).WithField("query", q).Error("run failed")
			os.Exit(1)
		}
	case err := <-tuiDone:
		if err != nil {
			logger.WithError(err).Error("terminal view failed")
			os.Exit(1)
		}
	}
}
