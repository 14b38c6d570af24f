package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ternarybob/arbor"

	"github.com/sudspis/sudspis/internal/common"
	"github.com/sudspis/sudspis/internal/pipeline"
	"github.com/sudspis/sudspis/internal/services/embedding"
	"github.com/sudspis/sudspis/internal/services/ocr"
	"github.com/sudspis/sudspis/internal/services/source"
	badgerstorage "github.com/sudspis/sudspis/internal/storage/badger"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths
	caseID       = flag.String("case", "", "Owning case identifier for new jobs")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Sudspis version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	fileIDs := flag.Args()
	if len(fileIDs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: sudspis [-config sudspis.toml] [-case <case-id>] <file-id> [<file-id> ...]")
		os.Exit(2)
	}

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("sudspis.toml"); err == nil {
			configFiles = append(configFiles, "sudspis.toml")
		} else if _, err := os.Stat("deployments/local/sudspis.toml"); err == nil {
			configFiles = append(configFiles, "deployments/local/sudspis.toml")
		}
	}

	// Startup order: config (defaults -> files -> env), logger, banner
	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	logger.Info().
		Strs("config_files", configFiles).
		Str("badger_path", config.Storage.Badger.Path).
		Str("source_path", config.Source.Path).
		Str("log_level", config.Logging.Level).
		Msg("Configuration loaded")

	storage, err := badgerstorage.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open storage")
		os.Exit(1)
	}
	defer storage.Close()

	if config.OCR.Endpoint == "" {
		logger.Fatal().Msg("OCR engine endpoint is required (set ocr.endpoint or SUDSPIS_OCR_ENDPOINT)")
		os.Exit(1)
	}
	engine := ocr.NewClient(config.OCR.Endpoint, config.OCR.APIKey, ocr.WithLogger(logger))
	poller := ocr.NewPoller(engine, &config.OCR, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Missing API key degrades to text-only persistence; chunks are stored
	// without vectors, which the pipeline already tolerates
	var embedder *embedding.GeminiService
	if config.Embedding.APIKey != "" {
		embedder, err = embedding.NewGeminiService(ctx, &config.Embedding, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize embedding service")
			os.Exit(1)
		}
	} else {
		logger.Warn().Msg("No embedding API key configured, chunks will be stored without vectors")
	}

	documents := source.NewFilesystem(config.Source.Path, logger)

	var runner *pipeline.Runner
	if embedder != nil {
		runner = pipeline.NewRunner(documents, poller, embedder, storage, config, logger)
	} else {
		runner = pipeline.NewRunner(documents, poller, nil, storage, config, logger)
	}

	failures := 0
	for _, fileID := range fileIDs {
		job, err := runner.Run(ctx, fileID, "", *caseID)
		if err != nil {
			failures++
			logger.Error().Err(err).Str("file_id", fileID).Msg("Processing failed")
			continue
		}

		logger.Info().
			Str("file_id", fileID).
			Str("job_id", job.ID).
			Str("status", string(job.Status)).
			Bool("needs_review", job.Metadata.NeedsReview).
			Int("pages", job.Metadata.PageCount).
			Int("chunks", job.Metadata.ChunkCount).
			Msg("Processing completed")

		if job.Metadata.NeedsReview {
			for _, reason := range job.Metadata.ReviewReasons {
				logger.Warn().Str("file_id", fileID).Str("reason", reason).Msg("Review reason")
			}
		}
	}

	if failures > 0 {
		logger.Error().Int("failed", failures).Int("total", len(fileIDs)).Msg("Some documents failed")
		os.Exit(1)
	}
}
