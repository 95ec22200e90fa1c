package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/textgrab/textgrab/internal/config"
	"github.com/textgrab/textgrab/internal/imaging"
	"github.com/textgrab/textgrab/internal/ocr"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// logger writes to stderr; stdout carries only the extracted text.
var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	showVersion := flag.Bool("version", false, "print version information")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("textgrab %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	if os.Getenv("TEXTGRAB_LOG_LEVEL") == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(*configPath, flag.Arg(0)); err != nil {
		logger.Error().Err(err).Msg("text extraction failed")
		os.Exit(1)
	}
}

// run performs one extraction: load config, build the engine and client,
// extract from the configured image, print the text.
func run(configPath, imageArg string) error {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if imageArg != "" {
		cfg.Image = imageArg
	}

	engine, err := ocr.NewEngine(cfg.Engine, ocr.EngineOptions{
		Language: cfg.Language,
		OpenAI: ocr.OpenAIOptions{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
		},
	})
	if err != nil {
		return err
	}

	var opts []ocr.ClientOption
	if cfg.Preprocess {
		opts = append(opts, ocr.WithPreprocessing(imaging.DefaultPreprocessOptions()))
	}
	client := ocr.NewClient(engine, opts...)

	ctx := context.Background()
	if timeout := cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if info, err := imaging.Describe(cfg.Image); err == nil {
		logger.Debug().
			Str("image", info.Path).
			Int("width", info.Width).
			Int("height", info.Height).
			Str("format", info.Format).
			Int64("bytes", info.FileSizeBytes).
			Msg("image described")
	}

	logger.Debug().
		Str("engine", engine.Name()).
		Str("language", cfg.Language).
		Str("image", cfg.Image).
		Msg("starting extraction")

	result, err := client.ExtractText(ctx, cfg.Image)
	if err != nil {
		return err
	}

	logger.Info().
		Str("engine", engine.Name()).
		Float64("confidence", result.Confidence).
		Int("chars", len(result.Text)).
		Msg("extraction complete")

	fmt.Println(result.Text)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "textgrab - extract text from an image")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage: textgrab [options] [image-path]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Environment variables:")
	fmt.Fprintln(os.Stderr, "  TEXTGRAB_IMAGE             image path (overrides config file)")
	fmt.Fprintln(os.Stderr, "  TEXTGRAB_LANGUAGE          Tesseract language code (default eng)")
	fmt.Fprintln(os.Stderr, "  TEXTGRAB_ENGINE            recognition engine: tesseract, openai")
	fmt.Fprintln(os.Stderr, "  TEXTGRAB_TIMEOUT_SECONDS   per-extraction deadline")
	fmt.Fprintln(os.Stderr, "  TEXTGRAB_LOG_LEVEL=debug   enable debug logging")
	fmt.Fprintln(os.Stderr, "  OPENAI_API_KEY             API key for the openai engine")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Extracted text is written to stdout; diagnostics go to stderr.")
}
