package ocr

import (
	"context"
	"fmt"
)

// TextResult is the outcome of a text-extraction call: the recognized text
// and the engine's confidence in it.
type TextResult struct {
	// Text is the recognized content. May be empty if the image contains no
	// readable text.
	Text string `json:"text"`

	// Confidence is the recognition confidence in the range [0, 1], where 1
	// means the engine is certain. How the score is derived depends on the
	// engine; see the engine documentation.
	Confidence float64 `json:"confidence"`
}

// Engine is the contract for an external text-recognition backend: one image
// path in, one result out.
//
// Recognize must honor context cancellation where the backend allows it and
// return a wrapped error when the path is unreadable or recognition fails.
type Engine interface {
	// Name returns a short identifier for the engine (e.g., "tesseract").
	Name() string

	// Recognize extracts text from the image at the given path.
	Recognize(ctx context.Context, imagePath string) (TextResult, error)
}

// Engine names accepted by NewEngine.
const (
	EngineTesseract = "tesseract"
	EngineOpenAI    = "openai"
)

// EngineOptions carries the configuration an engine needs at construction.
type EngineOptions struct {
	// Language is the recognition language hint (Tesseract language code,
	// e.g. "eng", "jpn"). Empty selects the engine default.
	Language string

	// OpenAI configures the OpenAI vision engine. Ignored by other engines.
	OpenAI OpenAIOptions
}

// NewEngine constructs the engine selected by name.
//
// Supported names are "tesseract" (the default when name is empty) and
// "openai". An unrecognized name is an error rather than a silent fallback.
func NewEngine(name string, opts EngineOptions) (Engine, error) {
	switch name {
	case "", EngineTesseract:
		return NewTesseractEngine(opts.Language), nil
	case EngineOpenAI:
		return NewOpenAIEngine(opts.OpenAI)
	default:
		return nil, fmt.Errorf("unknown OCR engine %q", name)
	}
}

// clampConfidence forces a confidence score into the [0, 1] range.
func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
