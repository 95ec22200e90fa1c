package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/textgrab/textgrab/internal/imaging"
)

// Client exposes the single text-extraction capability over a pluggable
// recognition engine.
//
// A Client validates the input path, optionally runs the image through the
// preprocessing pipeline, and delegates recognition to its Engine. Results
// are transient value objects; the Client keeps no state between calls.
type Client struct {
	engine     Engine
	preprocess bool
	prepOpts   imaging.PreprocessOptions
}

// ClientOption mutates a Client at construction time.
type ClientOption func(*Client)

// WithPreprocessing enables the image enhancement pipeline before
// recognition.
func WithPreprocessing(opts imaging.PreprocessOptions) ClientOption {
	return func(c *Client) {
		c.preprocess = true
		c.prepOpts = opts
	}
}

// NewClient constructs a Client around the given engine.
func NewClient(engine Engine, opts ...ClientOption) *Client {
	c := &Client{engine: engine}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Engine returns the recognition engine the client delegates to.
func (c *Client) Engine() Engine { return c.engine }

// ExtractText extracts text from the image at the given path.
//
// The path must reference a readable, decodable image. One image produces at
// most one TextResult per call. The returned text is whitespace-trimmed and
// the confidence is clamped to [0, 1].
//
// All failure modes (empty path, unreadable file, undecodable image, engine
// failure) surface as a single undifferentiated wrapped error; there is no
// structured error taxonomy.
//
// Determinism is engine-dependent: Tesseract on an unchanged image yields
// the same text, model-backed engines may not.
func (c *Client) ExtractText(ctx context.Context, path string) (TextResult, error) {
	if strings.TrimSpace(path) == "" {
		return TextResult{}, errors.New("image path is empty")
	}

	if err := ctx.Err(); err != nil {
		return TextResult{}, err
	}

	// Decode up front so unreadable inputs fail with a clear error instead
	// of an engine-specific one.
	img, err := imaging.Load(path)
	if err != nil {
		return TextResult{}, fmt.Errorf("cannot read image %q: %w", path, err)
	}

	enginePath := path
	if c.preprocess {
		processed := imaging.Preprocess(img, c.prepOpts)
		tmpPath, err := imaging.SaveTemp(processed, "textgrab-ocr")
		if err != nil {
			return TextResult{}, fmt.Errorf("failed to stage preprocessed image: %w", err)
		}
		defer os.Remove(tmpPath)
		enginePath = tmpPath
	}

	result, err := c.engine.Recognize(ctx, enginePath)
	if err != nil {
		return TextResult{}, fmt.Errorf("extract text: %w", err)
	}

	result.Text = strings.TrimSpace(result.Text)
	result.Confidence = clampConfidence(result.Confidence)
	return result, nil
}
