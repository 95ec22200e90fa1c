package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine recognizes text with a local Tesseract installation via
// the gosseract bindings.
//
// Each Recognize call creates a fresh gosseract client and closes it when
// done, so the engine is safe for concurrent use.
//
// # Confidence
//
// Tesseract reports per-word confidence (0-100). The result confidence is
// the mean word confidence scaled to [0, 1]. When no words are detected the
// confidence is 0.
type TesseractEngine struct {
	language string

	// clientFactory is swappable for tests.
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed engine.
//
// language is a Tesseract language code (e.g., "eng", "jpn", "deu"); the
// corresponding trained data must be installed on the system. Empty defaults
// to "eng".
func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{
		language:      language,
		clientFactory: gosseract.NewClient,
	}
}

// Name returns "tesseract".
func (e *TesseractEngine) Name() string { return EngineTesseract }

// Recognize performs OCR on the image file at imagePath.
//
// Returns a wrapped error if the file cannot be read, the language data is
// missing, or Tesseract fails. Cancellation is checked before the engine is
// invoked; a single recognition is not interruptible once started.
func (e *TesseractEngine) Recognize(ctx context.Context, imagePath string) (TextResult, error) {
	if err := ctx.Err(); err != nil {
		return TextResult{}, err
	}

	client := e.clientFactory()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return TextResult{}, fmt.Errorf("failed to set image: %w", err)
	}

	if err := client.SetLanguage(e.language); err != nil {
		return TextResult{}, fmt.Errorf("failed to set language: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return TextResult{}, fmt.Errorf("OCR failed: %w", err)
	}

	return TextResult{
		Text:       text,
		Confidence: wordConfidence(client),
	}, nil
}

// wordConfidence computes the mean word-level confidence for the current
// recognition, scaled to [0, 1].
//
// If bounding box extraction fails (which can happen with some Tesseract
// configurations) or no words were found, it returns 0.
func wordConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return 0
	}

	var sum float64
	var count int
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		sum += float64(box.Confidence) / 100.0
		count++
	}

	if count == 0 {
		return 0
	}
	return clampConfidence(sum / float64(count))
}
