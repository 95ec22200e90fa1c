package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"

	transcribePrompt = "Transcribe all text visible in this image exactly as it appears. " +
		"Preserve line breaks. Return only the transcribed text with no commentary. " +
		"If the image contains no readable text, return an empty response."
)

// OpenAIOptions configures the OpenAI vision engine.
type OpenAIOptions struct {
	// APIKey authenticates against the API. Required.
	APIKey string

	// BaseURL overrides the API endpoint, e.g. for proxies or compatible
	// servers. Empty uses the official endpoint.
	BaseURL string

	// Model is the vision-capable model to use. Empty defaults to
	// "gpt-4o-mini".
	Model string
}

// OpenAIEngine recognizes text by sending the image to a vision-capable
// chat-completion model and asking for a verbatim transcription.
//
// # Confidence
//
// The API reports no recognition confidence, so the score is a heuristic
// derived from the shape of the transcription (empty, printable ratio,
// presence of letters or digits). It is comparable across calls to this
// engine but not to Tesseract's word-level confidence.
//
// # Determinism
//
// Model output may vary between calls on the same input. Callers that need
// reproducible text should use the tesseract engine.
type OpenAIEngine struct {
	client *openai.Client
	model  string
}

// NewOpenAIEngine constructs the vision engine from options.
//
// Returns an error when the API key is missing; there is no anonymous access.
func NewOpenAIEngine(opts OpenAIOptions) (*OpenAIEngine, error) {
	if opts.APIKey == "" {
		return nil, errors.New("openai engine requires an API key (set OPENAI_API_KEY)")
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIEngine{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Name returns "openai".
func (e *OpenAIEngine) Name() string { return EngineOpenAI }

// Recognize reads the image, submits it as a data URL, and returns the
// model's transcription.
func (e *OpenAIEngine) Recognize(ctx context.Context, imagePath string) (TextResult, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return TextResult{}, fmt.Errorf("failed to read image: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an OCR engine. You transcribe text from images verbatim.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: transcribePrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL(imagePath, data),
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
		Temperature: 0,
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return TextResult{}, fmt.Errorf("vision request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return TextResult{}, errors.New("vision response contained no choices")
	}

	text := resp.Choices[0].Message.Content
	return TextResult{
		Text:       text,
		Confidence: scoreTranscription(text),
	}, nil
}

// dataURL encodes image bytes as a base64 data URL with a content type
// guessed from the file extension.
func dataURL(path string, data []byte) string {
	mime := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".gif":
		mime = "image/gif"
	case ".webp":
		mime = "image/webp"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// scoreTranscription assigns a heuristic confidence to a model transcription.
//
// Score breakdown (max 0.9, never 1.0 since the model reports no real
// confidence):
//
//	0.50 — non-empty transcription
//	0.25 — at least 95% printable characters
//	0.15 — contains at least one letter or digit
func scoreTranscription(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	score := 0.5

	printable := 0
	hasAlnum := false
	total := 0
	for _, r := range trimmed {
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			hasAlnum = true
		}
	}

	if float64(printable)/float64(total) >= 0.95 {
		score += 0.25
	}
	if hasAlnum {
		score += 0.15
	}

	return clampConfidence(score)
}
