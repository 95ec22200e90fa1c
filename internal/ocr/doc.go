// Package ocr provides text extraction from images over pluggable
// recognition engines.
//
// The package centers on two pieces: the Engine interface, which abstracts
// an external recognition backend behind a single "image path in, text out"
// call, and the Client, which validates inputs, optionally preprocesses the
// image, and delegates to an Engine.
//
// # Engines
//
// Two engines are provided:
//
//   - tesseract: local recognition through the gosseract bindings. Requires
//     Tesseract and the relevant language data installed on the system
//     (Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng;
//     macOS: brew install tesseract).
//   - openai: remote recognition by a vision-capable chat model. Requires an
//     API key.
//
// NewEngine selects one by name; the Client works with either.
//
// # Confidence
//
// Every extraction returns a confidence in [0, 1], but the meaning differs
// per engine: Tesseract reports measured word-level confidence, while the
// openai engine derives a heuristic score because the API reports none.
// Scores are comparable within an engine, not across engines.
//
// # Error Handling
//
// All failures (empty or unreadable paths, missing language data, engine
// faults) surface as wrapped errors in a single undifferentiated category.
// Callers are expected to report the message and stop; there are no
// structured error codes and no retries.
package ocr
