// Package imaging handles loading, describing, and preprocessing images for
// text extraction.
//
// Load and Describe turn a file path into a decoded image and an Image
// descriptor (path, pixel dimensions, format, file size). Preprocess runs a
// scanner-style cleanup pipeline (downscale, grayscale, contrast, sharpen,
// optional Otsu binarization) tuned for OCR accuracy. SaveTemp stages
// in-memory images as temporary PNG files for engines that only accept file
// paths.
//
// Supported input formats: PNG, JPEG, GIF, TIFF.
package imaging
