package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// PreprocessOptions controls the enhancement pipeline applied before OCR.
type PreprocessOptions struct {
	// MaxDimension caps the longer image side in pixels. Images larger than
	// this are downscaled with Lanczos resampling; smaller images are left
	// untouched. Zero disables the cap.
	MaxDimension int `json:"max_dimension"`

	// Contrast is the contrast adjustment passed to the enhancement step.
	// Positive values increase contrast; zero leaves it unchanged.
	Contrast float64 `json:"contrast"`

	// Binarize converts the result to a two-level black/white image using an
	// Otsu threshold over perceptual luminance. Helps with low-contrast
	// scans; can hurt photos with uneven lighting.
	Binarize bool `json:"binarize"`
}

// DefaultPreprocessOptions returns the pipeline settings used by the CLI.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		MaxDimension: 2000,
		Contrast:     0.15,
		Binarize:     false,
	}
}

// Preprocess enhances an image for text recognition.
//
// The pipeline mirrors common scanner cleanup: downscale oversized inputs,
// convert to grayscale, stretch contrast, and sharpen text edges. With
// Binarize set, the output is additionally thresholded to pure black/white.
//
// The input image is never modified; every step allocates a new image.
func Preprocess(img image.Image, opts PreprocessOptions) image.Image {
	out := img

	if opts.MaxDimension > 0 {
		bounds := out.Bounds()
		if bounds.Dx() > opts.MaxDimension || bounds.Dy() > opts.MaxDimension {
			out = imaging.Fit(out, opts.MaxDimension, opts.MaxDimension, imaging.Lanczos)
		}
	}

	out = imaging.Grayscale(out)

	if opts.Contrast != 0 {
		out = adjust.Contrast(out, opts.Contrast)
	}

	out = effect.Sharpen(out)

	if opts.Binarize {
		out = Binarize(out)
	}

	return out
}

// Binarize converts an image to a two-level grayscale image using Otsu's
// method over perceptual (CIE Lab) luminance.
//
// Pixels at or above the computed threshold become white (255); pixels below
// become black (0). The returned image is always an *image.Gray.
func Binarize(img image.Image) *image.Gray {
	bounds := img.Bounds()
	lum := make([]uint8, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			lum = append(lum, luminance(img.At(x, y)))
		}
	}

	threshold := otsuThreshold(lum)

	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	i := 0
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			v := uint8(0)
			if lum[i] >= threshold {
				v = 255
			}
			out.SetGray(x, y, color.Gray{Y: v})
			i++
		}
	}

	return out
}

// luminance returns the perceptual lightness of a color scaled to 0-255.
func luminance(c color.Color) uint8 {
	col, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent pixel; treat as white background.
		return 255
	}
	l, _, _ := col.Lab()
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	return uint8(l * 255)
}

// otsuThreshold computes the threshold that minimizes intra-class variance
// over an 8-bit luminance histogram.
func otsuThreshold(lum []uint8) uint8 {
	if len(lum) == 0 {
		return 128
	}

	var hist [256]int
	for _, v := range lum {
		hist[v]++
	}

	total := len(lum)
	var sum float64
	for i, count := range hist {
		sum += float64(i) * float64(count)
	}

	var sumB, wB float64
	var maxVariance float64
	threshold := 128

	for i := 0; i < 256; i++ {
		wB += float64(hist[i])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(hist[i])

		meanB := sumB / wB
		meanF := (sum - sumB) / wF
		variance := wB * wF * (meanB - meanF) * (meanB - meanF)
		if variance > maxVariance {
			maxVariance = variance
			threshold = i
		}
	}

	return uint8(threshold)
}

// SaveTemp saves an image to a temporary PNG file and returns its path.
//
// This prepares in-memory images for external tools that require file paths
// (like Tesseract). The file is created in the system's temp directory with
// the format <prefix>-<pid>.png.
//
// The caller is responsible for deleting the file with os.Remove after use.
func SaveTemp(img image.Image, prefix string) (string, error) {
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%d.png", prefix, os.Getpid()))

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", err
	}

	return tmpPath, nil
}
