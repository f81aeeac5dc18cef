package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is an Engine backed by the Tesseract OCR library. A fresh client
// is created per call; gosseract clients are not safe for concurrent use.
type Tesseract struct {
	languages []string
}

// NewTesseract creates an engine recognizing the given languages
// (Tesseract codes, e.g. "eng", "hin"). Defaults to English.
func NewTesseract(languages ...string) *Tesseract {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Tesseract{languages: languages}
}

// Recognize runs OCR over the image and returns one fragment per detected
// text line.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode page image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages...); err != nil {
		return nil, fmt.Errorf("failed to set OCR languages: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to load page image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	fragments := make([]string, 0, len(boxes))
	for _, box := range boxes {
		if s := strings.TrimSpace(box.Word); s != "" {
			fragments = append(fragments, s)
		}
	}
	return fragments, nil
}
