// Package ocr recognizes text in rasterized PDF pages.
package ocr

import (
	"context"
	"image"
)

// Engine recognizes text in an image and returns the detected fragments in
// reading order.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) ([]string, error)
}
