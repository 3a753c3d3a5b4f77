package imageprocessor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"
	"time"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Outcome describes what Compress did with the input.
type Outcome string

const (
	OutcomeSkipped    Outcome = "skipped"    // below threshold
	OutcomeCompressed Outcome = "compressed" // decoded, scaled, re-encoded
	OutcomeTimeout    Outcome = "timeout"    // watchdog or ctx fired, original returned
	OutcomeFallback   Outcome = "fallback"   // decode/encode failed, original returned
)

// Options for the upload compressor.
type Options struct {
	Threshold    int64         // inputs smaller than this are returned unchanged
	MaxDimension int           // neither side exceeds this after scaling
	Quality      int           // JPEG quality (1-100)
	Timeout      time.Duration // watchdog
}

func DefaultOptions() Options {
	return Options{
		Threshold:    1024 * 1024,
		MaxDimension: 1024,
		Quality:      70,
		Timeout:      3 * time.Second,
	}
}

// Result of a Compress call. Data is never nil for non-empty input.
type Result struct {
	Data        []byte
	ContentType string
	Compressed  bool
	Width       int
	Height      int
	Outcome     Outcome
}

type decodeFunc func(r io.Reader) (image.Image, string, error)

// Compressor shrinks large images before upload.
type Compressor struct {
	opts   Options
	decode decodeFunc
}

func NewCompressor(opts Options) *Compressor {
	def := DefaultOptions()
	if opts.Threshold <= 0 {
		opts.Threshold = def.Threshold
	}
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = def.MaxDimension
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = def.Quality
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	return &Compressor{opts: opts, decode: image.Decode}
}

func (c *Compressor) Options() Options {
	return c.opts
}

// Compress never returns an error and never blocks past the watchdog or ctx:
// every failure path yields the original bytes.
func (c *Compressor) Compress(ctx context.Context, data []byte, contentType string) Result {
	original := Result{Data: data, ContentType: contentType}

	if int64(len(data)) < c.opts.Threshold {
		original.Outcome = OutcomeSkipped
		return original
	}

	type transformed struct {
		res Result
		err error
	}
	// буфер 1: зависшая горутина не блокируется на отправке после таймаута
	done := make(chan transformed, 1)
	go func() {
		res, err := c.transform(data)
		done <- transformed{res: res, err: err}
	}()

	timer := time.NewTimer(c.opts.Timeout)
	defer timer.Stop()

	select {
	case t := <-done:
		if t.err != nil {
			original.Outcome = OutcomeFallback
			return original
		}
		return t.res
	case <-timer.C:
		original.Outcome = OutcomeTimeout
		return original
	case <-ctx.Done():
		original.Outcome = OutcomeTimeout
		return original
	}
}

func (c *Compressor) transform(data []byte) (Result, error) {
	img, _, err := c.decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := ScaleDimensions(bounds.Dx(), bounds.Dy(), c.opts.MaxDimension)

	var out image.Image = img
	if w != bounds.Dx() || h != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: c.opts.Quality}); err != nil {
		return Result{}, fmt.Errorf("failed to encode JPEG: %w", err)
	}

	return Result{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Compressed:  true,
		Width:       w,
		Height:      h,
		Outcome:     OutcomeCompressed,
	}, nil
}

// ScaleDimensions fits w x h into a limit x limit box keeping the aspect
// ratio. Images that already fit are never upscaled.
func ScaleDimensions(w, h, limit int) (int, int) {
	if w <= 0 || h <= 0 || limit <= 0 {
		return w, h
	}
	if w <= limit && h <= limit {
		return w, h
	}

	if w >= h {
		nh := int(math.Round(float64(h) * float64(limit) / float64(w)))
		if nh < 1 {
			nh = 1
		}
		return limit, nh
	}
	nw := int(math.Round(float64(w) * float64(limit) / float64(h)))
	if nw < 1 {
		nw = 1
	}
	return nw, limit
}

// GetImageDimensions returns the dimensions of an image
func GetImageDimensions(reader io.Reader) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(reader)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
