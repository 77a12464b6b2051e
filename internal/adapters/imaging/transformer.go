// Package imaging provides the in-process transform capability: decode,
// scale, re-encode using the standard image codecs. Formats outside
// png/jpeg need the command transformer.
package imaging

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"

	"go.trai.ch/pict/internal/core/domain"
	"go.trai.ch/pict/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Transformer = (*Transformer)(nil)

// Transformer implements ports.Transformer with stdlib codecs.
type Transformer struct{}

// New creates the builtin Transformer.
func New() *Transformer {
	return &Transformer{}
}

// Transform decodes the source, scales it to the requested dimensions and
// re-encodes it in the requested format.
func (t *Transformer) Transform(_ context.Context, src []byte, opts domain.Options, cfg domain.ImageConfig) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to decode source image")
	}

	width, height := targetSize(img.Bounds(), opts)
	scaled := scale(img, width, height)

	format := opts.Format
	if format == "" {
		format = cfg.DefaultFormat
	}
	quality := opts.Quality
	if quality == 0 {
		quality = cfg.DefaultQuality
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, scaled)
	case "jpg", "jpeg", "":
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: clampQuality(quality)})
	default:
		return nil, zerr.With(zerr.New("unsupported output format"), "format", format)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to encode image"), "format", format)
	}
	return buf.Bytes(), nil
}

// targetSize resolves requested dimensions, preserving aspect ratio when
// only one is given and falling back to the source size when neither is.
func targetSize(bounds image.Rectangle, opts domain.Options) (int, int) {
	srcW, srcH := bounds.Dx(), bounds.Dy()
	w, h := opts.Width, opts.Height

	switch {
	case w <= 0 && h <= 0:
		return srcW, srcH
	case h <= 0:
		return w, max(1, srcH*w/srcW)
	case w <= 0:
		return max(1, srcW*h/srcH), h
	default:
		return w, h
	}
}

// scale resamples with nearest neighbor. Good enough for build-time
// thumbnails without pulling in a resampling dependency.
func scale(src image.Image, width, height int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcY := bounds.Min.Y + y*bounds.Dy()/height
		for x := 0; x < width; x++ {
			srcX := bounds.Min.X + x*bounds.Dx()/width
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}
	return dst
}

func clampQuality(q int) int {
	if q <= 0 {
		return jpeg.DefaultQuality
	}
	if q > 100 {
		return 100
	}
	return q
}
