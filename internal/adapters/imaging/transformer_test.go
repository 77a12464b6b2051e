package imaging_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pict/internal/adapters/imaging"
	"go.trai.ch/pict/internal/core/domain"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255}) //nolint:gosec // Bounded by modulo
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTransformer_Resize(t *testing.T) {
	tr := imaging.New()
	src := encodePNG(t, 64, 32)

	out, err := tr.Transform(context.Background(), src, domain.Options{Width: 16, Height: 8, Format: "png"}, domain.ImageConfig{})
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 16, decoded.Bounds().Dx())
	assert.Equal(t, 8, decoded.Bounds().Dy())
}

func TestTransformer_AspectRatioFromWidth(t *testing.T) {
	tr := imaging.New()
	src := encodePNG(t, 100, 50)

	out, err := tr.Transform(context.Background(), src, domain.Options{Width: 10, Format: "png"}, domain.ImageConfig{})
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 10, decoded.Bounds().Dx())
	assert.Equal(t, 5, decoded.Bounds().Dy())
}

func TestTransformer_JPEGWithDefaultQuality(t *testing.T) {
	tr := imaging.New()
	src := encodePNG(t, 20, 20)

	cfg := domain.ImageConfig{DefaultQuality: 70, DefaultFormat: "jpeg"}
	out, err := tr.Transform(context.Background(), src, domain.Options{Width: 10}, cfg)
	require.NoError(t, err)

	_, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestTransformer_Failures(t *testing.T) {
	tr := imaging.New()

	_, err := tr.Transform(context.Background(), []byte("not an image"), domain.Options{Width: 10}, domain.ImageConfig{})
	require.Error(t, err)

	_, err = tr.Transform(context.Background(), encodePNG(t, 4, 4), domain.Options{Format: "webp"}, domain.ImageConfig{})
	require.Error(t, err)
}
