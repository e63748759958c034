package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 16 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompressImage(t *testing.T) {
	t.Run("Should downscale a large image to the max edge", func(t *testing.T) {
		data, contentType, err := CompressImage(encodePNG(t, 1024, 768))
		assert.NoError(t, err)
		assert.Equal(t, "image/jpeg", contentType)

		out, err := jpeg.Decode(bytes.NewReader(data))
		assert.NoError(t, err)
		bounds := out.Bounds()
		assert.Equal(t, 512, bounds.Dx())
		assert.Equal(t, 384, bounds.Dy())
	})

	t.Run("Should keep small images at their original size", func(t *testing.T) {
		data, contentType, err := CompressImage(encodePNG(t, 100, 80))
		assert.NoError(t, err)
		assert.Equal(t, "image/jpeg", contentType)

		out, err := jpeg.Decode(bytes.NewReader(data))
		assert.NoError(t, err)
		assert.Equal(t, 100, out.Bounds().Dx())
		assert.Equal(t, 80, out.Bounds().Dy())
	})

	t.Run("Should reject data that is not an image", func(t *testing.T) {
		_, _, err := CompressImage([]byte("definitely not an image"))
		assert.Error(t, err)
	})
}
