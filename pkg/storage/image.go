package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"golang.org/x/image/draw"
)

// maxAvatarDim bounds the longest edge of an uploaded avatar.
const maxAvatarDim = 512

// CompressImage decodes an uploaded image, scales it down so its longest
// edge is at most maxAvatarDim, and re-encodes it as JPEG. Non-image data
// comes back with an error so callers can decide whether to store it as-is.
func CompressImage(data []byte) ([]byte, string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxAvatarDim || h > maxAvatarDim {
		if w > h {
			h = h * maxAvatarDim / w
			w = maxAvatarDim
		} else {
			w = w * maxAvatarDim / h
			h = maxAvatarDim
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "image/jpeg", nil
}
