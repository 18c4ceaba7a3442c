package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	AvatarSize    = 512
	MaxUploadSize = 5 << 20
	avatarQuality = 80

	// maxPixels caps the declared size of an upload before it is decoded.
	maxPixels = 40_000_000
	maxSide   = 10_000
)

var ErrUnsupportedImage = errors.New("unsupported image")

var allowedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"webp": true,
}

// EncodeAvatar decodes a JPEG, PNG or WebP image, scales it down to fit
// AvatarSize x AvatarSize and re-encodes it as WebP.
func EncodeAvatar(raw []byte) ([]byte, error) {
	if len(raw) == 0 || len(raw) > MaxUploadSize {
		return nil, ErrUnsupportedImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil || !allowedFormats[format] {
		return nil, ErrUnsupportedImage
	}
	if cfg.Width < 1 || cfg.Height < 1 ||
		cfg.Width > maxSide || cfg.Height > maxSide ||
		cfg.Width*cfg.Height > maxPixels {
		return nil, ErrUnsupportedImage
	}

	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil || !allowedFormats[format] {
		return nil, ErrUnsupportedImage
	}

	dst := fit(src, AvatarSize)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: avatarQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(src image.Image, limit int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return src
	}

	if w >= h {
		h = h * limit / w
		w = limit
	} else {
		w = w * limit / h
		h = limit
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
