package storage

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"inkubator_backend/internals/configs"
)

type WebPOptions struct {
	MaxW     int     // batas lebar (resize keep-aspect)
	MaxH     int     // batas tinggi
	Quality  float32 // 0..100
	Lossless bool
}

func DefaultWebPOptionsFromEnv() WebPOptions {
	return WebPOptions{
		MaxW:    configs.GetEnvInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:    configs.GetEnvInt("IMAGE_WEBP_MAX_H", 1600),
		Quality: float32(configs.GetEnvInt("IMAGE_WEBP_QUALITY", 80)),
	}
}

// IsConvertibleImage: jpeg/png di-encode ulang ke WebP, selain itu upload apa adanya.
func IsConvertibleImage(filename string, head []byte) bool {
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	if strings.Contains(ct, "jpeg") || strings.Contains(ct, "png") {
		return true
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// ToWebP decode (auto-orient EXIF), downscale bila perlu, lalu encode WebP.
func ToWebP(data []byte, opt WebPOptions) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	if (opt.MaxW > 0 && b.Dx() > opt.MaxW) || (opt.MaxH > 0 && b.Dy() > opt.MaxH) {
		img = imaging.Fit(img, orMax(opt.MaxW, b.Dx()), orMax(opt.MaxH, b.Dy()), imaging.CatmullRom)
	}

	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: opt.Lossless, Quality: q}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// WebPName mengganti ekstensi file menjadi .webp
func WebPName(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if base == "" {
		base = "image"
	}
	return base + ".webp"
}

func orMax(limit, actual int) int {
	if limit <= 0 {
		return actual
	}
	return limit
}
