package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestToWebP_DownscalesLargeImage(t *testing.T) {
	src := makePNG(t, 400, 200)

	out, err := ToWebP(src, WebPOptions{MaxW: 100, MaxH: 100, Quality: 70})
	require.NoError(t, err)
	require.True(t, len(out) > 12)
	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, "WEBP", string(out[8:12]))

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestToWebP_RejectsGarbage(t *testing.T) {
	_, err := ToWebP([]byte("definitely not an image"), WebPOptions{})
	assert.Error(t, err)

	_, err = ToWebP(nil, WebPOptions{})
	assert.Error(t, err)
}

func TestIsConvertibleImage(t *testing.T) {
	assert.True(t, IsConvertibleImage("logo.bin", makePNG(t, 2, 2)))
	assert.True(t, IsConvertibleImage("foto.JPG", []byte("xx")))
	assert.False(t, IsConvertibleImage("proposal.pdf", []byte("%PDF-1.7")))
}

func TestGenerateUniqueFilename(t *testing.T) {
	a := GenerateUniqueFilename("/tenants/abc/", "My Logo (final).png")
	b := GenerateUniqueFilename("tenants/abc", "My Logo (final).png")

	assert.True(t, strings.HasPrefix(a, "tenants/abc/"))
	assert.True(t, strings.HasSuffix(a, "-My_Logo_final_.png"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, "proposal.webp", WebPName("proposal.png"))
}
