package dbus

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	godbus "github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// imageDataHint builds the wire-level (iiibiiay) struct for a solid-color
// image.
func imageDataHint(width, height int, hasAlpha bool) []any {
	channels := 3
	if hasAlpha {
		channels = 4
	}
	rowstride := width * channels

	data := make([]byte, height*rowstride)
	for i := 0; i < len(data); i += channels {
		data[i] = 200
		data[i+1] = 100
		data[i+2] = 50
		if hasAlpha {
			data[i+3] = 255
		}
	}
	return []any{
		int32(width), int32(height), int32(rowstride),
		hasAlpha, int32(8), int32(channels), data,
	}
}

func TestEncodeImageData(t *testing.T) {
	encoded := encodeImageData(imageDataHint(4, 3, true))
	require.NotNil(t, encoded)

	img, err := png.Decode(bytes.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(200), r>>8)
	assert.Equal(t, uint32(100), g>>8)
	assert.Equal(t, uint32(50), b>>8)
}

func TestEncodeImageDataWithoutAlpha(t *testing.T) {
	encoded := encodeImageData(imageDataHint(2, 2, false))
	require.NotNil(t, encoded)

	img, err := png.Decode(bytes.NewReader(encoded))
	require.NoError(t, err)

	_, _, _, a := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(255), a>>8)
}

func TestEncodeImageDataMalformed(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"not a struct", "bogus"},
		{"wrong field count", []any{int32(1), int32(1)}},
		{"zero dimensions", []any{int32(0), int32(0), int32(0), false, int32(8), int32(3), []byte{}}},
		{"truncated data", []any{int32(10), int32(10), int32(30), false, int32(8), int32(3), []byte{1, 2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, encodeImageData(tt.value))
		})
	}
}

func TestParseIconFromAppIconPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")

	var buf bytes.Buffer
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))

	n := &Notification{AppIcon: path}
	assert.Equal(t, buf.Bytes(), ParseIcon(n))
}

func TestParseIconPrefersImageData(t *testing.T) {
	n := &Notification{
		AppIcon: "/nonexistent/icon.png",
		Hints: map[string]godbus.Variant{
			"image-data": godbus.MakeVariant(imageDataHint(2, 2, true)),
		},
	}

	payload := ParseIcon(n)
	require.NotNil(t, payload)
	_, err := png.Decode(bytes.NewReader(payload))
	assert.NoError(t, err)
}

func TestParseIconNamedIconIgnored(t *testing.T) {
	n := &Notification{AppIcon: "dialog-information"}
	assert.Nil(t, ParseIcon(n))
}
