package dbus

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
)

// ParseIcon resolves a notification's image into encoded bytes a pixbuf
// loader can decode. Raw image-data hints are re-encoded as PNG; an
// absolute AppIcon path is read verbatim. Returns nil when there is no
// usable image.
func ParseIcon(n *Notification) []byte {
	if key := n.ImageDataKey(); key != "" {
		if data := encodeImageData(n.Hints[key].Value()); data != nil {
			return data
		}
	}
	if strings.HasPrefix(n.AppIcon, "/") {
		if data, err := os.ReadFile(n.AppIcon); err == nil {
			return data
		}
	}
	return nil
}

// encodeImageData converts the wire-level image struct (iiibiiay: width,
// height, rowstride, has_alpha, bits_per_sample, channels, data) to PNG.
// Malformed structs return nil.
func encodeImageData(value any) []byte {
	fields, ok := value.([]any)
	if !ok || len(fields) != 7 {
		return nil
	}

	width, ok1 := fields[0].(int32)
	height, ok2 := fields[1].(int32)
	rowstride, ok3 := fields[2].(int32)
	hasAlpha, ok4 := fields[3].(bool)
	data, ok5 := fields[6].([]byte)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return nil
	}
	if width <= 0 || height <= 0 || rowstride <= 0 {
		return nil
	}

	channels := 3
	if hasAlpha {
		channels = 4
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	for y := 0; y < int(height); y++ {
		row := int(rowstride) * y
		for x := 0; x < int(width); x++ {
			px := row + x*channels
			if px+channels > len(data) {
				return nil
			}
			a := uint8(255)
			if hasAlpha {
				a = data[px+3]
			}
			img.SetNRGBA(x, y, color.NRGBA{R: data[px], G: data[px+1], B: data[px+2], A: a})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
