package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// ParseDataURI decodes a base64 data URI into its media type and payload.
func ParseDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	comma := strings.Index(uri, ",")
	if comma < 0 {
		return "", nil, fmt.Errorf("malformed data URI: no payload separator")
	}
	meta := uri[len("data:"):comma]
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("unsupported data URI encoding %q", meta)
	}
	mediaType := strings.TrimSuffix(meta, ";base64")
	payload, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI payload: %w", err)
	}
	return mediaType, payload, nil
}

// ImageSize probes the natural pixel dimensions of a PNG or JPEG payload
// without decoding the full image.
func ImageSize(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("probe image dimensions: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// FitBox scales (w, h) proportionally into (maxW, maxH). Images inside the
// box keep their natural size: never upscale, never exceed either limit.
func FitBox(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := 1.0
	if w*scale > maxW {
		scale = maxW / w
	}
	if h*scale > maxH {
		scale = maxH / h
	}
	if scale >= 1 {
		return w, h
	}
	return w * scale, h * scale
}
