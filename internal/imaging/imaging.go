// Package imaging handles the binary image round trip: raw bytes plus a
// content type go in at write time, and an inline data URI projection comes
// back out at read time, byte-for-byte identical.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// supportedTypes are the image content types accepted for post and profile
// uploads.
var supportedTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},
}

// Sniff determines the content type of raw image bytes. The declared type
// from the upload is ignored; the payload decides. Returns an error for
// unsupported or non-image payloads.
func Sniff(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image payload")
	}
	ct := http.DetectContentType(data)
	if _, ok := supportedTypes[ct]; !ok {
		return "", fmt.Errorf("unsupported image type %q", ct)
	}
	return ct, nil
}

// Validate sniffs the content type and additionally checks that the payload
// decodes as an image of that type.
func Validate(data []byte) (string, error) {
	ct, err := Sniff(data)
	if err != nil {
		return "", err
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("corrupt image payload: %w", err)
	}
	return ct, nil
}

// DataURI returns the client-displayable inline representation of the image,
// e.g. "data:image/png;base64,...". Returns "" when there is no image.
func DataURI(contentType string, data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI decodes an inline representation back to content type and raw
// bytes. The inverse of DataURI.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI")
	}
	ct, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("missing base64 payload")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode image payload: %w", err)
	}
	return ct, data, nil
}
