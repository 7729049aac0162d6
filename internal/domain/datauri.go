package domain

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidDataURI is returned for image references that are not base64 data URIs.
var ErrInvalidDataURI = errors.New("image is not a base64 data URI")

// DecodeDataURI splits "data:<mime>;base64,<payload>" into its MIME type and bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return mimeType, data, nil
}

// FileExtension suggests an extension for a data URI MIME type.
func FileExtension(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case PlaceholderMimeType:
		return ".svg"
	default:
		return ".jpg"
	}
}
