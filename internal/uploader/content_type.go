package uploader

import (
	"errors"
	"strings"
)

var errMissingVariant = errors.New("signing response missing a variant")

// contentTypeForExt maps a source file extension to the content type
// declared for the original's signed write.
func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
