// Package keys derives immutable object keys for uploaded photo variants.
// Keys are write-once: once a key is handed out it is never reused or
// rewritten, so a key uniquely names one object forever.
package keys

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Jophkins/lastshoot/internal/models"
)

// derivativeExt is the extension of every re-encoded variant. Preview and
// thumb are always transcoded by the variant generator, so their keys never
// depend on the source file's extension.
const derivativeExt = "jpg"

// Build returns "{variant}/{batchID}.{ext}". batchID is the random identity
// minted per source file; concurrent files therefore never collide.
func Build(variant models.Variant, batchID, ext string) string {
	finalExt := derivativeExt
	if variant == models.VariantOriginal {
		if ext == "" {
			ext = derivativeExt
		}
		finalExt = ext
	}
	return fmt.Sprintf("%s/%s.%s", variant, batchID, finalExt)
}

// ExtFromFilename extracts a lowercase extension without the leading dot.
// Files with no extension fall back to the derivative extension.
func ExtFromFilename(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return derivativeExt
	}
	return ext
}

// IsPrivate reports whether a key must stay non-publicly-readable.
// Full-resolution originals may carry richer embedded metadata than the
// app ever persists, so they are never publicly fetchable.
func IsPrivate(key string) bool {
	return strings.HasPrefix(key, string(models.VariantOriginal)+"/")
}
