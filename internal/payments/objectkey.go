package payments

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const tokenLength = 12

// NewObjectKey returns proof_<unix millis>_<random token>.<ext>. The extension
// is taken from filename and lowercased; names without one yield a key with
// no trailing dot. Uniqueness relies on time and randomness only.
func NewObjectKey(now time.Time, filename string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
	key := fmt.Sprintf("proof_%d_%s", now.UnixMilli(), token)

	if ext := extension(filename); ext != "" {
		key += "." + ext
	}
	return key
}

func extension(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filepath.Base(filename)), "."))
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
