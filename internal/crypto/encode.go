package crypto

import "encoding/base64"

// B64 returns URL-safe base64 of b. When limit is positive the result is cut
// to limit characters and suffixed with "..." for trace output.
func B64(b []byte, limit int) string {
	s := base64.URLEncoding.EncodeToString(b)
	if limit > 0 && len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
