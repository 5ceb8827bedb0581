package static

import (
	"fmt"
	"regexp"

	"github.com/aretw0/parley/pkg/domain"
)

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// Interpolate replaces {{key}} with the session value for key.
// Missing keys render as an empty string.
func Interpolate(text string, s *domain.Session) string {
	if s == nil {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		v, ok := s.Lookup(key)
		if !ok || v == nil {
			return ""
		}
		return fmt.Sprint(v)
	})
}
