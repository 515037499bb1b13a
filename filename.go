package llmfeeder

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxFilenameLength bounds the base name produced by SanitizeFilename.
const MaxFilenameLength = 100

var (
	unsafeFilenameRe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	separatorRunRe   = regexp.MustCompile(`[\s.]+`)
	underscoreRunRe  = regexp.MustCompile(`_+`)
)

// SanitizeFilename turns a page title into a safe file base name. Reserved
// and control characters are removed, whitespace and dots become single
// underscores, and the result is trimmed to MaxFilenameLength characters.
// Returns "untitled" when nothing usable remains.
func SanitizeFilename(title string) string {
	name := unsafeFilenameRe.ReplaceAllString(title, "")
	name = separatorRunRe.ReplaceAllString(name, "_")
	name = underscoreRunRe.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if r := []rune(name); len(r) > MaxFilenameLength {
		name = string(r[:MaxFilenameLength])
	}
	name = strings.TrimRight(name, "_")
	if name == "" {
		return "untitled"
	}
	return name
}

// FilenameSet hands out unique file base names. The zero value is ready to use.
type FilenameSet struct {
	used map[string]struct{}
}

// Unique returns the sanitized name for title, suffixed with _1, _2, ...
// when an earlier call already returned it.
func (s *FilenameSet) Unique(title string) string {
	if s.used == nil {
		s.used = make(map[string]struct{})
	}
	base := SanitizeFilename(title)
	name := base
	for n := 1; ; n++ {
		if _, ok := s.used[name]; !ok {
			break
		}
		name = base + "_" + strconv.Itoa(n)
	}
	s.used[name] = struct{}{}
	return name
}
