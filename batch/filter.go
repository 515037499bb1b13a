package batch

import "strings"

// internalURLPrefixes identifies browser-internal pages that cannot be
// converted.
var internalURLPrefixes = []string{
	"chrome://",
	"edge://",
	"about:",
	"chrome-extension://",
	"moz-extension://",
}

// FilterTabURLs returns urls without empty entries and browser-internal
// pages, preserving order.
func FilterTabURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" || isInternalURL(u) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func isInternalURL(u string) bool {
	for _, prefix := range internalURLPrefixes {
		if strings.HasPrefix(u, prefix) {
			return true
		}
	}
	return false
}
