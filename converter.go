package llmfeeder

// Converter converts a content tree to Markdown.
type Converter interface {
	// Convert transforms content into Markdown. The content should already
	// be sanitized. Settings select optional rules (tables, images).
	Convert(content *Content, settings Settings) (string, error)
}

// MaxConvertSize is the serialized HTML size above which a failed
// conversion is retried on a truncated prefix of this many characters.
const MaxConvertSize = 100000

// TruncationNote is appended to Markdown produced from a truncated prefix.
const TruncationNote = "\n\n---\n*Note: Content was truncated due to size limitations.*"
