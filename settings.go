package llmfeeder

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
)

// ContentScope selects which portion of a page feeds the conversion.
type ContentScope string

// Supported content scopes.
const (
	ScopeFullPage    ContentScope = "fullPage"
	ScopeSelection   ContentScope = "selection"
	ScopeMainContent ContentScope = "mainContent"
)

// Valid reports whether s is one of the known scopes.
func (s ContentScope) Valid() bool {
	switch s {
	case ScopeFullPage, ScopeSelection, ScopeMainContent:
		return true
	}
	return false
}

// DefaultMetadataFormat is the metadata template used when none is configured.
const DefaultMetadataFormat = "---\nSource: [{title}]({url})"

// Settings configures a single conversion. Settings are supplied fresh per
// call and never mutated by the pipeline.
type Settings struct {
	ContentScope        ContentScope `json:"contentScope"`
	PreserveTables      bool         `json:"preserveTables"`
	IncludeImages       bool         `json:"includeImages"`
	IncludeTitle        bool         `json:"includeTitle"`
	IncludeMetadata     bool         `json:"includeMetadata"`
	MetadataFormat      string       `json:"metadataFormat"`
	DebugMode           bool         `json:"debugMode"`
	PreserveIframeLinks bool         `json:"preserveIframeLinks"`
}

// DefaultSettings returns the settings used when the caller supplies none.
func DefaultSettings() Settings {
	return Settings{
		ContentScope:        ScopeMainContent,
		PreserveTables:      true,
		IncludeImages:       false,
		IncludeTitle:        true,
		IncludeMetadata:     false,
		MetadataFormat:      DefaultMetadataFormat,
		PreserveIframeLinks: true,
	}
}

// UnmarshalJSON decodes settings on top of DefaultSettings so that absent
// fields keep their defaults (notably preserveIframeLinks, which is true
// unless explicitly disabled).
func (s *Settings) UnmarshalJSON(data []byte) error {
	type settings Settings
	v := settings(DefaultSettings())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Settings(v)
	return nil
}

// Scope returns the effective content scope. Unknown or empty scopes fall
// back to main content.
func (s Settings) Scope() ContentScope {
	if s.ContentScope.Valid() {
		return s.ContentScope
	}
	return ScopeMainContent
}

// SettingKeys returns the recognized setting names in sorted order.
func SettingKeys() []string {
	keys := []string{
		"contentScope",
		"preserveTables",
		"includeImages",
		"includeTitle",
		"includeMetadata",
		"metadataFormat",
		"debugMode",
		"preserveIframeLinks",
	}
	sort.Strings(keys)
	return keys
}

// Values returns every setting in its string form, keyed by JSON name.
// Each value round-trips through Set.
func (s Settings) Values() map[string]string {
	return map[string]string{
		"contentScope":        string(s.ContentScope),
		"preserveTables":      strconv.FormatBool(s.PreserveTables),
		"includeImages":       strconv.FormatBool(s.IncludeImages),
		"includeTitle":        strconv.FormatBool(s.IncludeTitle),
		"includeMetadata":     strconv.FormatBool(s.IncludeMetadata),
		"metadataFormat":      s.MetadataFormat,
		"debugMode":           strconv.FormatBool(s.DebugMode),
		"preserveIframeLinks": strconv.FormatBool(s.PreserveIframeLinks),
	}
}

// Set assigns a single setting from its string form. Keys use the JSON names.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "contentScope":
		scope := ContentScope(value)
		if !scope.Valid() {
			return Errorf(EINVALID, "unknown content scope %q", value)
		}
		s.ContentScope = scope
		return nil
	case "metadataFormat":
		s.MetadataFormat = value
		return nil
	}

	var target *bool
	switch key {
	case "preserveTables":
		target = &s.PreserveTables
	case "includeImages":
		target = &s.IncludeImages
	case "includeTitle":
		target = &s.IncludeTitle
	case "includeMetadata":
		target = &s.IncludeMetadata
	case "debugMode":
		target = &s.DebugMode
	case "preserveIframeLinks":
		target = &s.PreserveIframeLinks
	default:
		return Errorf(EINVALID, "unknown setting %q", key)
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return Errorf(EINVALID, "setting %q expects a boolean, got %q", key, value)
	}
	*target = b
	return nil
}

// SettingsStore persists default settings between runs. It is the storage
// half of the platform bridge.
type SettingsStore interface {
	// LoadSettings returns the stored settings, or DefaultSettings when
	// nothing has been stored yet.
	LoadSettings(ctx context.Context) (Settings, error)

	// SaveSettings replaces the stored settings.
	SaveSettings(ctx context.Context, s Settings) error
}
