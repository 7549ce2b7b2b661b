// ABOUTME: Source model describing one named syndicated feed endpoint
// ABOUTME: Owned by configuration; the engine only reads it during a refresh cycle

package models

// Source is a named, URL-addressed feed endpoint. Disabled sources are kept in
// configuration but skipped by the aggregator.
type Source struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

// DisplayName returns the source name, falling back to the URL when unnamed.
func (s Source) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}
