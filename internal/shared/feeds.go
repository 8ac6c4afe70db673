package shared

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/domain"
)

// defaultFeeds is the compiled-in registry, used when no feeds file is
// configured. Disabled entries are kept so re-enabling a source is a
// one-line change.
var defaultFeeds = []domain.FeedSource{
	{Name: "miralbo", Endpoint: "https://mifrfrede.mfrpro.com/inmuebles/xml/56b76456fab7c", Format: "xml", Enabled: true},
	{Name: "redsp", Endpoint: "", Format: "xml", Enabled: false},
}

type feedsFile struct {
	Feeds []domain.FeedSource `yaml:"feeds"`
}

// LoadFeeds returns the feed registry: the YAML file at path when given,
// otherwise the built-in defaults.
func LoadFeeds(path string) ([]domain.FeedSource, error) {
	if path == "" {
		return defaultFeeds, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds file: %w", err)
	}
	var f feedsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse feeds file: %w", err)
	}
	if len(f.Feeds) == 0 {
		return nil, fmt.Errorf("feeds file %s defines no feeds", path)
	}
	for i, src := range f.Feeds {
		if src.Name == "" {
			return nil, fmt.Errorf("feeds file %s: feed %d has no name", path, i)
		}
		if src.Format != "xml" && src.Format != "json" {
			return nil, fmt.Errorf("feed %q: unsupported format %q", src.Name, src.Format)
		}
	}
	return f.Feeds, nil
}

// EnabledFeeds filters the registry down to fetchable sources.
func EnabledFeeds(srcs []domain.FeedSource) []domain.FeedSource {
	out := make([]domain.FeedSource, 0, len(srcs))
	for _, s := range srcs {
		if s.Enabled && s.Endpoint != "" {
			out = append(out, s)
		}
	}
	return out
}
