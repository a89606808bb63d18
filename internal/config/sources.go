package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FeedSource is one upstream feed entry from the sources file.
type FeedSource struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"` // congress, federal_register, regulations_gov
	URL      string `yaml:"url,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

type sourcesFile struct {
	Sources []FeedSource `yaml:"sources"`
}

// DefaultFeedSources is the built-in upstream list, used when no
// sources file is configured.
var DefaultFeedSources = []FeedSource{
	{Name: "FR Documents", Source: "federal_register", URL: "https://www.federalregister.gov/documents/current.rss"},
	{Name: "Committee Schedule", Source: "congress", URL: "https://www.congress.gov/committee-schedule"},
	{Name: "Docket Documents", Source: "regulations_gov"},
}

// LoadFeedSources reads the YAML sources file. An empty path or a
// missing file yields the built-in list. Disabled entries are dropped.
func LoadFeedSources(path string) ([]FeedSource, error) {
	if path == "" {
		return enabledSources(DefaultFeedSources), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return enabledSources(DefaultFeedSources), nil
		}
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	if len(file.Sources) == 0 {
		return enabledSources(DefaultFeedSources), nil
	}
	return enabledSources(file.Sources), nil
}

func enabledSources(in []FeedSource) []FeedSource {
	out := make([]FeedSource, 0, len(in))
	for _, s := range in {
		if !s.Disabled {
			out = append(out, s)
		}
	}
	return out
}
