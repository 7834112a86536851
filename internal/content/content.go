// Package content loads the studio's static data: the process timeline and
// the project previews shown in the carousel.
package content

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"corestudio/internal/domain"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Content is the static data rendered by the page.
type Content struct {
	Timeline []domain.TimelineEntry
	Projects []domain.Project
}

// Load decodes the embedded data files.
func Load() (*Content, error) {
	c := &Content{}
	if err := decode("data/timeline.yaml", &c.Timeline); err != nil {
		return nil, err
	}
	if err := decode("data/projects.yaml", &c.Projects); err != nil {
		return nil, err
	}
	return c, nil
}

func decode(path string, v any) error {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
