package domain

// Project is one entry of the projects carousel
type Project struct {
	ID            string         `yaml:"id"`
	Title         string         `yaml:"title"`
	Category      string         `yaml:"category"`
	Year          string         `yaml:"year"`
	Description   string         `yaml:"description"`
	CoverGradient string         `yaml:"cover_gradient"`
	Images        []ProjectImage `yaml:"images"`
}

// ProjectImage is a placeholder image inside a project preview
type ProjectImage struct {
	ID       string `yaml:"id"`
	Gradient string `yaml:"gradient"`
}

// TimelineEntry is one step of the studio's working process
type TimelineEntry struct {
	Step        string `yaml:"step"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}
