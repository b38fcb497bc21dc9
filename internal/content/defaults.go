package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults is the baked-in site content served whenever the store has no
// edited version of a section.
type Defaults struct {
	About          About           `yaml:"about"`
	Projects       []Project       `yaml:"projects"`
	Experience     []Experience    `yaml:"experience"`
	Education      []Education     `yaml:"education"`
	Skills         []Skill         `yaml:"skills"`
	Certifications []Certification `yaml:"certifications"`
}

// LoadDefaults parses the embedded default content.
func LoadDefaults() (Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		return Defaults{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return d, nil
}

// MustDefaults is LoadDefaults for startup paths where a broken embedded
// file is unrecoverable anyway.
func MustDefaults() Defaults {
	d, err := LoadDefaults()
	if err != nil {
		panic(err)
	}
	return d
}
