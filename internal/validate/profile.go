// Package validate checks finished import sheets against an M3 metadata
// profile: which properties exist, which models they are available on, how
// many values they may carry, and whether URI-ranged properties actually
// hold URIs. Violations are collected across the whole sheet and reported
// together.
package validate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/exodus/pkg/exodus"
)

// DefaultProfileURL is where the current M3 profile is published.
const DefaultProfileURL = "https://raw.githubusercontent.com/utkdigitalinitiatives/m3_profiles/main/maps/utk.yml"

// defaultMaximum applies when a property's cardinality omits a maximum.
const defaultMaximum = 1000

const anyURIRange = "http://www.w3.org/2001/XMLSchema#anyURI"

// Profile is a parsed M3 machine-readable metadata profile.
type Profile struct {
	Classes    map[string]ClassSpec    `yaml:"classes"`
	Properties map[string]PropertySpec `yaml:"properties"`
}

// ClassSpec describes one model class. Only presence matters for
// validation; display labels ride along for template generation.
type ClassSpec struct {
	DisplayLabel string `yaml:"display_label,omitempty"`
}

// PropertySpec describes one property of the profile.
type PropertySpec struct {
	AvailableOn     UsageSpec         `yaml:"available_on"`
	Cardinality     CardinalitySpec   `yaml:"cardinality"`
	Range           string            `yaml:"range,omitempty"`
	UsageGuidelines map[string]string `yaml:"usage_guidelines,omitempty"`
	Definition      map[string]string `yaml:"definition,omitempty"`
}

// Guideline returns the property's default usage guideline, falling back to
// its definition.
func (p PropertySpec) Guideline() string {
	if text, ok := p.UsageGuidelines["default"]; ok {
		return text
	}
	return p.Definition["default"]
}

// UsageSpec lists the model classes a property may appear on.
type UsageSpec struct {
	Class []string `yaml:"class"`
}

// CardinalitySpec bounds the number of values a property may carry.
// Pointers distinguish "absent" from zero.
type CardinalitySpec struct {
	Minimum *int `yaml:"minimum,omitempty"`
	Maximum *int `yaml:"maximum,omitempty"`
}

// Min returns the effective minimum cardinality.
func (c CardinalitySpec) Min() int {
	if c.Minimum == nil {
		return 0
	}
	return *c.Minimum
}

// Max returns the effective maximum cardinality.
func (c CardinalitySpec) Max() int {
	if c.Maximum == nil {
		return defaultMaximum
	}
	return *c.Maximum
}

// AvailableOn reports whether the property may appear on model.
func (p PropertySpec) AvailableOnModel(model string) bool {
	for _, class := range p.AvailableOn.Class {
		if class == model {
			return true
		}
	}
	return false
}

// DownloadProfile fetches the profile published at url into path.
func DownloadProfile(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: fetching m3 profile: %v", exodus.ErrIndexUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: fetching m3 profile: %v", exodus.ErrIndexUnavailable,
			&exodus.StatusError{StatusCode: resp.StatusCode, URL: url})
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadProfile reads an M3 profile from a yaml file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading m3 profile: %w", err)
	}
	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing m3 profile %s: %w", path, err)
	}
	if len(profile.Properties) == 0 {
		return nil, fmt.Errorf("m3 profile %s has no properties", path)
	}
	return &profile, nil
}
