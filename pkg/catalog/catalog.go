// Package catalog provides the immutable set of canned replies the bot can send.
//
// The built-in replies are embedded from catalog.yaml. Deployments may supply an
// override file with the same shape; keys it omits keep their built-in value.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Paths of every reply in the catalog.
const (
	PathFAQDefault            = "faq.default"
	PathFAQCancelSubscription = "faq.cancelSubscription"
	PathFAQOfficeHours        = "faq.officeHours"
	PathSuicideRisk           = "suicideRisk"
	PathNormalAnxious         = "normal.anxious"
	PathNormalStress          = "normal.stress"
	PathNormalDefault         = "normal.default"
	PathNormalGood            = "normal.good"
	PathNormalBad             = "normal.bad"
	PathNormalOverwhelmed     = "normal.overwhelmed"
	PathCheckIn               = "checkIn"
)

// ErrIncompleteCatalog is returned when a catalog leaves one or more replies empty.
var ErrIncompleteCatalog = errors.New("incomplete response catalog")

//go:embed catalog.yaml
var defaultYAML []byte

// FAQ replies.
type FAQ struct {
	Default            string `mapstructure:"default"`
	CancelSubscription string `mapstructure:"cancelSubscription"`
	OfficeHours        string `mapstructure:"officeHours"`
}

// Normal replies, one per recognised mood word plus a fallback.
type Normal struct {
	Anxious     string `mapstructure:"anxious"`
	Stress      string `mapstructure:"stress"`
	Default     string `mapstructure:"default"`
	Good        string `mapstructure:"good"`
	Bad         string `mapstructure:"bad"`
	Overwhelmed string `mapstructure:"overwhelmed"`
}

// Catalog maps category paths to literal reply strings.
// A Catalog is never mutated after construction and is safe for concurrent use.
type Catalog struct {
	FAQ         FAQ    `mapstructure:"faq"`
	SuicideRisk string `mapstructure:"suicideRisk"`
	Normal      Normal `mapstructure:"normal"`
	CheckIn     string `mapstructure:"checkIn"`

	entries map[string]string
}

var builtin = mustParse(defaultYAML)

// Default returns the built-in catalog.
func Default() *Catalog {
	return builtin
}

// Parse decodes a YAML document over the built-in replies.
func Parse(data []byte) (*Catalog, error) {
	c := *builtin
	c.entries = nil
	if err := decode(&c, data); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a YAML override file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Get returns the reply stored at path.
func (c *Catalog) Get(path string) (string, bool) {
	v, ok := c.entries[path]
	return v, ok
}

// Paths lists every reply path in a stable order.
func (c *Catalog) Paths() []string {
	fields := c.fields()
	paths := make([]string, len(fields))
	for i, f := range fields {
		paths[i] = f.path
	}
	return paths
}

type field struct {
	path  string
	value string
}

func (c *Catalog) fields() []field {
	return []field{
		{PathFAQDefault, c.FAQ.Default},
		{PathFAQCancelSubscription, c.FAQ.CancelSubscription},
		{PathFAQOfficeHours, c.FAQ.OfficeHours},
		{PathSuicideRisk, c.SuicideRisk},
		{PathNormalAnxious, c.Normal.Anxious},
		{PathNormalStress, c.Normal.Stress},
		{PathNormalDefault, c.Normal.Default},
		{PathNormalGood, c.Normal.Good},
		{PathNormalBad, c.Normal.Bad},
		{PathNormalOverwhelmed, c.Normal.Overwhelmed},
		{PathCheckIn, c.CheckIn},
	}
}

func decode(c *Catalog, data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      c,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode catalog: %w", err)
	}

	var missing []string
	c.entries = make(map[string]string)
	for _, f := range c.fields() {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.path)
			continue
		}
		c.entries[f.path] = f.value
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteCatalog, strings.Join(missing, ", "))
	}
	return nil
}

func mustParse(data []byte) *Catalog {
	var c Catalog
	if err := decode(&c, data); err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return &c
}
