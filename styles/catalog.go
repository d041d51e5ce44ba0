// Package styles holds the fixed catalog of art styles a user can pick from
// and the resolutions every prompt is rendered at.
package styles

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrUnknownStyle = errors.New("unknown style")

const (
	SizeSmall  = "256x256"
	SizeMedium = "512x512"
	SizeLarge  = "1024x1024"
)

type Style struct {
	Key    string
	Suffix string
}

// Option is a selectable entry rendered as an inline button
type Option struct {
	Key   string
	Label string
}

// Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	styles []Style
	byKey  map[string]string
	sizes  []string
}

func NewCatalog(styles []Style, sizes []string) *Catalog {
	c := &Catalog{
		styles: make([]Style, len(styles)),
		byKey:  make(map[string]string, len(styles)),
		sizes:  make([]string, len(sizes)),
	}
	copy(c.styles, styles)
	copy(c.sizes, sizes)
	for _, s := range styles {
		c.byKey[s.Key] = s.Suffix
	}
	return c
}

// Default returns the catalog the bot ships with
func Default() *Catalog {
	return NewCatalog([]Style{
		{Key: "ghibli", Suffix: "in Studio Ghibli style"},
		{Key: "realistic", Suffix: "as a realistic photo"},
		{Key: "anime", Suffix: "in anime style"},
		{Key: "cyberpunk", Suffix: "in cyberpunk art style"},
		{Key: "sketch", Suffix: "as a pencil sketch"},
		{Key: "oil", Suffix: "as an oil painting"},
	}, []string{SizeSmall, SizeMedium, SizeLarge})
}

func (c *Catalog) Options() []Option {
	caser := cases.Title(language.English)
	options := make([]Option, 0, len(c.styles))
	for _, s := range c.styles {
		options = append(options, Option{
			Key:   s.Key,
			Label: caser.String(s.Key),
		})
	}
	return options
}

func (c *Catalog) SuffixFor(key string) (string, error) {
	suffix, ok := c.byKey[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, key)
	}
	return suffix, nil
}

func (c *Catalog) Has(key string) bool {
	_, ok := c.byKey[key]
	return ok
}

// Sizes returns a copy of the resolutions, smallest first
func (c *Catalog) Sizes() []string {
	sizes := make([]string, len(c.sizes))
	copy(sizes, c.sizes)
	return sizes
}
