package messages

import (
	"embed"
	"fmt"
	"maps"
	"os"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

var supported = []language.Tag{language.English, language.German}

var matcher = language.NewMatcher(supported)

// Catalog resolves TROView.* keys to localized strings and formats numbers
// for the matched locale.
type Catalog struct {
	tag     language.Tag
	strings map[string]string
	printer *message.Printer
}

// Load returns the catalog best matching locale. Unknown locales fall back to English.
func Load(locale string) (*Catalog, error) {
	tag := language.English
	if locale != "" {
		requested, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
		}
		_, idx, _ := matcher.Match(requested)
		tag = supported[idx]
	}

	base, _ := tag.Base()
	data, err := locales.ReadFile("locales/" + base.String() + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read message catalog for %s: %w", tag, err)
	}

	strs := map[string]string{}
	if err := yaml.Unmarshal(data, &strs); err != nil {
		return nil, fmt.Errorf("failed to parse message catalog for %s: %w", tag, err)
	}

	return &Catalog{
		tag:     tag,
		strings: strs,
		printer: message.NewPrinter(tag),
	}, nil
}

// MustLoad is Load that panics on error. Only for the embedded locales.
func MustLoad(locale string) *Catalog {
	c, err := Load(locale)
	if err != nil {
		panic(err)
	}
	return c
}

// Merge overlays messages from a YAML file onto the catalog.
func (c *Catalog) Merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read messages file: %w", err)
	}
	extra := map[string]string{}
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return fmt.Errorf("failed to parse messages file %s: %w", path, err)
	}
	maps.Copy(c.strings, extra)
	return nil
}

// Tag returns the matched language tag.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Has reports whether key is defined.
func (c *Catalog) Has(key string) bool {
	_, ok := c.strings[key]
	return ok
}

// String returns the message for key, or "!key!" when it is not defined.
func (c *Catalog) String(key string) string {
	if s, ok := c.strings[key]; ok {
		return s
	}
	return "!" + key + "!"
}

// Format resolves key and formats it with args using locale-aware verbs.
func (c *Catalog) Format(key string, args ...any) string {
	return c.printer.Sprintf(c.String(key), args...)
}

// Number formats f with digit grouping and at most two fraction digits.
func (c *Catalog) Number(f float64) string {
	return c.printer.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}

// Keys returns all defined keys, sorted.
func (c *Catalog) Keys() []string {
	return slices.Sorted(maps.Keys(c.strings))
}
