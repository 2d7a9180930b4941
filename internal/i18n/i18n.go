// Package i18n renders admin-facing messages from embedded YAML catalogs.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultLocale = "en"

//go:embed locales/*.yml
var localeFS embed.FS

var displayNames = map[string]string{ //nolint:gochecknoglobals
	"en": "English",
	"ru": "Русский",
}

// Args are placeholder values, referenced as {name} in messages.
type Args map[string]any

type Translator struct {
	locale   string
	messages map[string]string
	fallback map[string]string
}

// New loads the catalog for locale. Unknown locales fall back to en.
func New(locale string) (*Translator, error) {
	fallback, err := load(DefaultLocale)
	if err != nil {
		return nil, err
	}

	locale = strings.ToLower(strings.TrimSpace(locale))
	if _, ok := displayNames[locale]; !ok {
		locale = DefaultLocale
	}

	messages := fallback
	if locale != DefaultLocale {
		if messages, err = load(locale); err != nil {
			return nil, err
		}
	}

	return &Translator{
		locale:   locale,
		messages: messages,
		fallback: fallback,
	}, nil
}

func (t *Translator) Locale() string {
	return t.locale
}

func (t *Translator) DisplayName() string {
	return DisplayName(t.locale)
}

// T renders key. A key missing from the locale is taken from en, a key
// missing everywhere is returned as is.
func (t *Translator) T(key string, args Args) string {
	msg, ok := t.messages[key]
	if !ok {
		if msg, ok = t.fallback[key]; !ok {
			return key
		}
	}

	if len(args) == 0 {
		return msg
	}

	pairs := make([]string, 0, len(args)*2)
	for name, value := range args {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(value))
	}

	return strings.NewReplacer(pairs...).Replace(msg)
}

func DisplayName(locale string) string {
	if name, ok := displayNames[strings.ToLower(locale)]; ok {
		return name
	}

	return locale
}

func load(locale string) (map[string]string, error) {
	data, err := localeFS.ReadFile("locales/" + locale + ".yml")
	if err != nil {
		return nil, fmt.Errorf("read locale %q: %w", locale, err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal %q: %w", locale, err)
	}

	messages := make(map[string]string)
	flatten("", tree, messages)

	return messages, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		if prefix != "" {
			key = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			flatten(key, v, out)
		case string:
			out[key] = v
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}
