// Package i18n translates the gateway's customer and admin strings.
// Messages are keyed by their English text, gettext style.
package i18n

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Domain is the translation domain of the plugin.
const Domain = "wc-invoice-gateway"

// Bundle holds the loaded translations for the domain.
type Bundle struct {
	catalog *catalog.Builder
	matcher language.Matcher
	tags    []language.Tag
}

// NewBundle loads the built-in translations.
func NewBundle() (*Bundle, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	tags := []language.Tag{language.English}

	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, err
			}
		}
		tags = append(tags, tag)
	}
	// English stays first as the matcher's fallback.
	sort.Slice(tags[1:], func(i, j int) bool { return tags[1+i].String() < tags[1+j].String() })

	return &Bundle{
		catalog: b,
		matcher: language.NewMatcher(tags),
		tags:    tags,
	}, nil
}

// Languages returns the languages the bundle has translations for, sorted.
func (b *Bundle) Languages() []string {
	out := make([]string, len(b.tags))
	for i, t := range b.tags {
		out[i] = t.String()
	}
	sort.Strings(out)
	return out
}

// Translator picks the best language for an Accept-Language header value.
// Unknown or malformed values fall back to English.
func (b *Bundle) Translator(acceptLanguage string) *Translator {
	tag := language.English
	if wanted, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(wanted) > 0 {
		if _, idx, conf := b.matcher.Match(wanted...); conf != language.No {
			tag = b.tags[idx]
		}
	}
	return &Translator{
		printer: message.NewPrinter(tag, message.Catalog(b.catalog)),
		tag:     tag,
	}
}

// Translator renders messages in one language.
type Translator struct {
	printer *message.Printer
	tag     language.Tag
}

// Untranslated returns an English translator with no catalog, used before
// the text domain is loaded.
func Untranslated() *Translator {
	return &Translator{
		printer: message.NewPrinter(language.English, message.Catalog(catalog.NewBuilder())),
		tag:     language.English,
	}
}

// T translates key. Unknown keys render as themselves.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Language returns the BCP 47 tag of the translator.
func (t *Translator) Language() string {
	return t.tag.String()
}
