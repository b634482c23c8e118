package response

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Printer is satisfied by *message.Printer.
type Printer interface {
	Sprintf(key message.Reference, a ...any) string
}

// Localize returns a copy of e whose title and detail are looked up as
// message keys. Keys with no translation are kept verbatim.
func (e ErrorObject) Localize(p Printer) ErrorObject {
	cp := e.Clone()
	if p == nil {
		return cp
	}
	cp.Title = translate(p, cp.Title)
	cp.Detail = translate(p, cp.Detail)
	return cp
}

// Localize translates every object, keeping order.
func (r ErrorResponse) Localize(p Printer) ErrorResponse {
	out := make([]ErrorObject, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Localize(p)
	}
	return ErrorResponse{Errors: out}
}

// Untranslated keys are printed as format strings, so a literal percent
// sign has to be escaped to come back unchanged.
func translate(p Printer, s string) string {
	if s == "" {
		return s
	}
	return p.Sprintf(strings.ReplaceAll(s, "%", "%%"))
}

// Localizer picks a message printer for an Accept-Language header.
type Localizer struct {
	catalog   catalog.Catalog
	supported []language.Tag
	matcher   language.Matcher
}

// NewLocalizer builds a Localizer over cat. fallback is used when nothing
// in the header matches.
func NewLocalizer(fallback language.Tag, cat catalog.Catalog) *Localizer {
	supported := []language.Tag{fallback}
	for _, tag := range cat.Languages() {
		if tag != fallback {
			supported = append(supported, tag)
		}
	}
	return &Localizer{
		catalog:   cat,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}
}

// Tag returns the supported language that best matches acceptLanguage.
func (l *Localizer) Tag(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return l.supported[0]
	}
	_, idx, _ := l.matcher.Match(tags...)
	return l.supported[idx]
}

// Printer returns a printer for the best match of acceptLanguage.
func (l *Localizer) Printer(acceptLanguage string) *message.Printer {
	return message.NewPrinter(l.Tag(acceptLanguage), message.Catalog(l.catalog))
}
