package modular

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultSeparator joins namespace segments in a locator.
const DefaultSeparator = `\`

// DefinitionType is the type name every module exposes inside its namespace.
const DefinitionType = "Module"

// Resolver turns configured module identifiers into locators.
type Resolver struct {
	Namespace string
	Separator string
}

func NewResolver(namespace, separator string) Resolver {
	if separator == "" {
		separator = DefaultSeparator
	}
	return Resolver{Namespace: namespace, Separator: separator}
}

// Resolve returns the namespace of the module named id, e.g.
// "user_profile" under `App\Modules` is `App\Modules\UserProfile`.
func (r Resolver) Resolve(id string) string {
	token := Classify(id)
	if r.Namespace == "" {
		return token
	}
	return r.Namespace + r.separator() + token
}

// Locate returns the locator of the module definition for id, e.g.
// `App\Modules\UserProfile\Module`.
func (r Resolver) Locate(id string) string {
	return r.Resolve(id) + r.separator() + DefinitionType
}

func (r Resolver) separator() string {
	if r.Separator == "" {
		return DefaultSeparator
	}
	return r.Separator
}

// Classify converts a word-separated identifier into a type name token.
// Words are split on '_', '-' and ' ', the first character of each word is
// upper-cased and the rest is kept as written, and the separators are
// dropped. No singular/plural inflection is applied: "settings" stays
// "Settings", "foo_2fa" is "Foo2fa".
func Classify(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	b.Grow(len(id))
	for _, w := range words {
		b.WriteString(upperFirst(w))
	}
	return b.String()
}

// upperFirst upper-cases only the leading rune of w. A rune whose upper
// form is longer than one rune (e.g. 'ß') is left unchanged.
func upperFirst(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	// Caser keeps state between calls and is not safe to share.
	head := cases.Upper(language.Und).String(w[:size])
	if utf8.RuneCountInString(head) != 1 {
		return w
	}
	return head + w[size:]
}
