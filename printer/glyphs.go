package printer

import (
	jj "github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// GlyphsFromEnvironment selects tree guides for the user's locale.
// If the locale cannot be detected, "en-US" is assumed.
func GlyphsFromEnvironment() Glyphs {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		T().Infof("cannot detect user locale: %v", err)
		userLocale = "en-US"
	} else {
		T().Debugf("detected user locale %v", userLocale)
	}
	return GlyphsForLocale(userLocale)
}

// GlyphsForLocale selects tree guides for a locale, given as an IETF
// language tag. East Asian locales get ASCII guides, as the Unicode guides
// are of ambiguous width there. Malformed tags get Unicode guides.
func GlyphsForLocale(locale string) Glyphs {
	lang, err := language.Parse(locale)
	if err != nil {
		T().Infof("cannot parse locale %q: %v", locale, err)
		return Unicode
	}
	if isEastAsian(lang) && hasAmbiguousWidth(Unicode) {
		return ASCII
	}
	return Unicode
}

var eaMatch = language.NewMatcher([]language.Tag{
	language.Chinese, // The first language is used as fallback.
	language.Japanese,
	language.Korean,
	language.Vietnamese,
	language.Thai,
	language.Mongolian,
	language.Burmese,
	language.Khmer,
})

func isEastAsian(lang language.Tag) bool {
	if script, conf := lang.Script(); conf != language.No {
		switch script.String() {
		case "Bopo", "Hanb", "Hani", "Hans", "Hant", "Hang", "Hira", "Jpan", "Kana", "Kore":
			return true
		}
	}
	_, _, confidence := eaMatch.Match(lang)
	return confidence != language.No
}

// hasAmbiguousWidth is true if any of the guides contains a rune of East
// Asian width class A.
func hasAmbiguousWidth(g Glyphs) bool {
	for _, guide := range []string{g.Tee, g.Corner, g.Pipe, g.Blank} {
		for _, r := range guide {
			if width.LookupRune(r).Kind() == width.EastAsianAmbiguous {
				return true
			}
		}
	}
	return false
}
