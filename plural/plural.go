//Plural categories and rule types

/*
Package plural selects CLDR plural categories (zero, one, two, few, many, other) for numeric values.

Rules are compiled from the CLDR supplemental plural definitions (JSON or YAML) into in-memory predicates. Structurally identical rulesets are compiled once and shared between all of their locales, and between the cardinal and ordinal rule families when their compiled forms coincide.

A compiled dispatch table built from embedded CLDR data is available through Create/CreateOrDefault. Custom supplemental data can be compiled with BuildTables.

Tables are built once and never mutated afterwards, so a single table can serve any number of concurrent callers without locking.
*/
package plural

import "strings"

// PluralCategory is a language-dependent plural form, per CLDR specifications
type PluralCategory uint8

//The order here is the category priority order in which rule conditions are evaluated
const (
	Zero PluralCategory = iota
	One
	Two
	Few
	Many
	Other

	numCategories = iota
)

//Categories in priority order. Other is always last as it is the guard-free default
var allCategories = [numCategories]PluralCategory{Zero, One, Two, Few, Many, Other}

var categoryNames = [numCategories]string{"zero", "one", "two", "few", "many", "other"}

// String returns the lowercase CLDR name of the category (“zero” through “other”)
func (c PluralCategory) String() string {
	if uint8(c) >= numCategories {
		return "invalid"
	}
	return categoryNames[c]
}

// CategoryFromString returns the PluralCategory whose CLDR name matches the input (case-insensitive)
func CategoryFromString(s string) (val PluralCategory, ok bool) {
	lower := strings.ToLower(s)
	for i, name := range categoryNames {
		if name == lower {
			return PluralCategory(i), true
		}
	}
	return Other, false
}

// RuleType selects between the two CLDR plural rule families
type RuleType uint8

const (
	Cardinal RuleType = iota //Counting: “1 item”, “2 items”
	Ordinal                  //Ranking: “1st item”, “2nd item”
)

// String returns the CLDR name of the rule type
func (t RuleType) String() string {
	if t == Ordinal {
		return "ordinal"
	}
	return "cardinal"
}
