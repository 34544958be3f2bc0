//The public plural rule facade

package plural

import (
	"fmt"
	"math"
	"strings"

	"github.com/govalues/decimal"
	"golang.org/x/text/language"
)

// Rule selects plural categories for one locale and rule type.
//
// A Rule is an immutable handle onto a compiled predicate shared by every locale with the same rule, so Rules are cheap to create and safe for concurrent use.
type Rule struct {
	rule     *compiledRule
	language string
	region   string
	ruleType RuleType
}

// Create returns the Rule for the language/region pair from the embedded CLDR data.
//
// The language subtag is required (“root” and the empty string both mean the root locale). The region may be blank; unknown regions fall back to the language's base rule. An unknown language is an error.
func Create(lang, region string, ruleType RuleType) (Rule, error) {
	return DefaultTables().Create(lang, region, ruleType)
}

// CreateOrDefault is Create, falling back to the root locale rule instead of failing
func CreateOrDefault(lang, region string, ruleType RuleType) Rule {
	return DefaultTables().CreateOrDefault(lang, region, ruleType)
}

// CreateFromTag returns the Rule for a BCP 47 language tag from the embedded CLDR data.
//
// Only the base language and region subtags participate in the lookup, and the region only when the tag states it exactly (not when the matcher inferred it).
func CreateFromTag(tag language.Tag, ruleType RuleType) (Rule, error) {
	return DefaultTables().CreateFromTag(tag, ruleType)
}

// DefaultRule returns the root locale rule, which selects Other for every value
func DefaultRule(ruleType RuleType) Rule {
	return DefaultTables().CreateOrDefault("", "", ruleType)
}

// Create returns the Rule for the language/region pair from these tables
func (t *Tables) Create(lang, region string, ruleType RuleType) (Rule, error) {
	lang, region = normalizeSubtags(lang, region)
	rule := t.dispatch(ruleType).lookup(lang, region)
	if rule == nil {
		return Rule{}, fmt.Errorf("No %s plural rules for language “%s”", ruleType.String(), lang)
	}
	return Rule{rule: rule, language: lang, region: region, ruleType: ruleType}, nil
}

// CreateOrDefault is Create, falling back to the root locale rule instead of failing
func (t *Tables) CreateOrDefault(lang, region string, ruleType RuleType) Rule {
	if rule, err := t.Create(lang, region, ruleType); err == nil {
		return rule
	}
	rule, err := t.Create("", "", ruleType)
	if err != nil {
		panic("Tables are missing the root locale rule")
	}
	return rule
}

// CreateFromTag returns the Rule for a BCP 47 language tag from these tables
func (t *Tables) CreateFromTag(tag language.Tag, ruleType RuleType) (Rule, error) {
	base, _ := tag.Base()
	region := ""
	if r, confidence := tag.Region(); confidence == language.Exact {
		region = r.String()
	}
	return t.Create(base.String(), region, ruleType)
}

func normalizeSubtags(lang, region string) (string, string) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "root" || lang == "und" {
		lang = ""
	}
	return lang, strings.ToUpper(strings.TrimSpace(region))
}

//-----------------------------------------Selection-----------------------------------------

// Select returns the plural category for an already-extracted Operand
func (r Rule) Select(op Operand) PluralCategory {
	if r.rule == nil {
		return Other
	}
	return r.rule.category(op)
}

// SelectString returns the category for a numeral in text form, which preserves visible fraction digits (“1.00” and “1” can differ). ok is false when the text is not a valid numeral
func (r Rule) SelectString(s string) (val PluralCategory, ok bool) {
	op, ok := OperandFromString(s)
	if !ok {
		return Other, false
	}
	return r.Select(op), true
}

// SelectDecimal returns the category for an arbitrary-precision decimal
func (r Rule) SelectDecimal(d decimal.Decimal) PluralCategory {
	return r.Select(OperandFromDecimal(d))
}

// SelectInt64 returns the category for a native integer
func (r Rule) SelectInt64(input int64) PluralCategory {
	return r.Select(OperandFromInt64(input))
}

// SelectFloat64 returns the category for a native float. Non-finite values select Other
func (r Rule) SelectFloat64(input float64) PluralCategory {
	if math.IsNaN(input) || math.IsInf(input, 0) {
		return Other
	}
	return r.Select(OperandFromFloat64(input))
}

// SelectCompactDecimal returns the category for a compact-form decimal (“2.3 million” is 2.3 with suppressedExponent 6)
func (r Rule) SelectCompactDecimal(d decimal.Decimal, suppressedExponent int) (PluralCategory, error) {
	op, err := OperandFromCompactDecimal(d, suppressedExponent)
	if err != nil {
		return Other, err
	}
	return r.Select(op), nil
}

// SelectCompactInt64 returns the category for a compact-form native integer
func (r Rule) SelectCompactInt64(input int64, suppressedExponent int) (PluralCategory, error) {
	op, err := OperandFromCompactInt64(input, suppressedExponent)
	if err != nil {
		return Other, err
	}
	return r.Select(op), nil
}

// SelectCompactFloat64 returns the category for a compact-form native float
func (r Rule) SelectCompactFloat64(input float64, suppressedExponent int) (PluralCategory, error) {
	if math.IsNaN(input) || math.IsInf(input, 0) {
		return Other, nil
	}
	op, err := OperandFromCompactFloat64(input, suppressedExponent)
	if err != nil {
		return Other, err
	}
	return r.Select(op), nil
}

//-----------------------------------------Accessors-----------------------------------------

// Language returns the lowercase language subtag the Rule was created for (blank for root)
func (r Rule) Language() string {
	return r.language
}

// Region returns the uppercase region subtag the Rule was created with, which may be blank
func (r Rule) Region() string {
	return r.region
}

// RuleType returns the rule family the Rule selects from
func (r Rule) RuleType() RuleType {
	return r.ruleType
}

// Tag returns the locale as a tag string: “pt-PT”, “en”, or “root”
func (r Rule) Tag() string {
	if r.language == "" {
		return "root"
	}
	if r.region == "" {
		return r.language
	}
	return r.language + "-" + r.region
}

// SharesRuleWith reports whether both Rules resolve to the same compiled predicate.
//
// Locales with identical rulesets share one predicate, as do ordinal rules whose compiled form matches a cardinal rule.
func (r Rule) SharesRuleWith(other Rule) bool {
	return r.rule != nil && r.rule == other.rule
}

// Categories returns every category the Rule can select, in priority order, Other included
func (r Rule) Categories() []PluralCategory {
	if r.rule == nil {
		return []PluralCategory{Other}
	}
	return append(append([]PluralCategory{}, r.rule.categories...), Other)
}
