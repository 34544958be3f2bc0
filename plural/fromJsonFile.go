//Convert from CLDR supplemental JSON files

package plural

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/valyala/fastjson"
)

//Keys in the CLDR supplemental data format
const (
	cldrSupplementalKey = "supplemental"
	cldrCardinalKey     = "plurals-type-cardinal"
	cldrOrdinalKey      = "plurals-type-ordinal"
	cldrCategoryPrefix  = "pluralRule-count-"
	cldrVersionKey      = "version"
	cldrCldrVersionKey  = "_cldrVersion"
)

// RuleSourceFromJSON reads one CLDR supplemental plural-rules JSON document (plurals.json or ordinals.json as published by CLDR).
//
// The rule type is taken from the document itself: exactly one of the “plurals-type-cardinal” and “plurals-type-ordinal” objects must be present.
func RuleSourceFromJSON(data []byte, allowJSONTrailingComma bool) (RuleSource, error) {
	//Check for valid utf8
	if !utf8.Valid(data) {
		return RuleSource{}, errors.New("File is not utf8 valid")
	}

	//Remove trailing commas if requested
	if allowJSONTrailingComma {
		data = regexp.MustCompile(`,\s*?\n\s*}`).ReplaceAll(data, []byte{'}'})
	}

	root, err := (&fastjson.Parser{}).ParseBytes(data)
	if err != nil {
		return RuleSource{}, errors.New("Error parsing JSON file: " + err.Error())
	}
	supplemental := root.Get(cldrSupplementalKey)
	if supplemental == nil {
		return RuleSource{}, errors.New("Missing “" + cldrSupplementalKey + "” object")
	}

	//The rule type is implied by which of the two type objects the document carries
	var ruleType RuleType
	var typeValue *fastjson.Value
	if cardinal, ordinal := supplemental.Get(cldrCardinalKey), supplemental.Get(cldrOrdinalKey); cardinal != nil && ordinal != nil {
		return RuleSource{}, errors.New("Document contains both “" + cldrCardinalKey + "” and “" + cldrOrdinalKey + "”")
	} else if cardinal != nil {
		ruleType, typeValue = Cardinal, cardinal
	} else if ordinal != nil {
		ruleType, typeValue = Ordinal, ordinal
	} else {
		return RuleSource{}, errors.New("Missing “" + cldrCardinalKey + "” or “" + cldrOrdinalKey + "” object")
	}

	localesObj, err := typeValue.Object()
	if err != nil {
		return RuleSource{}, errors.New("Rule type value is not an object")
	}

	//Collect the raw per-locale, per-category rule text
	locales := make(map[string]map[string]string, localesObj.Len())
	var visitErr error
	localesObj.Visit(func(localeKey []byte, v *fastjson.Value) {
		if visitErr != nil {
			return
		}
		localeObj, err := v.Object()
		if err != nil {
			visitErr = fmt.Errorf("Locale “%s” is not an object", localeKey)
			return
		}
		rules := make(map[string]string, localeObj.Len())
		localeObj.Visit(func(ruleKey []byte, rv *fastjson.Value) {
			if visitErr != nil {
				return
			}
			text, err := rv.StringBytes()
			if err != nil {
				visitErr = fmt.Errorf("Locale “%s” rule “%s” is not a string", localeKey, ruleKey)
				return
			}
			rules[string(ruleKey)] = string(text)
		})
		locales[string(localeKey)] = rules
	})
	if visitErr != nil {
		return RuleSource{}, visitErr
	}

	versionText := string(supplemental.GetStringBytes(cldrVersionKey, cldrCldrVersionKey))
	return buildRuleSource(versionText, ruleType, locales)
}

//buildRuleSource converts the raw string maps both file formats decode into a RuleSource.
//Rule keys must carry the “pluralRule-count-” prefix followed by a known category name
func buildRuleSource(versionText string, ruleType RuleType, locales map[string]map[string]string) (RuleSource, error) {
	version, err := parseCldrVersion(versionText)
	if err != nil {
		return RuleSource{}, err
	}

	rulesets := make(map[string]Ruleset, len(locales))
	for locale, rawRules := range locales {
		rules := make(map[PluralCategory]string, len(rawRules))
		for key, text := range rawRules {
			name, hasPrefix := strings.CutPrefix(key, cldrCategoryPrefix)
			if !hasPrefix {
				return RuleSource{}, fmt.Errorf("Locale “%s”: rule key “%s” does not start with “%s”", locale, key, cldrCategoryPrefix)
			}
			category, ok := CategoryFromString(name)
			if !ok {
				return RuleSource{}, fmt.Errorf("Locale “%s”: unknown plural category “%s”", locale, name)
			}
			rules[category] = text
		}
		rulesets[locale] = NewRuleset(rules)
	}

	return RuleSource{Version: version, Type: ruleType, Rulesets: rulesets}, nil
}

//parseCldrVersion reads the major CLDR version number (“40” or “41.0” both yield the major number)
func parseCldrVersion(versionText string) (int, error) {
	if versionText == "" {
		return 0, errors.New("Missing CLDR version")
	}
	major := versionText
	if idx := strings.IndexByte(major, '.'); idx >= 0 {
		major = major[:idx]
	}
	version, err := strconv.Atoi(major)
	if err != nil || version <= 0 {
		return 0, fmt.Errorf("Invalid CLDR version “%s”", versionText)
	}
	return version, nil
}
