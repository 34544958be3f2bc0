//Compile rulesets into shared predicates and deduplicate them across locales

package plural

import (
	"fmt"
	"sort"
	"strings"
)

// Ruleset is the raw per-category condition text for one locale and rule type, samples included.
//
// Rulesets are keyed and compared only by this raw text: two Rulesets are equal iff their raw maps are equal, independent of any compiled form or locale name. That equality is the basis for deduplication.
type Ruleset struct {
	rules map[PluralCategory]string
}

// NewRuleset creates a Ruleset from raw per-category rule text
func NewRuleset(rules map[PluralCategory]string) Ruleset {
	copied := make(map[PluralCategory]string, len(rules))
	for c, text := range rules {
		copied[c] = text
	}
	return Ruleset{rules: copied}
}

// Categories returns the categories this Ruleset defines, in priority order
func (rs Ruleset) Categories() []PluralCategory {
	ret := make([]PluralCategory, 0, len(rs.rules))
	for _, c := range allCategories {
		if _, ok := rs.rules[c]; ok {
			ret = append(ret, c)
		}
	}
	return ret
}

// RuleText returns the raw condition text (with samples) for a category
func (rs Ruleset) RuleText(c PluralCategory) (val string, ok bool) {
	val, ok = rs.rules[c]
	return val, ok
}

//The raw-text identity of the Ruleset, in category priority order
func (rs Ruleset) key() string {
	var sb strings.Builder
	for _, c := range allCategories {
		if text, ok := rs.rules[c]; ok {
			sb.WriteString(c.String())
			sb.WriteByte('=')
			sb.WriteString(text)
			sb.WriteByte('\x00')
		}
	}
	return sb.String()
}

//compiledRule is a total function from Operand to PluralCategory.
//Guarded categories are evaluated in priority order; Other is the implicit guard-free default
type compiledRule struct {
	categories []PluralCategory //Guarded categories in priority order (never Other)
	conditions []condition      //Parallel to categories
	signature  string           //Canonical serialization, the basis for structural identity
}

func (cr *compiledRule) category(op Operand) PluralCategory {
	for i, cond := range cr.conditions {
		if cond.matches(op) {
			return cr.categories[i]
		}
	}
	return Other
}

//Compile the Ruleset into a single total function. Any malformed condition is an error;
//callers must abort the entire table build rather than install a possibly-wrong predicate
func (rs Ruleset) compile() (*compiledRule, error) {
	if _, ok := rs.rules[Other]; !ok {
		return nil, fmt.Errorf("Ruleset is missing the required “other” category")
	}

	cr := &compiledRule{}
	var sb strings.Builder
	for _, c := range allCategories {
		text, ok := rs.rules[c]
		if !ok {
			continue
		}
		if c == Other {
			//“other” is the guard-free default. Its condition (if CLDR ever published one) must still parse
			if _, err := createCondition(stripSamples(text)); err != nil {
				return nil, fmt.Errorf("Category “other”: %s", err.Error())
			}
			continue
		}
		condText := stripSamples(text)
		if condText == "" {
			return nil, fmt.Errorf("Category “%s” has an empty condition", c.String())
		}
		cond, err := createCondition(condText)
		if err != nil {
			return nil, fmt.Errorf("Category “%s”: %s", c.String(), err.Error())
		}
		cr.categories = append(cr.categories, c)
		cr.conditions = append(cr.conditions, cond)

		sb.WriteString(c.String())
		sb.WriteByte(':')
		sb.WriteString(conditionString(cond))
		sb.WriteByte(';')
	}
	sb.WriteString("other")
	cr.signature = sb.String()
	return cr, nil
}

// RuleSource is the raw CLDR plural definition data for one rule type: language tag → Ruleset
type RuleSource struct {
	Version  int //The CLDR version the data was published under
	Type     RuleType
	Rulesets map[string]Ruleset
}

//equivalenceClass is one compiled rule and every language tag whose Ruleset compiled to it
type equivalenceClass struct {
	rule *compiledRule
	tags []string //Sorted
}

//createRules aliases “root” under the empty-string key, groups equal Rulesets and compiles
//exactly one rule per group. Group and tag order are deterministic
func createRules(src RuleSource) ([]equivalenceClass, error) {
	rulesetMap := make(map[string]Ruleset, len(src.Rulesets)+1)
	for tag, rs := range src.Rulesets {
		rulesetMap[tag] = rs
	}
	if root, ok := rulesetMap["root"]; ok {
		rulesetMap[""] = root
	}

	groups := make(map[string][]string)
	byKey := make(map[string]Ruleset)
	for tag, rs := range rulesetMap {
		key := rs.key()
		groups[key] = append(groups[key], tag)
		byKey[key] = rs
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	classes := make([]equivalenceClass, 0, len(keys))
	for _, key := range keys {
		tags := groups[key]
		sort.Strings(tags)
		rule, err := byKey[key].compile()
		if err != nil {
			return nil, fmt.Errorf("Compiling %s rule for “%s”: %s", src.Type.String(), tags[0], err.Error())
		}
		classes = append(classes, equivalenceClass{rule: rule, tags: tags})
	}
	return classes, nil
}

//aliasDuplicateRules rewrites every ordinal class whose compiled predicate is structurally
//identical to a cardinal class's predicate to reference the cardinal rule instead
func aliasDuplicateRules(ordinal, cardinal []equivalenceClass) {
	bySignature := make(map[string]*compiledRule, len(cardinal))
	for _, class := range cardinal {
		bySignature[class.rule.signature] = class.rule
	}
	for i := range ordinal {
		if match, ok := bySignature[ordinal[i].rule.signature]; ok {
			ordinal[i].rule = match
		}
	}
}

// Tables hold the compiled dispatch tables for both rule types.
//
// Tables are built once and never mutated afterwards; they are safe for unlimited concurrent readers.
type Tables struct {
	version  int
	cardinal dispatchTable
	ordinal  dispatchTable
}

// BuildTables compiles both rule sources into dispatch tables.
//
// The build is all-or-nothing: a malformed condition anywhere, mismatched rule types, or a CLDR version mismatch between the two sources aborts the whole build.
func BuildTables(cardinal, ordinal RuleSource) (*Tables, error) {
	if cardinal.Type != Cardinal {
		return nil, fmt.Errorf("Cardinal source has rule type “%s”", cardinal.Type.String())
	} else if ordinal.Type != Ordinal {
		return nil, fmt.Errorf("Ordinal source has rule type “%s”", ordinal.Type.String())
	} else if cardinal.Version != ordinal.Version {
		return nil, fmt.Errorf("Cardinal/ordinal CLDR version mismatch (%d != %d)", cardinal.Version, ordinal.Version)
	}

	cardinalClasses, err := createRules(cardinal)
	if err != nil {
		return nil, err
	}
	ordinalClasses, err := createRules(ordinal)
	if err != nil {
		return nil, err
	}
	aliasDuplicateRules(ordinalClasses, cardinalClasses)

	return &Tables{
		version:  cardinal.Version,
		cardinal: buildDispatch(cardinalClasses),
		ordinal:  buildDispatch(ordinalClasses),
	}, nil
}

// Version returns the CLDR version the tables were built from
func (t *Tables) Version() int {
	return t.version
}

// Languages returns every language subtag the rule family has rules for, sorted, with the root locale included as the empty string
func (t *Tables) Languages(ruleType RuleType) []string {
	return t.dispatch(ruleType).languages()
}

func (t *Tables) dispatch(ruleType RuleType) dispatchTable {
	if ruleType == Ordinal {
		return t.ordinal
	}
	return t.cardinal
}
