//Parse the non-normative samples attached to CLDR rule text

package plural

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
)

// CompactSample is one compact-notation sample (“2.1c6” means 2.1 with suppressed exponent 6)
type CompactSample struct {
	Value    decimal.Decimal
	Exponent int
	Text     string //The sample as written in the rule text
}

// SampleSet holds the sample values CLDR attaches to one rule, with “~” ranges already expanded.
//
// Plain samples keep their text form so visible fraction digits survive (“10.0” is not “10”).
type SampleSet struct {
	Plain   []string
	Compact []CompactSample
}

//Expanding a malformed or enormous range would hide a data problem, so ranges are bounded
const maxSampleRangeValues = 1000

// ConditionText returns the category's condition with the sample markers stripped
func (rs Ruleset) ConditionText(c PluralCategory) (val string, ok bool) {
	text, ok := rs.rules[c]
	if !ok {
		return "", false
	}
	return stripSamples(text), true
}

// Samples parses the sample lists attached to the category's rule text.
//
// A category with no samples yields an empty set. A category the Ruleset does not define is an error.
func (rs Ruleset) Samples(c PluralCategory) (SampleSet, error) {
	text, ok := rs.rules[c]
	if !ok {
		return SampleSet{}, fmt.Errorf("Ruleset has no “%s” category", c.String())
	}
	return parseSamples(text)
}

//parseSamples reads every “@integer”/“@decimal” section of a rule's raw text
func parseSamples(rule string) (SampleSet, error) {
	ret := SampleSet{}
	idx := strings.IndexByte(rule, '@')
	if idx < 0 {
		return ret, nil
	}

	for _, section := range strings.Split(rule[idx+1:], "@") {
		var found bool
		for _, keyword := range [...]string{"integer", "decimal"} {
			if section, found = strings.CutPrefix(section, keyword); found {
				break
			}
		}
		if !found {
			return SampleSet{}, fmt.Errorf("Sample marker “@%s” is not “@integer” or “@decimal”", strings.TrimSpace(section))
		}

		for _, item := range strings.Split(section, ",") {
			item = strings.TrimSpace(item)
			//“…” (or ASCII “...”) marks an open-ended list and carries no value
			if item == "" || item == "…" || item == "..." {
				continue
			}
			if err := ret.addSample(item); err != nil {
				return SampleSet{}, err
			}
		}
	}
	return ret, nil
}

func (s *SampleSet) addSample(item string) error {
	//Compact notation: value then “c” (or the older “e”) then the suppressed exponent
	if cIdx := strings.IndexAny(item, "ce"); cIdx >= 0 {
		value, err := decimal.Parse(item[:cIdx])
		if err != nil {
			return fmt.Errorf("Invalid compact sample “%s”: %s", item, err.Error())
		}
		exponent, err := strconv.Atoi(item[cIdx+1:])
		if err != nil || exponent < 0 || exponent > MaxSuppressedExponent {
			return fmt.Errorf("Invalid compact sample exponent in “%s”", item)
		}
		s.Compact = append(s.Compact, CompactSample{Value: value, Exponent: exponent, Text: item})
		return nil
	}

	//“low~high” expands to every value between the bounds at the bounds' precision
	if low, high, isRange := strings.Cut(item, "~"); isRange {
		return s.addSampleRange(strings.TrimSpace(low), strings.TrimSpace(high), item)
	}

	if _, err := decimal.Parse(item); err != nil {
		return fmt.Errorf("Invalid sample value “%s”: %s", item, err.Error())
	}
	s.Plain = append(s.Plain, item)
	return nil
}

func (s *SampleSet) addSampleRange(lowText, highText, item string) error {
	low, err := decimal.Parse(lowText)
	if err != nil {
		return fmt.Errorf("Invalid sample range “%s”: %s", item, err.Error())
	}
	high, err := decimal.Parse(highText)
	if err != nil {
		return fmt.Errorf("Invalid sample range “%s”: %s", item, err.Error())
	}
	if low.Cmp(high) > 0 {
		return fmt.Errorf("Sample range “%s” bounds out of order", item)
	}

	//One unit at the low bound's scale: 1 for “1~5”, 0.1 for “0.0~0.9”
	step, err := decimal.New(1, low.Scale())
	if err != nil {
		return fmt.Errorf("Invalid sample range “%s”: %s", item, err.Error())
	}

	for count := 0; low.Cmp(high) <= 0; count++ {
		if count >= maxSampleRangeValues {
			return fmt.Errorf("Sample range “%s” expands to too many values", item)
		}
		s.Plain = append(s.Plain, low.String())
		if low, err = low.Add(step); err != nil {
			return fmt.Errorf("Invalid sample range “%s”: %s", item, err.Error())
		}
	}
	return nil
}
