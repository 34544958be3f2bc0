//Convert from CLDR supplemental YAML files

package plural

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v2"
)

//The YAML mirror of the CLDR supplemental JSON shape
type yamlSupplementalDoc struct {
	Supplemental struct {
		Version struct {
			CldrVersion string `yaml:"_cldrVersion"`
		} `yaml:"version"`
		Cardinal map[string]map[string]string `yaml:"plurals-type-cardinal"`
		Ordinal  map[string]map[string]string `yaml:"plurals-type-ordinal"`
	} `yaml:"supplemental"`
}

// RuleSourceFromYAML reads one CLDR supplemental plural-rules document in YAML form.
//
// The document shape mirrors the JSON format, and the same rules apply: exactly one of the “plurals-type-cardinal” and “plurals-type-ordinal” maps must be present.
func RuleSourceFromYAML(data []byte) (RuleSource, error) {
	//Check for valid utf8
	if !utf8.Valid(data) {
		return RuleSource{}, errors.New("File is not utf8 valid")
	}

	doc := yamlSupplementalDoc{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RuleSource{}, errors.New("Error parsing YAML file: " + err.Error())
	}

	var ruleType RuleType
	var locales map[string]map[string]string
	if cardinal, ordinal := doc.Supplemental.Cardinal, doc.Supplemental.Ordinal; cardinal != nil && ordinal != nil {
		return RuleSource{}, fmt.Errorf("Document contains both “%s” and “%s”", cldrCardinalKey, cldrOrdinalKey)
	} else if cardinal != nil {
		ruleType, locales = Cardinal, cardinal
	} else if ordinal != nil {
		ruleType, locales = Ordinal, ordinal
	} else {
		return RuleSource{}, fmt.Errorf("Missing “%s” or “%s” map", cldrCardinalKey, cldrOrdinalKey)
	}

	return buildRuleSource(doc.Supplemental.Version.CldrVersion, ruleType, locales)
}
