//Primary public processing functions to interact with this library. All of these functions are available through the command line interface

// Package execute contains the functions called by the main command line interface
package execute

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dakusan/goplural/plural"
)

// ProcessSettings are taken from $SettingsFileName and are used to read CLDR supplemental plural rule files, compile them into dispatch tables, and verify the compiled predicates against the sample values the rules carry.
type ProcessSettings struct {
	//The settings from $SettingsFileName
	InputPath              string //The directory with the CLDR supplemental rule files
	CardinalFile           string //The cardinal rules file inside InputPath (JSON or YAML, defaults to plurals.json)
	OrdinalFile            string //The ordinal rules file inside InputPath (JSON or YAML, defaults to ordinals.json)
	AllowJSONTrailingComma bool   //If JSON files can have trailing commas. If true, a sanitization process is ran over the JSON that changes the regular expression “,\s*\n\s*}” to just “}”

	//Extra settings added by [command line] flags
	VerifySamples bool `json:"-"` //Whether to check every sample value against its compiled predicate
}

// ProcessedLocale is an item in the list of processed locales and what was done to/with them.
type ProcessedLocale struct {
	LocaleIdentifier string //“$locale/$ruleType”, e.g. “pt-PT/cardinal”
	Locale           string
	Type             plural.RuleType
	Warnings         []string
	Err              error
	Flags            ProcessedLocaleFlag
	Rule             plural.Rule //Only filled if Flags.PLF_Rule_Compiled
}
type ProcessedLocaleFlag uint

// ProcessedLocaleList is a list of ProcessedLocales keyed to their locale identifier
type ProcessedLocaleList map[string]*ProcessedLocale

// Directory compiles both rule files from the InputPath directory and verifies every locale in them.
//
// No ProcessedLocales are returned if any of the following errors occur: directory error, file read error, rule type mismatch between the file and its slot
func (settings *ProcessSettings) Directory() (ProcessedLocaleList, error) {
	return settings.process(func(string) bool { return true })
}

// File compiles both rule files and verifies a single locale (both rule families when both define it).
//
// The whole table build still runs first: predicates are shared across locales and rule families, so a single locale cannot be compiled in isolation.
func (settings *ProcessSettings) File(locale string) (ProcessedLocaleList, error) {
	list, err := settings.process(func(candidate string) bool { return candidate == locale })
	if err == nil && len(list) == 0 {
		return nil, fmt.Errorf("Locale “%s” was not found in either rules file", locale)
	}
	return list, err
}

//------------------Combined processing for the above functions-----------------

func (settings *ProcessSettings) process(includeLocale func(string) bool) (ProcessedLocaleList, error) {
	//Check and update the settings
	if err := settings.checkSettings(); err != nil {
		return nil, err
	}

	//Read both rule files
	cardinal, err := settings.loadRuleSource(settings.CardinalFile, plural.Cardinal)
	if err != nil {
		return nil, err
	}
	ordinal, err := settings.loadRuleSource(settings.OrdinalFile, plural.Ordinal)
	if err != nil {
		return nil, err
	}

	//Create the per-locale entries up front so later failures can be attributed to their locale
	list := make(ProcessedLocaleList, len(cardinal.Rulesets)+len(ordinal.Rulesets))
	rulesets := make(map[string]plural.Ruleset, len(list))
	for _, src := range []*plural.RuleSource{&cardinal, &ordinal} {
		for locale, rs := range src.Rulesets {
			if !includeLocale(locale) {
				continue
			}
			pl := &ProcessedLocale{
				LocaleIdentifier: locale + "/" + src.Type.String(),
				Locale:           locale,
				Type:             src.Type,
				Flags:            cond(src.Type == plural.Cardinal, PLF_Type_Cardinal, PLF_Type_Ordinal),
			}
			list[pl.LocaleIdentifier] = pl
			rulesets[pl.LocaleIdentifier] = rs
		}
	}

	//An error here names the offending locale and category; the whole build is abandoned
	tables, err := plural.BuildTables(cardinal, ordinal)
	if err != nil {
		return list, errors.New("Building dispatch tables failed: " + err.Error())
	}

	//Verify the locales
	{
		var waitForLocales sync.WaitGroup
		for identifier, pl := range list {
			waitForLocales.Add(1)
			go func(pl *ProcessedLocale, rs plural.Ruleset) {
				defer waitForLocales.Done()
				pl.Err = settings.verifyLocale(pl, tables, rs)
			}(pl, rulesets[identifier])
		}
		waitForLocales.Wait()
	}

	//Mark the entries whose predicates are shared
	markSharedRules(list)

	//Return if there are errors
	for _, pl := range list {
		if pl.Err != nil {
			return list, errors.New("There were errors while verifying locales")
		}
	}

	//Return success
	return list, nil
}

func (settings *ProcessSettings) checkSettings() error {
	var errs []string

	//Confirm the input path is valid and make sure it ends in a forward slash
	{
		dirPath := settings.InputPath
		if len(dirPath) == 0 || dirPath[len(dirPath)-1] != '/' {
			dirPath = dirPath + string('/')
		}
		if info, err := os.Stat(dirPath); err != nil {
			errs = append(errs, fmt.Sprintf("Input path “%s” could not be opened: %s", dirPath, err.Error()))
		} else if !info.IsDir() {
			errs = append(errs, fmt.Sprintf("Tried to read input path “%s” but it is not a directory", dirPath))
		}
		settings.InputPath = dirPath
	}

	//Fill in the default rule file names
	if len(settings.CardinalFile) == 0 {
		settings.CardinalFile = DefaultCardinalFile
	}
	if len(settings.OrdinalFile) == 0 {
		settings.OrdinalFile = DefaultOrdinalFile
	}

	//Handle if there are errors
	if len(errs) != 0 {
		return errors.New(strings.Join(errs, "\n"))
	}

	//Return success
	return nil
}

func (settings *ProcessSettings) loadRuleSource(fileName string, want plural.RuleType) (plural.RuleSource, error) {
	//Read the file
	data, err := os.ReadFile(settings.InputPath + fileName)
	if err != nil {
		return plural.RuleSource{}, fmt.Errorf("Could not read rules file “%s”: %s", fileName, err.Error())
	}

	//Decode by file extension
	var src plural.RuleSource
	switch ext := strings.ToLower(fileName[strings.LastIndexByte(fileName, '.')+1:]); ext {
	case JSON_Extension:
		src, err = plural.RuleSourceFromJSON(data, settings.AllowJSONTrailingComma)
	case YAML_Extension:
		src, err = plural.RuleSourceFromYAML(data)
	default:
		return plural.RuleSource{}, fmt.Errorf("Extension “%s” for file “%s” must be %s", ext, fileName, strings.Join([]string{YAML_Extension, JSON_Extension}, " or "))
	}
	if err != nil {
		return plural.RuleSource{}, fmt.Errorf("Could not load rules file “%s”: %s", fileName, err.Error())
	}

	//Make sure the file holds the rule family its settings slot says it does
	if src.Type != want {
		return plural.RuleSource{}, fmt.Errorf("Rules file “%s” contains %s rules, expected %s", fileName, src.Type.String(), want.String())
	}
	return src, nil
}

func (settings *ProcessSettings) verifyLocale(pl *ProcessedLocale, tables *plural.Tables, rs plural.Ruleset) error {
	//Resolve the locale to its compiled predicate
	lang, region, _ := strings.Cut(pl.Locale, "-")
	rule, err := tables.Create(lang, region, pl.Type)
	if err != nil {
		pl.Flags |= PLF_Error_DuringProcessing
		return fmt.Errorf("Could not create rule for “%s”: %s", pl.LocaleIdentifier, err.Error())
	}
	pl.Rule = rule
	pl.Flags |= PLF_Rule_Compiled
	if len(region) != 0 {
		pl.Flags |= PLF_Rule_RegionQualified
	}

	if !settings.VerifySamples {
		return nil
	}

	//Every sample value must select the category it was listed under
	numSamples := 0
	for _, category := range rs.Categories() {
		samples, err := rs.Samples(category)
		if err != nil {
			pl.Flags |= PLF_Error_DuringProcessing
			return fmt.Errorf("Samples for “%s” category “%s”: %s", pl.LocaleIdentifier, category.String(), err.Error())
		}
		numSamples += len(samples.Plain) + len(samples.Compact)

		for _, text := range samples.Plain {
			got, ok := rule.SelectString(text)
			if !ok {
				pl.Flags |= PLF_Error_DuringProcessing
				return fmt.Errorf("Sample “%s” for “%s” is not a valid numeral", text, pl.LocaleIdentifier)
			}
			if got != category {
				pl.Flags |= PLF_Error_DuringProcessing
				return fmt.Errorf("Sample “%s” for “%s” selected “%s” instead of “%s”", text, pl.LocaleIdentifier, got.String(), category.String())
			}
		}
		for _, cs := range samples.Compact {
			got, err := rule.SelectCompactDecimal(cs.Value, cs.Exponent)
			if err != nil {
				pl.Flags |= PLF_Error_DuringProcessing
				return fmt.Errorf("Compact sample “%s” for “%s”: %s", cs.Text, pl.LocaleIdentifier, err.Error())
			}
			if got != category {
				pl.Flags |= PLF_Error_DuringProcessing
				return fmt.Errorf("Compact sample “%s” for “%s” selected “%s” instead of “%s”", cs.Text, pl.LocaleIdentifier, got.String(), category.String())
			}
		}
	}

	pl.Flags |= cond(numSamples == 0, PLF_Samples_None, PLF_Samples_Verified)
	return nil
}

//markSharedRules flags every entry whose compiled predicate is shared with another locale,
//and ordinal entries whose predicate was aliased to a cardinal one
func markSharedRules(list ProcessedLocaleList) {
	keys := getMapKeys(list)
	for i, keyA := range keys {
		a := list[keyA]
		if a.Flags&PLF_Rule_Compiled == 0 {
			continue
		}
		for _, keyB := range keys[i+1:] {
			b := list[keyB]
			if !a.Rule.SharesRuleWith(b.Rule) {
				continue
			}
			if a.Type == b.Type {
				a.Flags |= PLF_Rule_SharedRule
				b.Flags |= PLF_Rule_SharedRule
			} else {
				//The ordinal side of a cross-family match is the alias
				ordinalSide := cond(a.Type == plural.Ordinal, a, b)
				ordinalSide.Flags |= PLF_Rule_AliasedToOther
			}
		}
	}
}
