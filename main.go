//Command line interface

/*
Package main is the command line interface to the “plural” package, which compiles CLDR plural rules into shared predicates and selects plural categories for numeric values.

goplural.exe [Mode] [flags]:

Modes (Mutually exclusive):

	 Directory mode: [No arguments given]
	    Compiles the rule files in the “InputPath” directory and verifies every locale against its samples
	    Can be used in conjunction with -w
	 Locale mode: [arg1=locale]
	    Compiles the rule files and verifies a single locale (both rule families when both define it)
	 Query mode: [-q, arg1=locale, arg2..argN=values]
	    Selects plural categories for the given values using the embedded CLDR data

	-q, --query                     Mode=Query. Select categories for values instead of verifying rule files
	-w, --watch                     Mode=Directory. Continually watches the directory for rule file changes
	                                Rebuilds and re-verifies both dispatch tables when a change is detected
	    --create-settings           Create the default settings-goplural.json file
	-h, --help                      This help prompt

Query flags (Only used with -q):

	-r, --rule-type string          Which rule family to select from: cardinal or ordinal (default cardinal)
	-e, --exponent int              Treat the values as compact forms with this suppressed exponent
	                                “2.3” with exponent 6 is “2.3 million”

The following are for overriding settings from settings-goplural.json. If not given, the values from the settings file will be used:

	-p, --input-path string         The directory with the CLDR supplemental rule files
	-a, --cardinal-file string      The cardinal rules file inside the input path (JSON or YAML)
	-o, --ordinal-file string       The ordinal rules file inside the input path (JSON or YAML)
	-j, --allow-json-comma          If JSON files can have trailing commas. If true, a sanitization process is ran over the JSON
	-n, --verify-samples[=false]    Whether to check every sample value against its compiled predicate (default true)

Command line display modifiers:

	-t, --table[=false]             Output an ascii table of the processed locales and their flags (default true)
	-v, --verbose                   Output a list of processed locales and their processing flags
	                                In query mode, also output the extracted operands
*/
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/dakusan/goplural/execute"
	"github.com/dakusan/goplural/plural"
	"github.com/dakusan/goplural/watch"
	"github.com/govalues/decimal"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
)

func main() {
	//I wish there was a way to let the process naturally return an error code without forcing the exit with os.Exit()
	//Because of this I decided to not return success values
	mainWrapper()
}

// Returns if successful
func mainWrapper() bool {
	//Mode flags
	flagQuery := pflag.BoolP("query", "q", false, "Mode=Query. Select categories for values instead of verifying rule files")
	flagWatchFiles := pflag.BoolP("watch", "w", false, "Mode=Directory. Continually watches the directory for rule file changes\nRebuilds and re-verifies both dispatch tables when a change is detected")
	flagCreateSettingsFile := pflag.Bool("create-settings", false, "Create the default "+execute.SettingsFileName+" file")
	flagShowHelp := pflag.BoolP("help", "h", false, "This help prompt")

	//Query flags
	flagRuleType := pflag.StringP("rule-type", "r", "cardinal", "Which rule family to select from: cardinal or ordinal")
	flagExponent := pflag.IntP("exponent", "e", 0, "Treat the values as compact forms with this suppressed exponent\n“2.3” with exponent 6 is “2.3 million”")

	//Settings receiver with defaults
	settings := execute.ProcessSettings{
		InputPath:     "rules",
		CardinalFile:  execute.DefaultCardinalFile,
		OrdinalFile:   execute.DefaultOrdinalFile,
		VerifySamples: true,
	}

	//Settings overrides
	type settingInfo struct {
		name, fixedName string
		flagValue       any
		settingPointer  any
	}
	settingOverrides := make(map[string]settingInfo)
	addSetting := func(shortLetter byte, name string, settingPointer any, usageText string) {
		//Lower case name and add dash where there were upper case letters
		const upperToLowerOrOp = 32
		fixedName := []byte(name)
		fixedName[0] = fixedName[0] | upperToLowerOrOp
		fixedName = regexp.MustCompile(`[a-z][A-Z]`).ReplaceAllFunc(fixedName, func(b []byte) []byte {
			return []byte(fmt.Sprintf("%c-%c", b[0], b[1]|upperToLowerOrOp))
		})
		sFixedName := string(fixedName)

		myInfo := settingInfo{name, sFixedName, nil, settingPointer}
		switch settingPointer.(type) {
		case *bool:
			myInfo.flagValue = pflag.BoolP(sFixedName, string(shortLetter), false, usageText)
		case *string:
			myInfo.flagValue = pflag.StringP(sFixedName, string(shortLetter), "", usageText)
		default:
			panic("Unreachable code")
		}

		settingOverrides[name] = myInfo
	}

	//Settings flags
	addSetting('p', "InputPath", &settings.InputPath, "The directory with the CLDR supplemental rule files")
	addSetting('a', "CardinalFile", &settings.CardinalFile, "The cardinal rules file inside the input path (JSON or YAML)")
	addSetting('o', "OrdinalFile", &settings.OrdinalFile, "The ordinal rules file inside the input path (JSON or YAML)")
	addSetting('j', "AllowJsonComma", &settings.AllowJSONTrailingComma, "If JSON files can have trailing commas. If true, a sanitization process is ran over the JSON")
	addSetting('n', "VerifySamples", &settings.VerifySamples, "Whether to check every sample value against its compiled predicate")

	//Output flags
	flagShowTable := pflag.BoolP("table", "t", true, "Output an ascii table of the processed locales and their flags")
	flagShowProcessedFlags := pflag.BoolP("verbose", "v", false, "Output a list of processed locales and their processing flags\nIn query mode, also output the extracted operands")
	for _, flagName := range []string{"verify-samples", "table"} {
		pflag.Lookup(flagName).NoOptDefVal = "false"
		pflag.Lookup(flagName).DefValue = "true"
	}

	//Set up help prompt
	stdErr := func(str string) bool {
		_, _ = fmt.Fprintln(os.Stderr, str)
		return false
	}
	pflag.CommandLine.SortFlags = false
	pflag.Usage = func() {
		//Add title above a flag
		flagsSection := pflag.CommandLine.FlagUsages()
		titleFlagSection := func(shortLetter byte, titleLine string, args ...interface{}) {
			flagsSection = regexp.MustCompile(`(?m)^\s*-`+string(shortLetter)).ReplaceAllStringFunc(flagsSection, func(str string) string {
				return fmt.Sprintf("\n"+titleLine+"\n%s", append(args, str)...)
			})
		}

		//Add the titles
		titleFlagSection('r', "Query flags (Only used with -q):")
		titleFlagSection('p', "The following are for overriding settings from %s. If not given, the values from the settings file will be used:", execute.SettingsFileName)
		titleFlagSection('t', "Command line display modifiers:\n")

		//Modes information
		modesStrings := []string{
			"   Directory mode: [No arguments given]\n      Compiles the rule files in the “InputPath” directory and verifies every locale against its samples\n      Can be used in conjunction with -w",
			"   Locale mode: [arg1=locale]\n      Compiles the rule files and verifies a single locale (both rule families when both define it)",
			"   Query mode: [-q, arg1=locale, arg2..argN=values]\n      Selects plural categories for the given values using the embedded CLDR data",
		}

		FullMessage := fmt.Sprintf(
			"%s [Mode] [flags]:\n\nModes (Mutually exclusive):\n%s\n\n%s",
			regexp.MustCompile(`^.*[/\\]`).ReplaceAllString(os.Args[0], ""),
			strings.Join(modesStrings, "\n"),
			flagsSection,
		)

		stdErr(FullMessage)
	}
	pflag.ErrHelp = errors.New("")

	//Run flags parsing
	pflag.Parse()

	//If help is requested
	if *flagShowHelp {
		pflag.Usage()
		return false
	}

	//If settings file creation is requested
	if *flagCreateSettingsFile {
		var f *os.File
		var err error
		if f, err = os.Create(execute.SettingsFileName); err != nil {
			return stdErr(fmt.Sprintf("Error opening %s: %s", execute.SettingsFileName, err.Error()))
		}
		defer func() { _ = f.Close() }()
		e := json.NewEncoder(f)
		e.SetIndent("", "\t")
		if err := e.Encode(settings); err != nil {
			return stdErr(fmt.Sprintf("Error compiling settings to %s: %s", execute.SettingsFileName, err.Error()))
		}
		return stdErr("Settings file created")
	}

	//Query mode only needs the embedded data, so the settings file is not read
	if *flagQuery {
		if *flagWatchFiles {
			return stdErr("-w flag cannot be used in mode=Query")
		}
		if pflag.NArg() < 2 {
			return stdErr("Query mode requires a locale and at least one value")
		}
		return runQuery(pflag.Arg(0), pflag.Args()[1:], *flagRuleType, *flagExponent, *flagShowProcessedFlags)
	}

	//Read the settings file
	if settingsText, err := os.ReadFile(execute.SettingsFileName); err != nil {
		return stdErr(fmt.Sprintf("Could not read settings file “%s”: %s", execute.SettingsFileName, err.Error()))
	} else if err := json.Unmarshal(settingsText, &settings); err != nil {
		return stdErr(fmt.Sprintf("Could not read settings file “%s”: %s", execute.SettingsFileName, err.Error()))
	}

	//Read the flags into settings
	for _, s := range settingOverrides {
		if !pflag.Lookup(s.fixedName).Changed {
			continue
		}
		switch v := s.settingPointer.(type) {
		case *bool:
			*v = *s.flagValue.(*bool)
		case *string:
			*v = *s.flagValue.(*string)
		default:
			panic("Unreachable code")
		}
	}

	//Make sure we are in the proper mode for the mode flags
	hasLocale := pflag.NArg() > 0
	if hasLocale && *flagWatchFiles {
		return stdErr("-w flag cannot be used in mode=Locale")
	}

	//Run the requested mode
	switch {
	case *flagWatchFiles:
		ret := watch.Execute(&settings)
		for msg := range ret {
			switch msg.Type {
			case watch.WR_Message:
				fmt.Println(msg.Message)
			case watch.WR_ProcessedDirectory:
				fmt.Println("Finished processing rule files")
				outputDirData(msg.Locales, msg.Err, *flagShowTable, *flagShowProcessedFlags)
			case watch.WR_ErroredOut:
				fmt.Printf("Fatal error, exiting: %s\n", msg.Err)
				return true
			case watch.WR_CloseRequested:
				fmt.Println("Exiting watch")
				return true
			}
		}
		panic("Unreachable code")
	case hasLocale:
		dirData, err := settings.File(pflag.Arg(0))
		outputDirData(dirData, err, *flagShowTable, *flagShowProcessedFlags)
		return err == nil
	default:
		dirData, err := settings.Directory()
		outputDirData(dirData, err, *flagShowTable, *flagShowProcessedFlags)
		return err == nil
	}
}

// Select and print the category of each value. Returns if successful
func runQuery(locale string, values []string, ruleTypeName string, suppressedExponent int, verbose bool) bool {
	stdErr := func(str string) bool {
		_, _ = fmt.Fprintln(os.Stderr, str)
		return false
	}

	//Resolve the rule family
	var ruleType plural.RuleType
	switch strings.ToLower(ruleTypeName) {
	case "cardinal", "c":
		ruleType = plural.Cardinal
	case "ordinal", "o":
		ruleType = plural.Ordinal
	default:
		return stdErr(fmt.Sprintf("Rule type “%s” must be cardinal or ordinal", ruleTypeName))
	}

	//Resolve the locale to a rule from the embedded data
	var rule plural.Rule
	if locale == "root" || locale == "" {
		rule = plural.DefaultRule(ruleType)
	} else if tag, err := language.Parse(locale); err == nil {
		if rule, err = plural.CreateFromTag(tag, ruleType); err != nil {
			return stdErr(err.Error())
		}
	} else {
		lang, region, _ := strings.Cut(locale, "-")
		var err error
		if rule, err = plural.Create(lang, region, ruleType); err != nil {
			return stdErr(err.Error())
		}
	}

	//Select each value
	for _, value := range values {
		var op plural.Operand
		if suppressedExponent == 0 {
			var ok bool
			if op, ok = plural.OperandFromString(value); !ok {
				return stdErr(fmt.Sprintf("“%s” is not a valid numeral", value))
			}
		} else {
			d, err := decimal.Parse(value)
			if err != nil {
				return stdErr(fmt.Sprintf("“%s” is not a valid numeral: %s", value, err.Error()))
			}
			if op, err = plural.OperandFromCompactDecimal(d, suppressedExponent); err != nil {
				return stdErr(fmt.Sprintf("“%s”: %s", value, err.Error()))
			}
		}

		fmt.Printf("%s (%s/%s): %s\n", value, rule.Tag(), rule.RuleType().String(), rule.Select(op).String())
		if verbose {
			fmt.Printf("   n=%v i=%d v=%d w=%d f=%d t=%d e=%d\n", op.N, op.I, op.V, op.W, op.F, op.T, op.E)
		}
	}
	return true
}

func outputDirData(ret execute.ProcessedLocaleList, err error, showTable, showProcessedFlags bool) {
	//Output errors
	if err != nil {
		fmt.Println("Errors: " + err.Error())
		for _, pl := range ret {
			if pl.Err != nil {
				fmt.Printf("Locale “%s”: %s\n", pl.LocaleIdentifier, pl.Err.Error())
			}
		}
		fmt.Println(strings.Repeat("-", 80))
	} else {
		fmt.Println("Success")
	}

	//Print the flag table
	if len(ret) != 0 && showTable {
		fmt.Println(strings.Join(ret.CreateFlagTable(), "\n"))
	}

	//Print the processed flags
	if len(ret) != 0 && showProcessedFlags {
		for _, pl := range ret {
			getFlags := make([]string, 0, len(execute.ProcessedLocaleFlagNames))
			for _, f := range execute.ProcessedLocaleFlagNames {
				if pl.Flags&f.Flag != 0 {
					getFlags = append(getFlags, f.Name)
				}
			}
			fmt.Printf("%s: %s\n", pl.LocaleIdentifier, strings.Join(getFlags, ", "))
		}
	}

	//Print warnings
	isFirstWarning := true
	for _, pl := range ret {
		if len(pl.Warnings) == 0 {
			continue
		}
		if isFirstWarning {
			fmt.Println(strings.Repeat("-", 80))
			fmt.Println("Warnings:")
			isFirstWarning = false
		}

		fmt.Printf("Locale “%s”: %s\n", pl.LocaleIdentifier, strings.Join(pl.Warnings, "\n"))
	}
}
