//Constants used in automations

package execute

//goland:noinspection GoSnakeCaseUsage
const (
	SettingsFileName    = "settings-goplural.json"
	DefaultCardinalFile = "plurals.json"
	DefaultOrdinalFile  = "ordinals.json"
	YAML_Extension      = "yaml"
	JSON_Extension      = "json"
)

//goland:noinspection GoSnakeCaseUsage,GoCommentStart
const (
	_ ProcessedLocaleFlag = 1 << iota

	//Rule family (mutually exclusive)
	PLF_Type_Cardinal //The entry is for the locale's cardinal rules
	PLF_Type_Ordinal  //The entry is for the locale's ordinal rules

	//Compilation results
	PLF_Rule_Compiled        //The locale's ruleset compiled into the dispatch tables
	PLF_Rule_SharedRule      //At least one other locale compiled to the same predicate
	PLF_Rule_AliasedToOther  //The ordinal predicate is an alias of a cardinal predicate
	PLF_Rule_RegionQualified //The locale is a region-qualified override (“pt-PT”)

	//Sample verification results
	PLF_Samples_Verified //Every sample value selected the category it was listed under
	PLF_Samples_None     //The ruleset carries no sample values

	//Error information
	PLF_Error_DuringProcessing //If errors occurred during processing
)

// ProcessedLocaleFlagName : See ProcessedLocaleFlagNames
type ProcessedLocaleFlagName struct {
	Flag      ProcessedLocaleFlag
	Name      string
	ShortName [4]byte //All shortname strings must be 4 bytes
}

// ProcessedLocaleFlagNames is named information about the ProcessedLocaleFlags
var ProcessedLocaleFlagNames = []ProcessedLocaleFlagName{
	createPLFN(1, "UNUSED", "    "),
	createPLFN(PLF_Type_Cardinal, "Type_Cardinal", "TyCa"),
	createPLFN(PLF_Type_Ordinal, "Type_Ordinal", "TyOr"),
	createPLFN(PLF_Rule_Compiled, "Rule_Compiled", "Comp"),
	createPLFN(PLF_Rule_SharedRule, "Rule_SharedRule", "ShRu"),
	createPLFN(PLF_Rule_AliasedToOther, "Rule_AliasedToOther", "AlOt"),
	createPLFN(PLF_Rule_RegionQualified, "Rule_RegionQualified", "RegQ"),
	createPLFN(PLF_Samples_Verified, "Samples_Verified", "SaVe"),
	createPLFN(PLF_Samples_None, "Samples_None", "SaNo"),
	createPLFN(PLF_Error_DuringProcessing, "Error_DuringProcessing", "Er  "),
}

func createPLFN(Flag ProcessedLocaleFlag, Name string, shortName string) ProcessedLocaleFlagName {
	return ProcessedLocaleFlagName{Flag, Name, [4]byte([]byte(shortName))}
}
