//Embedded CLDR supplemental plural data and the default tables built from it

package plural

import (
	_ "embed"
	"sync"
)

//go:embed cldr/plurals.json
var embeddedCardinalJSON []byte

//go:embed cldr/ordinals.json
var embeddedOrdinalJSON []byte

var defaultTablesOnce sync.Once
var defaultTablesVal *Tables

// DefaultTables returns the dispatch tables built from the embedded CLDR data.
//
// The embedded data is validated at build time by this package's tests, so a failure here means the binary itself is corrupt and panicking is the only sane response.
func DefaultTables() *Tables {
	defaultTablesOnce.Do(func() {
		cardinal, err := RuleSourceFromJSON(embeddedCardinalJSON, false)
		if err != nil {
			panic("Embedded cardinal plural data is invalid: " + err.Error())
		}
		ordinal, err := RuleSourceFromJSON(embeddedOrdinalJSON, false)
		if err != nil {
			panic("Embedded ordinal plural data is invalid: " + err.Error())
		}
		tables, err := BuildTables(cardinal, ordinal)
		if err != nil {
			panic("Embedded plural data failed to compile: " + err.Error())
		}
		defaultTablesVal = tables
	})
	return defaultTablesVal
}
