//Locale lookup structures built from compiled rule equivalence classes

package plural

import (
	"sort"
	"strings"
)

//regionRule is one region-specific override within a language (“pt-PT” differs from “pt”)
type regionRule struct {
	region string //Uppercase region subtag
	rule   *compiledRule
}

//dispatchEntry resolves a language to its rule. Region overrides are checked first;
//the region-free base rule is the fallback for every other region
type dispatchEntry struct {
	regions []regionRule //Sorted by region, empty for region-insensitive languages
	base    *compiledRule
}

func (e *dispatchEntry) resolve(region string) *compiledRule {
	for _, r := range e.regions {
		if r.region == region {
			return r.rule
		}
	}
	return e.base
}

//dispatchTable maps a base language subtag to its dispatch entry.
//The root locale is stored under the empty string
type dispatchTable map[string]*dispatchEntry

//buildDispatch splits each equivalence-class tag into language and region and indexes the
//rules by language. Region overrides identical to the language's base rule are dropped
func buildDispatch(classes []equivalenceClass) dispatchTable {
	table := make(dispatchTable)
	entryFor := func(language string) *dispatchEntry {
		if e, ok := table[language]; ok {
			return e
		}
		e := &dispatchEntry{}
		table[language] = e
		return e
	}

	for _, class := range classes {
		for _, tag := range class.tags {
			if idx := strings.IndexByte(tag, '-'); idx >= 0 {
				e := entryFor(tag[:idx])
				e.regions = append(e.regions, regionRule{region: strings.ToUpper(tag[idx+1:]), rule: class.rule})
			} else {
				entryFor(tag).base = class.rule
			}
		}
	}

	for _, e := range table {
		kept := e.regions[:0]
		for _, r := range e.regions {
			if r.rule != e.base {
				kept = append(kept, r)
			}
		}
		e.regions = kept
		sort.Slice(e.regions, func(i, j int) bool { return e.regions[i].region < e.regions[j].region })
	}
	return table
}

//lookup resolves a language/region pair to its compiled rule, or nil when the language has
//no rule data. “root” and “und” are aliases for the root locale
func (t dispatchTable) lookup(language, region string) *compiledRule {
	language = strings.ToLower(language)
	if language == "root" || language == "und" {
		language = ""
	}
	e, ok := t[language]
	if !ok {
		return nil
	}
	return e.resolve(strings.ToUpper(region))
}

//languages returns every language subtag the table has rules for, sorted, root included as ""
func (t dispatchTable) languages() []string {
	ret := make([]string, 0, len(t))
	for language := range t {
		ret = append(ret, language)
	}
	sort.Strings(ret)
	return ret
}
