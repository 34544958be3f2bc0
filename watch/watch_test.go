package watch_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dakusan/goplural/execute"
	"github.com/dakusan/goplural/watch"
)

const ordinalRules = `{
	"supplemental": {
		"version": {"_unicodeVersion": "13.0.0", "_cldrVersion": "40"},
		"plurals-type-ordinal": {
			"root": {"pluralRule-count-other": " @integer 0~15, 100, 1000, …"}
		}
	}
}`

const cardinalRules = `{
	"supplemental": {
		"version": {"_unicodeVersion": "13.0.0", "_cldrVersion": "40"},
		"plurals-type-cardinal": {
			"root": {"pluralRule-count-other": " @integer 0~15, 100, 1000, …"},
			"xx": {
				"pluralRule-count-one": "n = 1 @integer 1",
				"pluralRule-count-other": " @integer 0, 2~16, 100, 1000, …"
			}
		}
	}
}`

const cardinalRulesUpdated = `{
	"supplemental": {
		"version": {"_unicodeVersion": "13.0.0", "_cldrVersion": "40"},
		"plurals-type-cardinal": {
			"root": {"pluralRule-count-other": " @integer 0~15, 100, 1000, …"},
			"xx": {
				"pluralRule-count-one": "n = 1 @integer 1",
				"pluralRule-count-other": " @integer 0, 2~16, 100, 1000, …"
			},
			"yy": {
				"pluralRule-count-one": "i = 1 and v = 0 @integer 1",
				"pluralRule-count-other": " @integer 0, 2~16, 100, 1000, … @decimal 0.0~1.5, 10.0, …"
			}
		}
	}
}`

//Drain informative messages until the next directory build comes through
func awaitDirectory(t *testing.T, ret <-chan watch.ReturnData) watch.ReturnData {
	t.Helper()
	deadline := time.After(time.Second * 10)
	for {
		select {
		case data := <-ret:
			switch data.Type {
			case watch.WR_Message:
				continue
			case watch.WR_ProcessedDirectory:
				return data
			default:
				t.Fatalf("Unexpected return type %d (err: %v)", data.Type, data.Err)
			}
		case <-deadline:
			t.Fatal("Timed out waiting for a processed directory result")
		}
	}
}

func TestWatchRebuildsOnRuleFileChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plurals.json"), []byte(cardinalRules), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ordinals.json"), []byte(ordinalRules), 0644))

	settings := &execute.ProcessSettings{InputPath: dir, VerifySamples: true}
	ret := watch.Execute(settings)

	//The directory is built once before the watch begins
	initial := awaitDirectory(t, ret)
	require.NoError(t, initial.Err)
	require.Contains(t, initial.Locales, "xx/cardinal")
	require.Contains(t, initial.Locales, "root/ordinal")
	require.NotContains(t, initial.Locales, "yy/cardinal")

	//A change to the cardinal file rebuilds both dispatch tables
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plurals.json"), []byte(cardinalRulesUpdated), 0644))

	updated := awaitDirectory(t, ret)
	require.NoError(t, updated.Err)
	require.Contains(t, updated.Locales, "yy/cardinal")
	require.Contains(t, updated.Locales, "xx/cardinal")
}
