package execute_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dakusan/goplural/execute"
	"github.com/dakusan/goplural/plural"
)

//The embedded CLDR rule files double as a full verification corpus
func cldrSettings() *execute.ProcessSettings {
	return &execute.ProcessSettings{
		InputPath:     "../plural/cldr",
		VerifySamples: true,
	}
}

func TestDirectory(t *testing.T) {
	t.Parallel()

	list, err := cldrSettings().Directory()
	require.NoError(t, err)
	require.NotEmpty(t, list)

	t.Run("every entry compiled and verified", func(t *testing.T) {
		for identifier, pl := range list {
			require.NoError(t, pl.Err, identifier)
			require.NotZero(t, pl.Flags&execute.PLF_Rule_Compiled, identifier)
			require.Zero(t, pl.Flags&execute.PLF_Error_DuringProcessing, identifier)
			require.NotZero(t, pl.Flags&(execute.PLF_Samples_Verified|execute.PLF_Samples_None), identifier)
		}
	})

	t.Run("rule families are flagged", func(t *testing.T) {
		require.NotZero(t, list["en/cardinal"].Flags&execute.PLF_Type_Cardinal)
		require.NotZero(t, list["en/ordinal"].Flags&execute.PLF_Type_Ordinal)
	})

	t.Run("region overrides are flagged", func(t *testing.T) {
		require.NotZero(t, list["pt-PT/cardinal"].Flags&execute.PLF_Rule_RegionQualified)
		require.Zero(t, list["pt/cardinal"].Flags&execute.PLF_Rule_RegionQualified)
	})

	t.Run("shared and aliased predicates are flagged", func(t *testing.T) {
		//ru and uk carry identical cardinal rulesets
		require.NotZero(t, list["ru/cardinal"].Flags&execute.PLF_Rule_SharedRule)
		require.NotZero(t, list["uk/cardinal"].Flags&execute.PLF_Rule_SharedRule)
		//Other-only ordinals alias the cardinal root predicate
		require.NotZero(t, list["ar/ordinal"].Flags&execute.PLF_Rule_AliasedToOther)
		require.Zero(t, list["ar/cardinal"].Flags&execute.PLF_Rule_AliasedToOther)
	})

	t.Run("compiled rules are usable", func(t *testing.T) {
		require.Equal(t, plural.One, list["en/cardinal"].Rule.SelectInt64(1))
		require.Equal(t, plural.Few, list["en/ordinal"].Rule.SelectInt64(3))
	})
}

func TestFile(t *testing.T) {
	t.Parallel()

	t.Run("locale in both rule families", func(t *testing.T) {
		t.Parallel()

		list, err := cldrSettings().File("en")
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Contains(t, list, "en/cardinal")
		require.Contains(t, list, "en/ordinal")
	})

	t.Run("locale in only one rule family", func(t *testing.T) {
		t.Parallel()

		list, err := cldrSettings().File("pt-PT")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Contains(t, list, "pt-PT/cardinal")
	})

	t.Run("unknown locale", func(t *testing.T) {
		t.Parallel()

		_, err := cldrSettings().File("zz")
		require.Error(t, err)
		require.Contains(t, err.Error(), "zz")
	})
}

func TestDirectoryFailures(t *testing.T) {
	t.Parallel()

	t.Run("sample that selects the wrong category", func(t *testing.T) {
		t.Parallel()

		settings := &execute.ProcessSettings{InputPath: "testdata/badsample", VerifySamples: true}
		list, err := settings.Directory()
		require.Error(t, err)

		pl := list["xx/cardinal"]
		require.NotNil(t, pl)
		require.Error(t, pl.Err)
		require.NotZero(t, pl.Flags&execute.PLF_Error_DuringProcessing)
		//The bad sample must not fail the healthy locales
		require.NoError(t, list["root/cardinal"].Err)
	})

	t.Run("bad samples pass when verification is off", func(t *testing.T) {
		t.Parallel()

		settings := &execute.ProcessSettings{InputPath: "testdata/badsample", VerifySamples: false}
		list, err := settings.Directory()
		require.NoError(t, err)
		require.Zero(t, list["xx/cardinal"].Flags&(execute.PLF_Samples_Verified|execute.PLF_Samples_None))
	})

	t.Run("version mismatch aborts the build", func(t *testing.T) {
		t.Parallel()

		settings := &execute.ProcessSettings{InputPath: "testdata/badversion", VerifySamples: true}
		list, err := settings.Directory()
		require.Error(t, err)
		require.Contains(t, err.Error(), "Building dispatch tables failed")
		//The entries still exist so the failure can be attributed
		require.Contains(t, list, "root/cardinal")
		require.Zero(t, list["root/cardinal"].Flags&execute.PLF_Rule_Compiled)
	})

	t.Run("missing input path", func(t *testing.T) {
		t.Parallel()

		settings := &execute.ProcessSettings{InputPath: "testdata/does-not-exist"}
		_, err := settings.Directory()
		require.Error(t, err)
	})

	t.Run("rule file in the wrong slot", func(t *testing.T) {
		t.Parallel()

		settings := &execute.ProcessSettings{
			InputPath:    "../plural/cldr",
			CardinalFile: "ordinals.json",
		}
		_, err := settings.Directory()
		require.Error(t, err)
		require.Contains(t, err.Error(), "expected cardinal")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		settings := &execute.ProcessSettings{
			InputPath:    "testdata/yaml",
			CardinalFile: "cardinal.yaml",
			OrdinalFile:  "ordinal.txt",
		}
		_, err := settings.Directory()
		require.Error(t, err)
		require.Contains(t, err.Error(), "txt")
	})
}

func TestDirectoryYAML(t *testing.T) {
	t.Parallel()

	settings := &execute.ProcessSettings{
		InputPath:     "testdata/yaml",
		CardinalFile:  "cardinal.yaml",
		OrdinalFile:   "ordinal.yaml",
		VerifySamples: true,
	}
	list, err := settings.Directory()
	require.NoError(t, err)
	require.Contains(t, list, "xx/cardinal")
	require.NotZero(t, list["xx/cardinal"].Flags&execute.PLF_Samples_Verified)
	require.Equal(t, plural.One, list["xx/cardinal"].Rule.SelectInt64(1))
}

func TestCreateFlagTable(t *testing.T) {
	t.Parallel()

	list := execute.ProcessedLocaleList{
		"bb/cardinal": &execute.ProcessedLocale{
			LocaleIdentifier: "bb/cardinal",
			Flags:            execute.PLF_Type_Cardinal | execute.PLF_Rule_Compiled,
		},
		"aa/ordinal": &execute.ProcessedLocale{
			LocaleIdentifier: "aa/ordinal",
			Flags:            execute.PLF_Type_Ordinal | execute.PLF_Rule_Compiled | execute.PLF_Rule_AliasedToOther,
		},
	}

	rows := list.CreateFlagTable()
	require.Len(t, rows, len(list)+2)

	//Two header rows carry the split 4-letter flag names
	require.Contains(t, rows[0], "Ty")
	require.Contains(t, rows[1], "Ca")

	//Data rows are sorted by locale identifier
	require.True(t, strings.HasPrefix(rows[2], "|aa/ordinal"))
	require.True(t, strings.HasPrefix(rows[3], "|bb/cardinal"))
	require.Contains(t, rows[2], "*")

	//Every row is the same width
	for _, row := range rows[1:] {
		require.Len(t, row, len(rows[0]))
	}
}
