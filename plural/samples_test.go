package plural_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dakusan/goplural/plural"
)

func samplesFor(t *testing.T, ruleText string) plural.SampleSet {
	t.Helper()
	rs := plural.NewRuleset(map[plural.PluralCategory]string{plural.Other: ruleText})
	set, err := rs.Samples(plural.Other)
	require.NoError(t, err)
	return set
}

func TestSamples(t *testing.T) {
	t.Parallel()

	t.Run("plain values keep their text form", func(t *testing.T) {
		t.Parallel()

		set := samplesFor(t, " @integer 0, 5, 100 @decimal 0.5, 1.0, 10.00")
		require.Equal(t, []string{"0", "5", "100", "0.5", "1.0", "10.00"}, set.Plain)
		require.Empty(t, set.Compact)
	})

	t.Run("integer range expands inclusively", func(t *testing.T) {
		t.Parallel()

		set := samplesFor(t, " @integer 2~5")
		require.Equal(t, []string{"2", "3", "4", "5"}, set.Plain)
	})

	t.Run("decimal range steps at the low bound's scale", func(t *testing.T) {
		t.Parallel()

		set := samplesFor(t, " @decimal 0.7~1.1")
		require.Equal(t, []string{"0.7", "0.8", "0.9", "1.0", "1.1"}, set.Plain)
	})

	t.Run("open-ended markers carry no value", func(t *testing.T) {
		t.Parallel()

		set := samplesFor(t, " @integer 1, 21, …")
		require.Equal(t, []string{"1", "21"}, set.Plain)
	})

	t.Run("compact notation", func(t *testing.T) {
		t.Parallel()

		set := samplesFor(t, " @integer 1c6, 2c6 @decimal 1.0001c3")
		require.Empty(t, set.Plain)
		require.Len(t, set.Compact, 3)
		require.Equal(t, mustDecimal(t, "1"), set.Compact[0].Value)
		require.Equal(t, 6, set.Compact[0].Exponent)
		require.Equal(t, "1c6", set.Compact[0].Text)
		require.Equal(t, mustDecimal(t, "1.0001"), set.Compact[2].Value)
		require.Equal(t, 3, set.Compact[2].Exponent)
	})

	t.Run("no samples yields an empty set", func(t *testing.T) {
		t.Parallel()

		set := samplesFor(t, "n = 1")
		require.Empty(t, set.Plain)
		require.Empty(t, set.Compact)
	})

	t.Run("undefined category is an error", func(t *testing.T) {
		t.Parallel()

		rs := plural.NewRuleset(map[plural.PluralCategory]string{plural.Other: ""})
		_, err := rs.Samples(plural.Few)
		require.Error(t, err)
	})
}

func TestSampleErrors(t *testing.T) {
	t.Parallel()

	for name, ruleText := range map[string]string{
		"bad marker":            " @fraction 1, 2",
		"bad value":             " @integer x",
		"bad range bound":       " @integer 1~x",
		"bounds out of order":   " @integer 5~2",
		"range too large":       " @decimal 0.0000~2.0000",
		"bad compact exponent":  " @integer 1c99",
		"negative compact form": " @integer 1c-1",
	} {
		ruleText := ruleText
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rs := plural.NewRuleset(map[plural.PluralCategory]string{plural.Other: ruleText})
			_, err := rs.Samples(plural.Other)
			require.Error(t, err)
		})
	}
}

func TestConditionText(t *testing.T) {
	t.Parallel()

	rs := plural.NewRuleset(map[plural.PluralCategory]string{
		plural.One:   "i = 1 and v = 0 @integer 1",
		plural.Other: " @integer 0, 2~16, 100",
	})

	text, ok := rs.ConditionText(plural.One)
	require.True(t, ok)
	require.Equal(t, "i = 1 and v = 0", text)

	text, ok = rs.ConditionText(plural.Other)
	require.True(t, ok)
	require.Equal(t, "", text)

	_, ok = rs.ConditionText(plural.Few)
	require.False(t, ok)

	require.Equal(t, []plural.PluralCategory{plural.One, plural.Other}, rs.Categories())
	ruleText, ok := rs.RuleText(plural.One)
	require.True(t, ok)
	require.Equal(t, "i = 1 and v = 0 @integer 1", ruleText)
}
