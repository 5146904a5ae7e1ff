package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var euthyphro = Alternating{First: "EUTHYPHRO", Second: "SOCRATES"}

func TestAlternating_Parse(t *testing.T) {
	t.Run("extracts blocks in order", func(t *testing.T) {
		text := "EUTHYPHRO: Why have you left the Lyceum?\n\n" +
			"SOCRATES: Not a suit, Euthyphro.\n\n" +
			"EUTHYPHRO: What? I suppose someone has been prosecuting you.\n\n" +
			"SOCRATES: Certainly not."

		units, err := euthyphro.Parse(text)
		require.NoError(t, err)
		require.Len(t, units, 2)
		assert.Equal(t, "EUTHYPHRO: Why have you left the Lyceum?\n\nSOCRATES: Not a suit, Euthyphro.", units[0])
		assert.Equal(t, "EUTHYPHRO: What? I suppose someone has been prosecuting you.\n\nSOCRATES: Certainly not.", units[1])
	})

	t.Run("round trips with the original separators", func(t *testing.T) {
		texts := []string{
			"EUTHYPHRO: a\n\nSOCRATES: b",
			"EUTHYPHRO: a\n\nSOCRATES: b\n\nEUTHYPHRO: c\n\nSOCRATES: d",
			"EUTHYPHRO: a\nstill a\n\nSOCRATES: b\n\nand more from b\n\nEUTHYPHRO: c\n\nSOCRATES: d",
			"EUTHYPHRO: a\n\nmore a\n\nSOCRATES: b",
		}
		for _, text := range texts {
			units, err := euthyphro.Parse(text)
			require.NoError(t, err, text)
			assert.Equal(t, text, strings.Join(units, "\n\n"))
		}
	})

	t.Run("tolerates loose blank lines", func(t *testing.T) {
		cases := map[string]struct {
			text string
			want []string
		}{
			"extra newline": {
				text: "EUTHYPHRO: a\n\n\nSOCRATES: b",
				want: []string{"EUTHYPHRO: a\n\n\nSOCRATES: b"},
			},
			"whitespace-only blank line": {
				text: "EUTHYPHRO: a\n \nSOCRATES: b",
				want: []string{"EUTHYPHRO: a\n \nSOCRATES: b"},
			},
			"indented label": {
				text: "EUTHYPHRO: a\n\n  SOCRATES: b",
				want: []string{"EUTHYPHRO: a\n\n  SOCRATES: b"},
			},
			"loose separator between blocks": {
				text: "EUTHYPHRO: a\n\nSOCRATES: b\n\t\n\nEUTHYPHRO: c\n\nSOCRATES: d",
				want: []string{"EUTHYPHRO: a\n\nSOCRATES: b", "EUTHYPHRO: c\n\nSOCRATES: d"},
			},
		}
		for name, tc := range cases {
			t.Run(name, func(t *testing.T) {
				units, err := euthyphro.Parse(tc.text)
				require.NoError(t, err)
				assert.Equal(t, tc.want, units)
			})
		}
	})

	t.Run("continuation paragraphs stay in their turn", func(t *testing.T) {
		text := "EUTHYPHRO: a\n\nSOCRATES: b\n\nb continued"

		units, err := euthyphro.Parse(text)
		require.NoError(t, err)
		assert.Equal(t, []string{text}, units)
	})

	t.Run("trims surrounding whitespace and CRLF", func(t *testing.T) {
		text := "\r\nEUTHYPHRO: a\r\n\r\nSOCRATES: b\r\n"

		units, err := euthyphro.Parse(text)
		require.NoError(t, err)
		assert.Equal(t, []string{"EUTHYPHRO: a\n\nSOCRATES: b"}, units)
	})

	t.Run("empty input", func(t *testing.T) {
		for _, text := range []string{"", "  \n\n  "} {
			units, err := euthyphro.Parse(text)
			require.NoError(t, err)
			assert.NotNil(t, units)
			assert.Empty(t, units)
		}
	})

	t.Run("rejects malformed alternation", func(t *testing.T) {
		cases := map[string]string{
			"consecutive first speaker":  "EUTHYPHRO: a\n\nEUTHYPHRO: b\n\nSOCRATES: c",
			"consecutive second speaker": "EUTHYPHRO: a\n\nSOCRATES: b\n\nSOCRATES: c",
			"starts with second speaker": "SOCRATES: a\n\nEUTHYPHRO: b",
			"dangling first turn":        "EUTHYPHRO: a\n\nSOCRATES: b\n\nEUTHYPHRO: c",
			"unlabeled preamble":         "Persons of the dialogue\n\nEUTHYPHRO: a\n\nSOCRATES: b",
			"single turn":                "EUTHYPHRO: a",
		}
		for name, text := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := euthyphro.Parse(text)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrGrammarViolation)
			})
		}
	})

	t.Run("violation reports position", func(t *testing.T) {
		_, err := euthyphro.Parse("EUTHYPHRO: a\n\nSOCRATES: b\n\nSOCRATES: c")

		var verr *ViolationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, 2, verr.Index)
		assert.Equal(t, "SOCRATES: c", verr.Excerpt)
		assert.Contains(t, err.Error(), "does not alternate correctly between EUTHYPHRO and SOCRATES")
	})

	t.Run("second variant uses its own labels", func(t *testing.T) {
		crito := Alternating{First: "SOCRATES", Second: "CRITO"}

		units, err := crito.Parse("SOCRATES: Why have you come?\n\nCRITO: I bring news.")
		require.NoError(t, err)
		assert.Len(t, units, 1)

		_, err = crito.Parse("EUTHYPHRO: a\n\nSOCRATES: b")
		assert.ErrorIs(t, err, ErrGrammarViolation)
	})
}

var phaedo = PairedParagraphs{Lead: "ECHECRATES", Reply: "PHAEDO", MergeThreshold: DefaultMergeThreshold}

func TestPairedParagraphs_Parse(t *testing.T) {
	t.Run("merges pair and short trailer", func(t *testing.T) {
		units, err := phaedo.Parse("ECHECRATES: hi\n\nPHAEDO: there\n\nshort")
		require.NoError(t, err)
		assert.Equal(t, []string{"ECHECRATES: hi\nPHAEDO: there short"}, units)
	})

	t.Run("long paragraphs stand alone", func(t *testing.T) {
		long := strings.Repeat("x", 141)

		units, err := phaedo.Parse("ECHECRATES: hi\n\nPHAEDO: there\n\n" + long)
		require.NoError(t, err)
		assert.Equal(t, []string{"ECHECRATES: hi\nPHAEDO: there", long}, units)
	})

	t.Run("threshold boundary merges", func(t *testing.T) {
		exact := strings.Repeat("y", 140)

		units, err := phaedo.Parse("ECHECRATES: hi\n\nPHAEDO: there\n\n" + exact)
		require.NoError(t, err)
		assert.Equal(t, []string{"ECHECRATES: hi\nPHAEDO: there " + exact}, units)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		// 140 runes, 280 bytes.
		greek := strings.Repeat("λ", 140)

		units, err := phaedo.Parse(strings.Repeat("a", 150) + "\n\n" + greek)
		require.NoError(t, err)
		require.Len(t, units, 1)
	})

	t.Run("unpaired reply paragraphs are kept", func(t *testing.T) {
		narration := "PHAEDO: " + strings.Repeat("z", 150)

		units, err := phaedo.Parse("ECHECRATES: hi\n\nPHAEDO: there\n\n" + narration)
		require.NoError(t, err)
		assert.Equal(t, []string{"ECHECRATES: hi\nPHAEDO: there", narration}, units)
	})

	t.Run("short opening paragraph", func(t *testing.T) {
		_, err := phaedo.Parse("short\n\nECHECRATES: hi\n\nPHAEDO: there")
		assert.ErrorIs(t, err, ErrGrammarViolation)
	})

	t.Run("lead without reply", func(t *testing.T) {
		for _, text := range []string{
			"ECHECRATES: hi\n\nsomething else entirely",
			"ECHECRATES: hi\n\nPHAEDO: there\n\nECHECRATES: dangling",
		} {
			_, err := phaedo.Parse(text)
			require.ErrorIs(t, err, ErrGrammarViolation)
			assert.Contains(t, err.Error(), "not a valid ECHECRATES-PHAEDO pair")
		}
	})

	t.Run("extra blank lines", func(t *testing.T) {
		units, err := phaedo.Parse("\n\nECHECRATES: hi\n\n\n\nPHAEDO: there\n \nshort\n\n")
		require.NoError(t, err)
		assert.Equal(t, []string{"ECHECRATES: hi\nPHAEDO: there short"}, units)
	})

	t.Run("empty input", func(t *testing.T) {
		units, err := phaedo.Parse("")
		require.NoError(t, err)
		assert.NotNil(t, units)
		assert.Empty(t, units)
	})

	t.Run("zero threshold falls back to default", func(t *testing.T) {
		g := PairedParagraphs{Lead: "ECHECRATES", Reply: "PHAEDO"}

		units, err := g.Parse(strings.Repeat("a", 141) + "\n\n" + strings.Repeat("b", 140))
		require.NoError(t, err)
		assert.Len(t, units, 1)
	})
}

func TestFlatParagraphs_Parse(t *testing.T) {
	t.Run("one unit per paragraph", func(t *testing.T) {
		units, err := FlatParagraphs{}.Parse("A\n\nB\n\nC")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, units)
	})

	t.Run("trims paragraphs and skips blanks", func(t *testing.T) {
		units, err := FlatParagraphs{}.Parse("  A  \r\n\r\n\r\n B\n\n")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, units)
	})

	t.Run("empty input", func(t *testing.T) {
		units, err := FlatParagraphs{}.Parse("")
		require.NoError(t, err)
		assert.NotNil(t, units)
		assert.Empty(t, units)
	})
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", excerpt("  short  "))

	long := excerpt(strings.Repeat("w", 100))
	assert.True(t, strings.HasSuffix(long, "..."))
	assert.Len(t, long, excerptRunes+3)
}
