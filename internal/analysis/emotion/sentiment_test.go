package emotion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexiconScorerPolarity(t *testing.T) {
	scorer, err := NewLexiconScorer()
	require.NoError(t, err)

	cases := []struct {
		name  string
		text  string
		check func(t *testing.T, polarity float64)
	}{
		{
			name: "strongly positive",
			text: "I am so happy and excited today!",
			check: func(t *testing.T, p float64) {
				require.InDelta(t, 6.0/7.0, p, 1e-9)
			},
		},
		{
			name: "strongly negative",
			text: "sad and lonely",
			check: func(t *testing.T, p float64) {
				require.Less(t, p, negativeThreshold)
			},
		},
		{
			name: "inflected forms share a stem",
			text: "loved",
			check: func(t *testing.T, p float64) {
				require.Equal(t, 3.0, p)
			},
		},
		{
			name: "no sentiment words",
			text: "the table is brown",
			check: func(t *testing.T, p float64) {
				require.Zero(t, p)
			},
		},
		{
			name: "empty",
			text: "",
			check: func(t *testing.T, p float64) {
				require.Zero(t, p)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			polarity, err := scorer.Polarity(tc.text)
			require.NoError(t, err)
			tc.check(t, polarity)
		})
	}
}

func TestLexiconScorerIsMonotonic(t *testing.T) {
	scorer, err := NewLexiconScorer()
	require.NoError(t, err)

	neutral, err := scorer.Polarity("today is a day")
	require.NoError(t, err)
	mild, err := scorer.Polarity("today is a good day")
	require.NoError(t, err)
	strong, err := scorer.Polarity("today is a good and wonderful day")
	require.NoError(t, err)

	require.Less(t, neutral, mild)
	require.Less(t, mild, strong)
}

func TestNewLexiconScorerRejectsEmptyLexicon(t *testing.T) {
	_, err := newLexiconScorer(nil)
	require.Error(t, err)
}

func TestTokenize(t *testing.T) {
	require.Equal(t, []string{"i'm", "so", "happy", "today"}, Tokenize("I'm so HAPPY, today!!"))
	require.Empty(t, Tokenize("  ...  "))
}
