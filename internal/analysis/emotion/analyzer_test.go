package emotion

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubScorer struct {
	polarity float64
	err      error
	calls    int
}

func (s *stubScorer) Polarity(string) (float64, error) {
	s.calls++
	return s.polarity, s.err
}

func newTestClassifier(t *testing.T, scorer SentimentScorer) *Classifier {
	t.Helper()
	lexicon, err := NewLexicon()
	require.NoError(t, err)
	return NewClassifier(lexicon, scorer, zaptest.NewLogger(t))
}

func TestClassifyHappyScenario(t *testing.T) {
	scorer, err := NewLexiconScorer()
	require.NoError(t, err)
	classifier := newTestClassifier(t, scorer)

	result := classifier.Classify("I am so happy and excited today!")

	require.Equal(t, Happy, result.Label)
	require.Equal(t, SourceLocal, result.Source)
	// two keyword hits plus the positive-sentiment bonus
	require.Equal(t, 4, result.Scores.Of(Happy))
	require.InDelta(t, 0.8, result.Confidence, 1e-9)
}

func TestClassifyBlankInput(t *testing.T) {
	classifier := newTestClassifier(t, &stubScorer{})

	for _, text := range []string{"", "   ", "\n\t"} {
		result := classifier.Classify(text)
		require.Equal(t, Result{Label: Neutral, Confidence: 0.5, Source: SourceLocal}, result, "text=%q", text)
	}
}

func TestClassifyTieBreaksByDeclarationOrder(t *testing.T) {
	classifier := newTestClassifier(t, nil)

	cases := []struct {
		name string
		text string
		want Label
	}{
		{name: "sad before angry", text: "lonely and furious", want: Sad},
		{name: "happy before anxious", text: "glad but nervous", want: Happy},
		{name: "angry before neutral", text: "mad, meh", want: Angry},
		{name: "anxious before neutral", text: "scared, fine", want: Anxious},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				result := classifier.Classify(tc.text)
				require.Equal(t, tc.want, result.Label)
				require.InDelta(t, 0.2, result.Confidence, 1e-9)
			}
		})
	}
}

func TestClassifySentimentAdjustments(t *testing.T) {
	t.Run("positive boosts happy", func(t *testing.T) {
		classifier := newTestClassifier(t, &stubScorer{polarity: 0.31})
		result := classifier.Classify("nothing much")
		require.Equal(t, Happy, result.Label)
		require.Equal(t, 2, result.Scores.Of(Happy))
		require.Equal(t, 1, result.Scores.Of(Neutral))
	})

	t.Run("negative boosts sad and angry", func(t *testing.T) {
		classifier := newTestClassifier(t, &stubScorer{polarity: -0.5})
		result := classifier.Classify("it is what it is")
		require.Equal(t, Sad, result.Label)
		require.Equal(t, 2, result.Scores.Of(Sad))
		require.Equal(t, 1, result.Scores.Of(Angry))
		require.InDelta(t, 0.4, result.Confidence, 1e-9)
	})

	t.Run("threshold is exclusive", func(t *testing.T) {
		classifier := newTestClassifier(t, &stubScorer{polarity: 0.3})
		result := classifier.Classify("just a sentence")
		require.Equal(t, Happy, result.Label)
		require.Zero(t, result.Confidence)
	})
}

func TestClassifyAllZeroScoresPicksFirstLabel(t *testing.T) {
	classifier := newTestClassifier(t, nil)

	for _, text := range []string{"I went to the store", "what time is it"} {
		result := classifier.Classify(text)
		require.Equal(t, Scores{}, result.Scores, "text=%q", text)
		require.Equal(t, Happy, result.Label, "text=%q", text)
		require.Zero(t, result.Confidence, "text=%q", text)
		require.Equal(t, SourceLocal, result.Source)
	}
}

func TestClassifyScorerFailureFallsBackToKeywords(t *testing.T) {
	scorer := &stubScorer{polarity: 0.9, err: errors.New("boom")}
	classifier := newTestClassifier(t, scorer)

	result := classifier.Classify("I am worried and stressed")

	require.Equal(t, 1, scorer.calls)
	require.Equal(t, Anxious, result.Label)
	require.Zero(t, result.Scores.Of(Happy))
	require.InDelta(t, 0.4, result.Confidence, 1e-9)
}

func TestClassifyConfidenceSaturates(t *testing.T) {
	classifier := newTestClassifier(t, &stubScorer{polarity: 1})

	result := classifier.Classify("happy, joy, great, wonderful, amazing, love")

	require.Equal(t, Happy, result.Label)
	require.Equal(t, 8, result.Scores.Of(Happy))
	require.Equal(t, 1.0, result.Confidence)
}

func TestClassifyIsDeterministicAndConcurrent(t *testing.T) {
	scorer, err := NewLexiconScorer()
	require.NoError(t, err)
	classifier := newTestClassifier(t, scorer)

	text := "I hate this, I'm so frustrated and upset"
	want := classifier.Classify(text)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = classifier.Classify(text)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, want, got)
	}
}

func TestClassifyAlwaysInRange(t *testing.T) {
	scorer, err := NewLexiconScorer()
	require.NoError(t, err)
	classifier := newTestClassifier(t, scorer)

	inputs := []string{
		"", "hello", "I'm fine", "!!!", "😊😊", "sad sad sad sad", "I feel nothing at all",
		"panic fear afraid scared stressed nervous worried anxious",
		"Je suis très heureux", "1234567890",
	}
	for _, text := range inputs {
		result := classifier.Classify(text)
		require.True(t, result.Label.Valid(), "text=%q", text)
		require.GreaterOrEqual(t, result.Confidence, 0.0)
		require.LessOrEqual(t, result.Confidence, 1.0)
	}
}
