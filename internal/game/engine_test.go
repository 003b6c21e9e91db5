package game

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadlow/wordlet/internal/words"
)

func TestMain(m *testing.M) {
	// SubmitGuess validates against the allowed list, so the embedded
	// word lists must be loaded before the game tests run.
	if err := words.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		target string
		want   []LetterMatch
		win    bool
	}{
		{
			name:   "partial overlap with one displaced letter",
			guess:  "trace",
			target: "crane",
			want:   []LetterMatch{NotInWord, Correct, Correct, InWord, Correct},
		},
		{
			name:   "duplicate letters split between correct and in-word",
			guess:  "babes",
			target: "abbey",
			want:   []LetterMatch{InWord, InWord, Correct, Correct, NotInWord},
		},
		{
			name:   "exact match wins",
			guess:  "speed",
			target: "speed",
			want:   []LetterMatch{Correct, Correct, Correct, Correct, Correct},
			win:    true,
		},
		{
			name:   "excess duplicates are not marked beyond target count",
			guess:  "geese",
			target: "speed",
			want:   []LetterMatch{NotInWord, InWord, Correct, InWord, NotInWord},
		},
		{
			name:   "all letters absent",
			guess:  "lymph",
			target: "crane",
			want:   []LetterMatch{NotInWord, NotInWord, NotInWord, NotInWord, NotInWord},
		},
		{
			name:   "uppercase input is normalized",
			guess:  "CRANE",
			target: "crane",
			want:   []LetterMatch{Correct, Correct, Correct, Correct, Correct},
			win:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.guess, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Matches)
			assert.Equal(t, tt.win, got.Win)
			assert.Equal(t, strings.ToLower(tt.guess), got.Word)

			// Pure and deterministic: a second call agrees exactly.
			again, err := Evaluate(tt.guess, tt.target)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestEvaluateLengthMismatch(t *testing.T) {
	_, err := Evaluate("cat", "crane")
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestEvaluateExactPositionPrecedence(t *testing.T) {
	// The duplicate 'e' at position 2 matches exactly and must be Correct
	// no matter what the other occurrences do.
	got, err := Evaluate("geese", "speed")
	require.NoError(t, err)
	assert.Equal(t, Correct, got.Matches[2])
}

func TestEvaluateLetterCountConservation(t *testing.T) {
	pairs := []struct{ guess, target string }{
		{"geese", "speed"},
		{"babes", "abbey"},
		{"trace", "crane"},
		{"eagle", "elect"},
		{"spell", "hello"},
	}
	for _, p := range pairs {
		got, err := Evaluate(p.guess, p.target)
		require.NoError(t, err)
		for c := byte('a'); c <= 'z'; c++ {
			inTarget := strings.Count(p.target, string(c))
			marked := 0
			for i := range got.Matches {
				if p.guess[i] == c && got.Matches[i] != NotInWord {
					marked++
				}
			}
			assert.LessOrEqual(t, marked, inTarget,
				"%s vs %s: letter %q marked more often than it occurs", p.guess, p.target, string(c))
		}
	}
}

func TestAppendLetterBounds(t *testing.T) {
	g := New("crane")
	for _, c := range "abcdef" {
		g.AppendLetter(c)
	}
	// Sixth letter is ignored: pending never exceeds the target length.
	assert.Equal(t, "abcde", g.Pending)
	assert.False(t, g.AppendLetter('x'))
}

func TestAppendLetterNormalization(t *testing.T) {
	g := New("crane")
	assert.True(t, g.AppendLetter('A'))
	assert.Equal(t, "a", g.Pending)

	// Non-letters are ignored.
	assert.False(t, g.AppendLetter('1'))
	assert.False(t, g.AppendLetter(' '))
	assert.False(t, g.AppendLetter('!'))
	assert.Equal(t, "a", g.Pending)
}

func TestDeleteLetter(t *testing.T) {
	g := New("crane")
	assert.False(t, g.DeleteLetter(), "delete on empty pending is a no-op")

	g.AppendLetter('a')
	g.AppendLetter('b')
	assert.True(t, g.DeleteLetter())
	assert.Equal(t, "a", g.Pending)
}

func typeWord(g *Game, w string) {
	for _, c := range w {
		g.AppendLetter(c)
	}
}

func TestSubmitGuessRejectsUnknownWord(t *testing.T) {
	g := New("crane")
	typeWord(g, "zzzzz")

	_, ok := g.SubmitGuess()
	assert.False(t, ok)
	// Silent rejection: pending stays put, nothing recorded.
	assert.Equal(t, "zzzzz", g.Pending)
	assert.Empty(t, g.History)
	assert.False(t, g.Finished)
}

func TestSubmitGuessRejectsShortPending(t *testing.T) {
	g := New("crane")
	typeWord(g, "cra")
	_, ok := g.SubmitGuess()
	assert.False(t, ok)
	assert.Equal(t, "cra", g.Pending)
}

func TestSubmitGuessRecordsAndClears(t *testing.T) {
	g := New("crane")
	typeWord(g, "trace")

	res, ok := g.SubmitGuess()
	require.True(t, ok)
	assert.Equal(t, "trace", res.Word)
	assert.False(t, res.Win)
	assert.Equal(t, "", g.Pending)
	require.Len(t, g.History, 1)
	assert.Equal(t, res, g.History[0])
	assert.False(t, g.Finished)
}

func TestWinFreezesGame(t *testing.T) {
	g := New("crane")
	typeWord(g, "crane")

	res, ok := g.SubmitGuess()
	require.True(t, ok)
	assert.True(t, res.Win)
	assert.True(t, g.Finished)

	// Everything except a new game is a no-op now.
	assert.False(t, g.AppendLetter('a'))
	assert.False(t, g.DeleteLetter())
	_, ok = g.SubmitGuess()
	assert.False(t, ok)
	assert.Equal(t, "", g.Pending)
	assert.Len(t, g.History, 1)
}

func TestNewDrawsRandomTarget(t *testing.T) {
	g := New("")
	assert.True(t, words.IsTarget(g.Target))
	assert.NotEmpty(t, g.ID)
	assert.Empty(t, g.History)
	assert.False(t, g.Finished)
}

func TestShareText(t *testing.T) {
	g := New("crane")
	typeWord(g, "trace")
	_, ok := g.SubmitGuess()
	require.True(t, ok)
	typeWord(g, "crane")
	_, ok = g.SubmitGuess()
	require.True(t, ok)

	assert.Equal(t, "⬜🟩🟩🟨🟩\n🟩🟩🟩🟩🟩\n", g.ShareText())
}
