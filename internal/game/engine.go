// internal/game/engine.go
//
// Core game engine for a single word-guessing session.
// Responsibilities:
//   - Create new games with a random (or fixed) target word.
//   - Evaluate guesses using the classic two-pass algorithm,
//     with correct duplicate-letter accounting.
//   - Apply input events: append letter, delete letter, submit guess.
//   - Track the state transition: in progress → finished (win only;
//     there is no guess limit, so there is no loss state).
//
// Notes:
//   - Target/allowed word lists are provided by the words package.
//   - All mutations are no-ops once the game is finished; a session is
//     replaced wholesale by a new Game rather than reset in place.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/hadlow/wordlet/internal/words"
)

// ErrLengthMismatch is returned by Evaluate when the guess and target have
// different lengths. The engine keeps Pending bounded to the target length,
// so seeing this out of SubmitGuess means a broken invariant, not bad input.
var ErrLengthMismatch = errors.New("game: guess and target lengths differ")

// New constructs a new game instance.
// If withTarget is empty, a random target is drawn from the words package.
func New(withTarget string) *Game {
	t := withTarget
	if t == "" {
		t = words.RandomTarget()
	}
	return &Game{
		ID:      randomID(),
		Target:  strings.ToLower(t),
		History: []Guess{},
	}
}

// AppendLetter adds one letter to the pending guess.
//
// No-op when:
//   - the game is finished,
//   - the pending guess is already target-length,
//   - c does not lowercase to a–z (the on-screen keyboard only emits
//     letters, so anything else is ignored rather than rejected loudly).
//
// Reports whether the state changed.
func (g *Game) AppendLetter(c rune) bool {
	if g.Finished || len(g.Pending) >= len(g.Target) {
		return false
	}
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if c < 'a' || c > 'z' {
		return false
	}
	g.Pending += string(c)
	return true
}

// DeleteLetter removes the last pending letter.
// No-op when the game is finished or nothing is pending.
// Reports whether the state changed.
func (g *Game) DeleteLetter() bool {
	if g.Finished || len(g.Pending) == 0 {
		return false
	}
	g.Pending = g.Pending[:len(g.Pending)-1]
	return true
}

// SubmitGuess evaluates the pending letters as a guess.
//
// Guesses not present in the allowed word list (including any shorter than
// the target) are rejected silently: pending letters stay put, nothing is
// recorded, and no error is surfaced. An accepted guess is appended to the
// history, pending is cleared, and a winning guess finishes the game.
//
// Returns the recorded guess and whether one was recorded.
func (g *Game) SubmitGuess() (Guess, bool) {
	if g.Finished {
		return Guess{}, false
	}
	if !words.IsAllowed(g.Pending) {
		return Guess{}, false
	}
	res, err := Evaluate(g.Pending, g.Target)
	if err != nil {
		// Pending is bounded to the target length and the allowed list
		// only holds target-length words; unreachable.
		panic(err)
	}
	g.History = append(g.History, res)
	if res.Win {
		g.Finished = true
	}
	g.Pending = ""
	return res, true
}

// Evaluate scores guess against target using the standard two-pass
// algorithm.
//
// Pass 1:
//   - Mark exact-position matches as Correct.
//   - Count remaining (non-matched) target letters by letter index.
//
// Pass 2:
//   - For each non-Correct guess letter: if there is remaining count for
//     that letter, mark InWord and decrement the count; otherwise leave
//     NotInWord.
//
// Exact-position matches always win over count-based matches, and a letter
// appearing more often in the guess than in the target is marked InWord
// only as many times as unconsumed target occurrences exist, leftmost
// first. Pure: no state is read or written.
func Evaluate(guess, target string) (Guess, error) {
	if len(guess) != len(target) {
		return Guess{}, ErrLengthMismatch
	}
	guess = strings.ToLower(guess)
	target = strings.ToLower(target)

	n := len(guess)
	matches := make([]LetterMatch, n)

	// Letter frequency for the non-matched target positions (a–z).
	var remaining [26]int

	// First pass: exact matches, and counts for leftover target letters.
	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			matches[i] = Correct
		} else if j := idx(target[i]); j >= 0 && j < 26 {
			remaining[j]++
		}
	}

	// Second pass: resolve in-word/not-in-word for the rest.
	win := true
	for i := 0; i < n; i++ {
		if matches[i] == Correct {
			continue
		}
		win = false
		if j := idx(guess[i]); j >= 0 && j < 26 && remaining[j] > 0 {
			matches[i] = InWord
			remaining[j]--
		}
	}

	return Guess{Word: guess, Matches: matches, Win: win}, nil
}

// ShareText renders the guess history as an emoji grid, one row per guess,
// suitable for pasting once the game is over.
func (g *Game) ShareText() string {
	var b strings.Builder
	for _, gu := range g.History {
		for _, m := range gu.Matches {
			switch m {
			case Correct:
				b.WriteString("🟩")
			case InWord:
				b.WriteString("🟨")
			default:
				b.WriteString("⬜")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// idx maps a lowercase ASCII letter byte to 0..25.
func idx(b byte) int { return int(b) - 'a' }

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
