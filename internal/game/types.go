// internal/game/types.go
//
// Core type definitions for the word-guessing engine.
// Defines:
//   - LetterMatch: per-letter result of a guess (correct/in-word/not-in-word).
//   - Guess: a submitted word plus its evaluation.
//   - Game: state for a single session.

package game

// LetterMatch classifies one letter of a guess against the target word.
// The numeric order is the "strength" order used when aggregating keyboard
// hints: NotInWord < InWord < Correct. A hint may only ever be upgraded.
type LetterMatch int

const (
	// NotInWord: the letter does not occur in the target, or every
	// occurrence is already consumed by stronger matches.
	NotInWord LetterMatch = iota
	// InWord: the letter occurs in the target at a different position.
	InWord
	// Correct: the letter matches the target at this position.
	Correct
)

// String returns the wire form consumed by the web client
// ("correct", "in-word", "not-in-word").
func (m LetterMatch) String() string {
	switch m {
	case Correct:
		return "correct"
	case InWord:
		return "in-word"
	default:
		return "not-in-word"
	}
}

// MarshalJSON encodes the match as its string form.
func (m LetterMatch) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// Guess is one submitted word and its per-letter evaluation.
// Immutable once created.
type Guess struct {
	Word    string        `json:"word"`    // the guessed word (lowercase)
	Matches []LetterMatch `json:"matches"` // one entry per letter
	Win     bool          `json:"win"`     // true iff every match is Correct
}

// Game holds the state of a single game session.
type Game struct {
	ID       string  // Unique game identifier (random hex string).
	Target   string  // The secret word (always lowercase).
	History  []Guess // Evaluated guesses so far, append-only.
	Pending  string  // Letters typed for the guess being composed.
	Finished bool    // True once the target has been guessed.
}
