// internal/game/hints.go
//
// Keyboard hint aggregation: derives, from the full guess history, the
// strongest match ever observed for each guessed letter. The web client
// colors its on-screen keyboard from this mapping.

package game

// AggregateHints folds the guess history into a letter → strongest-match
// mapping. A letter's status only ever upgrades (NotInWord < InWord <
// Correct): once a letter is known Correct somewhere, a later guess placing
// it elsewhere does not downgrade it, since the letter IS in the word.
// Letters never guessed are absent from the result.
//
// Pure and re-derivable from the history alone; nothing is cached.
func AggregateHints(history []Guess) map[string]LetterMatch {
	hints := make(map[string]LetterMatch)
	for _, g := range history {
		for i := 0; i < len(g.Word) && i < len(g.Matches); i++ {
			letter := string(g.Word[i])
			if prev, ok := hints[letter]; !ok || g.Matches[i] > prev {
				hints[letter] = g.Matches[i]
			}
		}
	}
	return hints
}

// KeyboardHints returns the hint mapping for this game's history.
func (g *Game) KeyboardHints() map[string]LetterMatch {
	return AggregateHints(g.History)
}
