package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed targets.txt allowed.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// TargetsList returns the embedded target words (potential answers).
func TargetsList() ([]string, error) {
	return readLines("targets.txt")
}

// AllowedList returns the embedded extra guessable words.
// Targets are merged in by the words package, so this list only needs
// words that are valid guesses but never answers.
func AllowedList() ([]string, error) {
	return readLines("allowed.txt")
}
