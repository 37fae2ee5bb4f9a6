package arena

import (
	_ "embed"
	"fmt"
	"strings"

	"chessGo/rules"
)

//go:embed openings.txt
var openingsTxt string

// Openings returns the built-in opening positions as FEN.
func Openings() ([]string, error) {
	return ParseOpenings(openingsTxt)
}

// ParseOpenings turns one opening per line, either a FEN or SAN moves from
// the start position, into FENs. Empty lines and // comments are skipped.
func ParseOpenings(text string) ([]string, error) {
	var result []string
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		fen, err := openingFEN(line)
		if err != nil {
			return nil, fmt.Errorf("opening line %d: %w", i+1, err)
		}
		result = append(result, fen)
	}
	return result, nil
}

func openingFEN(line string) (string, error) {
	if strings.Contains(line, "/") {
		b, err := rules.NewBoard(line)
		if err != nil {
			return "", err
		}
		return b.FEN(), nil
	}
	b, err := rules.NewBoard("")
	if err != nil {
		return "", err
	}
	for _, san := range strings.Fields(line) {
		if _, err := b.ApplySAN(san); err != nil {
			return "", err
		}
	}
	return b.FEN(), nil
}
