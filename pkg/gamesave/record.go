package gamesave

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"
)

const (
	// GameName is stored in every record.
	GameName = "The Whispering Library Escape"

	// DefaultPlayerName is used when no name can be found in the history.
	DefaultPlayerName = "Lysandra_the_Adventurer"

	// TimeLayout formats SaveTime (YYYYMMDD_HHMMSS).
	TimeLayout = "20060102_150405"

	// RestartLine is spoken after every restart.
	RestartLine = "The chamber resets, the door seals once more. Your second attempt begins now!"
)

// Turn is one chat message.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Record is the saved form of a game.
type Record struct {
	Game       string `json:"game"`
	PlayerName string `json:"player_name"`
	SaveTime   string `json:"save_time"`
	TurnsCount int    `json:"turns_count"`
	History    []Turn `json:"history"`
}

// NewRecord builds a record for history saved at t.
func NewRecord(history []Turn, t time.Time) *Record {
	return &Record{
		Game:       GameName,
		PlayerName: PlayerName(history),
		SaveTime:   t.Format(TimeLayout),
		TurnsCount: len(history),
		History:    history,
	}
}

// FileName returns "<player>_<save time>.json".
func (r *Record) FileName() string {
	return r.PlayerName + "_" + r.SaveTime + ".json"
}

// Marshal encodes the record as JSON indented by four spaces.
func (r *Record) Marshal() ([]byte, error) {
	return json.MarshalIndent(r, "", "    ")
}

// PlayerName extracts the player's name from the first user turn that
// offers one. "my name is X, ..." yields X; a short reply of at most three
// words starting with a purely alphabetic word yields that word. Names are
// title-cased. Without a match it returns DefaultPlayerName.
func PlayerName(history []Turn) string {
	const marker = "my name is"

	for _, turn := range history {
		if turn.Role != "user" {
			continue
		}
		content := strings.ToLower(turn.Content)

		if _, after, ok := strings.Cut(content, marker); ok {
			name, _, _ := strings.Cut(after, ",")
			if name = strings.TrimSpace(name); name != "" {
				return sanitize(titleCase(name))
			}
		}

		words := strings.Fields(content)
		if len(words) > 0 && len(words) <= 3 && isAlpha(words[0]) {
			return titleCase(words[0])
		}
	}
	return DefaultPlayerName
}

// titleCase upper-cases the first letter of each run of letters and
// lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// sanitize replaces characters that cannot appear in a file or object name.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
}
