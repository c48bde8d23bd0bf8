// Package leaderboard keeps the top five (name, score) pairs across sessions.
//
// The ranking rules are plain functions over []Entry; a Store persists the
// ranked slice. The default store is a flat text file with one "name;score"
// line per entry.
package leaderboard

import (
	"bufio"
	"cmp"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

const (
	// MaxEntries is the number of entries retained.
	MaxEntries = 5
	// MaxNameLength is the longest name accepted from a player, in runes.
	MaxNameLength = 10
	// DefaultName is offered when no name has been entered yet.
	DefaultName = "Player"

	separator = ";"
)

// Entry is one leaderboard line.
type Entry struct {
	Name  string
	Score int
}

// String formats the entry as it is stored on disk.
func (e Entry) String() string {
	return e.Name + separator + strconv.Itoa(e.Score)
}

// Parse reads "name;score" lines. Lines without exactly two fields or with a
// non-integer score are skipped, however long they are. The result is ranked.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if e, ok := parseLine(strings.TrimSuffix(line, "\n")); ok {
			entries = append(entries, e)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return Rank(entries), nil
}

func parseLine(line string) (Entry, bool) {
	parts := strings.Split(strings.TrimRight(line, "\r"), separator)
	if len(parts) != 2 {
		return Entry{}, false
	}
	score, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Entry{}, false
	}
	return Entry{Name: parts[0], Score: score}, true
}

// Format writes entries as "name;score" lines.
func Format(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(e.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Rank returns a copy of entries sorted by descending score and truncated to
// MaxEntries. Equal scores keep their relative order.
func Rank(entries []Entry) []Entry {
	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(ranked) > MaxEntries {
		ranked = ranked[:MaxEntries]
	}
	return ranked
}

// IsHighScore reports whether score earns a place on the board.
func IsHighScore(score int, entries []Entry) bool {
	if score <= 0 {
		return false
	}
	if len(entries) < MaxEntries {
		return true
	}
	lowest := entries[0].Score
	for _, e := range entries[1:] {
		lowest = min(lowest, e.Score)
	}
	return score > lowest
}

// Upsert records score for name and returns the new ranked board.
// Names match case-insensitively; an existing entry is only replaced by a
// strictly greater score. The input slice is not modified.
func Upsert(name string, score int, entries []Entry) []Entry {
	updated := slices.Clone(entries)
	idx := slices.IndexFunc(updated, func(e Entry) bool {
		return strings.EqualFold(e.Name, name)
	})
	switch {
	case idx < 0:
		updated = append(updated, Entry{Name: name, Score: score})
	case score > updated[idx].Score:
		updated[idx] = Entry{Name: name, Score: score}
	}
	return Rank(updated)
}

// NormalizeName turns raw player input into a storable name: separators and
// control characters are dropped, surrounding space trimmed, blank input
// replaced by fallback and the result cut to MaxNameLength runes.
func NormalizeName(input, fallback string) string {
	name := strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || string(r) == separator {
			return -1
		}
		return r
	}, input))
	if name == "" {
		name = fallback
	}
	if name == "" {
		name = DefaultName
	}
	if runes := []rune(name); len(runes) > MaxNameLength {
		name = string(runes[:MaxNameLength])
	}
	return name
}
