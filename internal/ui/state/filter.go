package state

import (
	"strings"
	"unicode"

	"github.com/atomicstack/pipeline-console/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter replaces the filter query and places the filter cursor. Entering
// a filter remembers the row cursor; clearing it restores that row.
func (l *Level) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	wasFiltering := strings.TrimSpace(l.Filter) != ""
	l.Filter = query
	l.FilterCursor = clamp(cursor, 0, len([]rune(query)))

	switch {
	case trimmed != "":
		if !wasFiltering {
			l.LastCursor = l.Cursor
		}
		l.Cursor = 0
		l.applyFilter()
		if idx := BestMatchIndex(l.Items, trimmed); idx >= 0 {
			l.Cursor = idx
		}
	case wasFiltering:
		restore := l.LastCursor
		l.applyFilter()
		if restore >= 0 && restore < len(l.Items) {
			l.Cursor = restore
		} else if len(l.Items) > 0 {
			l.Cursor = len(l.Items) - 1
		}
		l.LastCursor = -1
	default:
		l.applyFilter()
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 || l.Cursor >= n {
		l.Cursor = n - 1
	}
	if l.ViewportOffset >= n {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the filter cursor as a rune offset within Filter.
func (l *Level) FilterCursorPos() int {
	return clamp(l.FilterCursor, 0, len([]rune(l.Filter)))
}

// editFilter applies edit to the filter runes at the cursor. edit returns
// the new runes and cursor, or ok=false to leave the filter untouched.
func (l *Level) editFilter(edit func(runes []rune, pos int) ([]rune, int, bool)) bool {
	runes, pos, ok := edit([]rune(l.Filter), l.FilterCursorPos())
	if !ok {
		return false
	}
	l.SetFilter(string(runes), pos)
	return true
}

// moveFilterCursor moves the cursor to the position step picks.
func (l *Level) moveFilterCursor(step func(runes []rune, pos int) int) bool {
	pos := l.FilterCursorPos()
	next := step([]rune(l.Filter), pos)
	if next == pos {
		return false
	}
	l.FilterCursor = next
	return true
}

// wordStart is the start of the word ending at or before pos, skipping
// trailing spaces first.
func wordStart(runes []rune, pos int) int {
	for pos > 0 && unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

// wordEnd is the start of the next word after pos.
func wordEnd(runes []rune, pos int) int {
	for pos < len(runes) && !unicode.IsSpace(runes[pos]) {
		pos++
	}
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}

func (l *Level) InsertFilterText(text string) bool {
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		insert := []rune(text)
		if len(insert) == 0 {
			return nil, 0, false
		}
		out := make([]rune, 0, len(runes)+len(insert))
		out = append(append(append(out, runes[:pos]...), insert...), runes[pos:]...)
		return out, pos + len(insert), true
	})
}

func (l *Level) DeleteFilterRuneBackward() bool {
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		if pos == 0 {
			return nil, 0, false
		}
		return append(runes[:pos-1], runes[pos:]...), pos - 1, true
	})
}

func (l *Level) DeleteFilterWordBackward() bool {
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		start := wordStart(runes, pos)
		if start == pos {
			return nil, 0, false
		}
		return append(runes[:start], runes[pos:]...), start, true
	})
}

func (l *Level) MoveFilterCursorStart() bool {
	return l.moveFilterCursor(func([]rune, int) int { return 0 })
}

func (l *Level) MoveFilterCursorEnd() bool {
	return l.moveFilterCursor(func(runes []rune, _ int) int { return len(runes) })
}

func (l *Level) MoveFilterCursorWordBackward() bool {
	return l.moveFilterCursor(wordStart)
}

func (l *Level) MoveFilterCursorWordForward() bool {
	return l.moveFilterCursor(wordEnd)
}

func (l *Level) MoveFilterCursorRuneBackward() bool {
	return l.moveFilterCursor(func(_ []rune, pos int) int { return max(pos-1, 0) })
}

func (l *Level) MoveFilterCursorRuneForward() bool {
	return l.moveFilterCursor(func(runes []rune, pos int) int { return min(pos+1, len(runes)) })
}

// FilterItems keeps the rows matching every whitespace-separated term of
// query, in display order. A term matches when it fuzzy-matches the label or
// is a substring of the ID. Detail rows are aligned columns (type, name,
// kind), so "program purchase" narrows to programs named like purchase.
func FilterItems(items []menu.Item, query string) []menu.Item {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return CloneItems(items)
	}
	filtered := make([]menu.Item, 0, len(items))
	for _, item := range items {
		if matchesAll(item, terms) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func matchesAll(item menu.Item, terms []string) bool {
	id := strings.ToLower(item.ID)
	for _, term := range terms {
		if fuzzy.MatchNormalizedFold(term, item.Label) {
			continue
		}
		if strings.Contains(id, strings.ToLower(term)) {
			continue
		}
		return false
	}
	return true
}

// match tiers for BestMatchIndex, best first.
const (
	tierExact = iota
	tierLabelPrefix
	tierIDPrefix
	tierIDContains
	tierLabelContains
	tierNone
)

func matchTier(item menu.Item, query, lower string) int {
	label := strings.ToLower(item.Label)
	id := strings.ToLower(item.ID)
	switch {
	case strings.EqualFold(item.Label, query) || strings.EqualFold(item.ID, query):
		return tierExact
	case strings.HasPrefix(label, lower):
		return tierLabelPrefix
	case strings.HasPrefix(id, lower):
		return tierIDPrefix
	case strings.Contains(id, lower):
		return tierIDContains
	case strings.Contains(label, lower):
		return tierLabelContains
	}
	return tierNone
}

// BestMatchIndex picks the row the cursor should land on for query: the
// first row of the best literal tier, else the closest fuzzy label match,
// else the first row. It returns -1 only for an empty list.
func BestMatchIndex(items []menu.Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	best, bestTier := 0, tierNone
	for i, item := range items {
		if tier := matchTier(item, trimmed, lower); tier < bestTier {
			best, bestTier = i, tier
		}
	}
	if bestTier != tierNone {
		return best
	}

	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	closest := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < closest.Distance ||
			(rank.Distance == closest.Distance && rank.OriginalIndex < closest.OriginalIndex) {
			closest = rank
		}
	}
	return closest.OriginalIndex
}
