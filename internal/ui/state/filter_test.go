package state

import (
	"testing"

	"github.com/atomicstack/pipeline-console/internal/menu"
)

func detailRows() []menu.Item {
	return []menu.Item{
		{ID: "p1", Label: "program  PurchaseFlow      Flow"},
		{ID: "p2", Label: "program  PurchaseHistoryService  Service"},
		{ID: "d1", Label: "dataset  history           Table"},
		{ID: "s1", Label: "stream   purchaseStream"},
	}
}

func TestSetFilterRemembersAndRestoresCursor(t *testing.T) {
	level := newTestLevel("one", "two", "three")
	level.Cursor = 2
	level.SetFilter("two", len("two"))

	if level.Filter != "two" || level.FilterCursor != 3 {
		t.Fatalf("unexpected filter state %q/%d", level.Filter, level.FilterCursor)
	}
	if len(level.Items) != 1 || level.Items[0].ID != "two" || level.Cursor != 0 {
		t.Fatalf("expected only 'two' under the cursor, got %#v cursor %d", level.Items, level.Cursor)
	}

	level.SetFilter("", 0)
	if level.Cursor != 2 || level.LastCursor != -1 {
		t.Fatalf("expected cursor restored to 2 and memory reset, got %d/%d", level.Cursor, level.LastCursor)
	}
	if len(level.Items) != 3 {
		t.Fatalf("expected all rows back, got %d", len(level.Items))
	}
}

func TestSetFilterClampsCursor(t *testing.T) {
	level := newTestLevel("alpha")
	level.SetFilter("al", 10)
	if level.FilterCursor != 2 {
		t.Fatalf("expected filter cursor clamped to 2, got %d", level.FilterCursor)
	}
	level.SetFilter("al", -4)
	if level.FilterCursor != 0 {
		t.Fatalf("expected filter cursor clamped to 0, got %d", level.FilterCursor)
	}
}

func TestFilterEditing(t *testing.T) {
	level := newTestLevel("alpha")

	if !level.InsertFilterText("ab") || level.Filter != "ab" || level.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", level.Filter, level.FilterCursor)
	}
	if level.InsertFilterText("") {
		t.Fatalf("empty insert should be a no-op")
	}
	level.FilterCursor = 1
	if !level.InsertFilterText("z") || level.Filter != "azb" || level.FilterCursor != 2 {
		t.Fatalf("expected mid insert, got %q/%d", level.Filter, level.FilterCursor)
	}
	if !level.DeleteFilterRuneBackward() || level.Filter != "ab" || level.FilterCursor != 1 {
		t.Fatalf("unexpected state after delete %q/%d", level.Filter, level.FilterCursor)
	}

	level.SetFilter("abc def", len("abc def"))
	if !level.DeleteFilterWordBackward() || level.Filter != "abc " {
		t.Fatalf("expected trailing word removed, got %q", level.Filter)
	}

	level.SetFilter("abc", 0)
	if level.DeleteFilterRuneBackward() || level.DeleteFilterWordBackward() {
		t.Fatalf("deletes at the start must fail")
	}
}

func TestFilterCursorMovement(t *testing.T) {
	level := newTestLevel("one", "two")
	level.SetFilter("one two", len("one two"))

	moves := []struct {
		name string
		move func() bool
		want int
	}{
		{"word back", level.MoveFilterCursorWordBackward, 4},
		{"word forward", level.MoveFilterCursorWordForward, 7},
		{"rune back", level.MoveFilterCursorRuneBackward, 6},
		{"rune forward", level.MoveFilterCursorRuneForward, 7},
		{"start", level.MoveFilterCursorStart, 0},
		{"end", level.MoveFilterCursorEnd, 7},
	}
	for _, m := range moves {
		if !m.move() || level.FilterCursor != m.want {
			t.Fatalf("%s: expected cursor %d, got %d", m.name, m.want, level.FilterCursor)
		}
	}
	if level.MoveFilterCursorEnd() || level.MoveFilterCursorRuneForward() || level.MoveFilterCursorWordForward() {
		t.Fatalf("moves past the end must report no movement")
	}
}

func TestFilterItemsMatchesEveryTerm(t *testing.T) {
	rows := detailRows()

	got := FilterItems(rows, "program purchase")
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p2" {
		t.Fatalf("expected both purchase programs, got %#v", got)
	}
	got = FilterItems(rows, "purchase flow")
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("expected PurchaseFlow only, got %#v", got)
	}
	got = FilterItems(rows, "d1")
	if len(got) != 1 || got[0].ID != "d1" {
		t.Fatalf("expected ID substring match, got %#v", got)
	}
	if got := FilterItems(rows, "  "); len(got) != len(rows) {
		t.Fatalf("blank query should keep every row")
	}
	if got := FilterItems(rows, "nomatch"); len(got) != 0 {
		t.Fatalf("expected no rows, got %#v", got)
	}

	got = FilterItems(rows, "stream")
	got[0].Label = "changed"
	if rows[3].Label == "changed" {
		t.Fatalf("filtering must not alias the input rows")
	}
}

func TestBestMatchIndexTiers(t *testing.T) {
	items := []menu.Item{
		{ID: "one", Label: "First"},
		{ID: "two", Label: "Second"},
		{ID: "three", Label: "Third"},
	}
	cases := []struct {
		query string
		want  int
	}{
		{"Second", 1},
		{"two", 1},
		{"th", 2},
		{"hre", 2},
		{"cond", 1},
		{"fst", 0},
		{"zzz", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := BestMatchIndex(items, c.query); got != c.want {
			t.Fatalf("query %q: expected %d, got %d", c.query, c.want, got)
		}
	}
	if got := BestMatchIndex(nil, "anything"); got != -1 {
		t.Fatalf("expected -1 for no rows, got %d", got)
	}
}

func TestSetFilterLandsOnBestRow(t *testing.T) {
	level := NewLevel("detail", "", detailRows(), nil)
	level.SetFilter("purchasehistory", len("purchasehistory"))
	if len(level.Items) != 1 || level.Items[level.Cursor].ID != "p2" {
		t.Fatalf("expected cursor on PurchaseHistoryService, got %#v at %d", level.Items, level.Cursor)
	}
}
