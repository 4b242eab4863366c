package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/atomicstack/pipeline-console/internal/browser"
	"github.com/atomicstack/pipeline-console/internal/format/table"
)

const connectionTypeKafka = "kafka"

func loadConnectionsMenu(ctx Context) ([]Item, error) {
	return ConnectionItems(ctx.Connections), nil
}

func ConnectionItems(conns []api.Connection) []Item {
	if len(conns) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(conns))
	ids := make([]string, 0, len(conns))
	for _, conn := range conns {
		name := conn.Name
		if name == "" {
			name = conn.ID
		}
		rows = append(rows, []string{name, strings.ToLower(conn.Type), conn.ID})
		ids = append(ids, conn.ID)
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft})
	items := make([]Item, len(aligned))
	for i, label := range aligned {
		items[i] = Item{ID: ids[i], Label: strings.TrimRight(label, " ")}
	}
	return items
}

// BrowseConnectionAction opens the topic browser for a Kafka connection.
// Other connection types have no browser.
func BrowseConnectionAction(ctx Context, item Item) tea.Cmd {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid connection selection")} }
	}
	connType := ""
	for _, conn := range ctx.Connections {
		if conn.ID == id {
			connType = strings.ToLower(conn.Type)
			break
		}
	}
	if connType != connectionTypeKafka {
		return func() tea.Msg {
			return ActionResult{Err: fmt.Errorf("browsing %q connections is not supported", connType)}
		}
	}
	return func() tea.Msg {
		return BrowseMsg{Kind: browser.KindKafka, SourceID: id, Label: item.Label}
	}
}

// BrowseFilesAction switches to the file browser.
func BrowseFilesAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		return BrowseMsg{Kind: browser.KindFile, SourceID: "/", Label: item.Label}
	}
}

func loadTablesMenu(ctx Context) ([]Item, error) {
	return TableItems(ctx.Tables), nil
}

// TableItems lists explorable tables as database.table.
func TableItems(tables []api.Table) []Item {
	items := make([]Item, 0, len(tables))
	for _, t := range tables {
		id := t.Table
		if t.Database != "" {
			id = t.Database + "." + t.Table
		}
		items = append(items, Item{ID: id, Label: id})
	}
	return items
}

// SelectTablesAction reports the chosen tables. Multiple selections arrive
// joined by newlines.
func SelectTablesAction(ctx Context, item Item) tea.Cmd {
	ids := splitIDs(item.ID)
	if len(ids) == 0 {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid table selection")} }
	}
	return func() tea.Msg {
		return ActionResult{Info: fmt.Sprintf("Selected %d table(s): %s", len(ids), strings.Join(ids, ", "))}
	}
}

func splitIDs(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == '\n' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
