package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const (
	panelMaxDisplayLines = 20  // used by the inline (vertical) panel only
	panelMinWidth        = 40  // minimum cols for the side panel; below this no split
	panelFraction        = 0.5 // fraction of total width given to the side panel
)

var (
	panelBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	panelScrollStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// hasSidePanel reports whether the inspector panel is drawn on the right
// rather than inline below the items.
func (m *Model) hasSidePanel() bool {
	if m.activePanel() == nil {
		return false
	}
	return m.panelWidth() > 0
}

// panelWidth returns the width of the right-hand panel, or 0 when the
// terminal is too narrow to split.
func (m *Model) panelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * panelFraction)
	if w < panelMinWidth {
		return 0
	}
	return w
}

func (m *Model) menuColumnWidth() int {
	return m.width - m.panelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.menuHeader()
	if m.mode == ModePreferencesForm && m.prefsForm != nil {
		return m.viewPreferencesFormWithHeader(header)
	}
	if m.hasSidePanel() {
		return m.viewSideBySide(header)
	}
	return m.viewVertical(header)
}

func (m *Model) itemLines(width int) []styledLine {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	m.syncViewport(current)
	start := 0
	displayItems := current.Items
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(displayItems) > maxItems {
		start = current.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(displayItems) {
			start = len(displayItems) - maxItems
			if start < 0 {
				start = 0
			}
			current.ViewportOffset = start
		}
		displayItems = displayItems[start : start+maxItems]
	}
	if len(current.Items) == 0 {
		msg := "(no entries)"
		if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		} else if panel := m.activePanel(); panel != nil && panel.loading {
			msg = "Loading…"
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	lines := make([]styledLine, 0, len(displayItems))
	for i, item := range displayItems {
		lines = append(lines, m.buildItemLine(item.ID, item.Label, start+i, current, width))
	}
	return lines
}

// statusLines are the info, loading, notice, backend and footer rows drawn
// under the items. Each group is preceded by a blank row.
func (m *Model) statusLines() []styledLine {
	lines := []styledLine{}
	if m.loading {
		label := m.pendingLabel
		if label == "" {
			label = m.pendingID
		}
		lines = append(lines, styledLine{}, styledLine{text: fmt.Sprintf("Loading %s…", label), style: styles.Loading})
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if msg := m.board.Message(); msg != "" {
		lines = append(lines, styledLine{}, styledLine{text: msg, style: styles.Success})
	}
	if warn, msg := m.hasBackendIssue(); warn {
		lines = append(lines, styledLine{}, styledLine{text: fmt.Sprintf("Backend: %s", msg), style: styles.Warning})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: m.footerText(), style: styles.Footer})
	}
	return lines
}

func (m *Model) footerText() string {
	if current := m.currentLevel(); current != nil && current.ID == levelDetail {
		return "↑/↓ move  ctrl+d delete  ctrl+p prefs  ctrl+r start  ctrl+x stop  esc back"
	}
	return "↑/↓ move  enter select  tab mark  backspace clear  esc back  ctrl+c quit"
}

func (m *Model) bottomBar() string {
	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	promptText, _ := m.filterPrompt()
	bottomLines := []styledLine{
		statusLine,
		{text: promptText},
	}
	return renderLines(applyWidth(bottomLines, m.width))
}

// viewVertical is the single-column layout with the inspector panel inline
// below the items.
func (m *Model) viewVertical(header string) string {
	lines := make([]styledLine, 0, 16)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	lines = append(lines, m.itemLines(m.width)...)
	if panel := m.activePanel(); shouldRenderPanel(panel) {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: panelTitleText(panel), style: styles.PanelTitle})
		if panel.err != "" {
			for _, line := range wrapText(panel.err, m.width) {
				lines = append(lines, styledLine{text: line, style: styles.Error})
			}
		} else {
			for _, line := range panelDisplayLines(panel) {
				lines = append(lines, styledLine{text: line, style: styles.PanelBody})
			}
		}
	}
	lines = append(lines, m.statusLines()...)
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines) + "\n" + m.bottomBar()
}

// viewSideBySide renders the items on the left and the inspector panel on
// the right.
func (m *Model) viewSideBySide(header string) string {
	menuW := m.menuColumnWidth()
	panelW := m.panelWidth()

	const bottomBarRows = 2

	contentLines := make([]styledLine, 0, 16)
	if header != "" {
		contentLines = append(contentLines, styledLine{text: header, style: styles.Header})
	}
	contentLines = append(contentLines, m.itemLines(menuW)...)
	contentLines = append(contentLines, m.statusLines()...)

	panelH := m.height - bottomBarRows
	if panelH < 1 {
		panelH = 1
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}
	contentLines = applyWidth(contentLines, menuW)
	leftStr := renderLines(contentLines)

	// Pad every row to menuW visible columns so the panel stays flush right.
	leftRows := strings.Split(leftStr, "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > menuW {
			leftRows[i] = truncate.StringWithTail(row, uint(menuW-1), "…")
		} else if w < menuW {
			leftRows[i] = row + strings.Repeat(" ", menuW-w)
		}
	}
	leftStr = strings.Join(leftRows, "\n")

	rightStr := m.renderPanel(m.activePanel(), panelW, panelH)
	topSection := lipgloss.JoinHorizontal(lipgloss.Top, leftStr, rightStr)
	return topSection + "\n" + m.bottomBar()
}

// buildItemLine constructs a single styledLine for a menu item. When width is
// positive the text is padded so the selected background spans the column.
func (m *Model) buildItemLine(id, label string, idx int, current *level, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	selectDisplay := ""
	if current.MultiSelect {
		mark := " "
		if current.IsSelected(id) {
			mark = "✓"
		}
		selectDisplay = fmt.Sprintf("[%s] ", mark)
	}
	if idx == current.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + selectDisplay + label
	if width > 0 {
		if pad := width - lipgloss.Width(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

// renderPanel builds the bordered inspector box with exactly height rows and
// totalWidth columns.
func (m *Model) renderPanel(panel *panelData, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleLabel := "Inspector"
	scrollInfo := ""
	var contentLines []string
	var errLine string

	if panel != nil {
		if lbl := strings.TrimSpace(panel.title); lbl != "" {
			titleLabel = lbl
		}
		switch {
		case panel.err != "":
			errLine = panel.err
		case len(panel.lines) > 0:
			maxOffset := len(panel.lines) - innerH
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.panelScroll > maxOffset {
				m.panelScroll = maxOffset
			}
			if m.panelScroll < 0 {
				m.panelScroll = 0
			}
			end := m.panelScroll + innerH
			if end > len(panel.lines) {
				end = len(panel.lines)
			}
			contentLines = panel.lines[m.panelScroll:end]
			if len(panel.lines) > innerH {
				scrollInfo = fmt.Sprintf(" %d/%d ", m.panelScroll+len(contentLines), len(panel.lines))
			}
		case panel.loading:
			contentLines = []string{"Loading…"}
		}
	}

	titleSeg := " " + titleLabel + " "
	scrollSeg := scrollInfo
	dashes := totalWidth - 4 - lipgloss.Width(titleSeg) - lipgloss.Width(scrollSeg)
	if dashes < 0 {
		scrollSeg = ""
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := panelBorderStyle.Render(tlc+hz) +
		styles.PanelTitle.Render(titleSeg) +
		panelBorderStyle.Render(strings.Repeat(hz, dashes)) +
		panelScrollStyle.Render(scrollSeg) +
		panelBorderStyle.Render(hz+trc)
	bottomLine := panelBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)

	bodyStyle := styles.PanelBody
	if errLine != "" {
		bodyStyle = styles.Error
		contentLines = wrapText(errLine, innerW)
	}

	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(contentLines) {
			content = contentLines[i]
		}
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content += strings.Repeat(" ", innerW-w)
		}
		if bodyStyle != nil {
			content = bodyStyle.Render(content)
		}
		rows = append(rows, panelBorderStyle.Render(vt)+content+panelBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

// handleMouseMsg scrolls the side panel with the mouse wheel.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if !m.hasSidePanel() {
		return nil
	}
	panel := m.activePanel()
	if panel == nil || panel.loading {
		return nil
	}
	innerH := m.height - 4
	if innerH < 1 {
		innerH = 1
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.panelScroll -= 3
		if m.panelScroll < 0 {
			m.panelScroll = 0
		}
	case tea.MouseButtonWheelDown:
		maxOffset := len(panel.lines) - innerH
		if maxOffset < 0 {
			maxOffset = 0
		}
		m.panelScroll += 3
		if m.panelScroll > maxOffset {
			m.panelScroll = maxOffset
		}
	}
	return nil
}

func (m *Model) menuHeader() string {
	segments := m.headerSegments()
	if len(segments) == 0 {
		return ""
	}
	return strings.Join(segments, menuHeaderSeparator)
}

func (m *Model) headerSegments() []string {
	depth := len(m.stack)
	if depth == 0 {
		return nil
	}
	root := strings.TrimSpace(m.rootTitle)
	if root == "" {
		root = defaultRootTitle
	}
	if ns := m.namespaces.Current(); ns != "" {
		root = fmt.Sprintf("%s [%s]", root, ns)
	}
	if depth == 1 {
		return []string{root}
	}
	segments := make([]string, 0, depth)
	if m.rootMenuID != "" {
		segments = append(segments, root)
	}
	for i := 1; i < depth; i++ {
		segment := headerSegmentForLevel(m.stack[i])
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}
	if len(segments) == 0 {
		return []string{root}
	}
	return segments
}

// headerSegmentForLevel names a level in the breadcrumb. Levels without a
// registry node carry the entity they show in their title.
func headerSegmentForLevel(l *level) string {
	if l == nil {
		return ""
	}
	if l.Node == nil {
		if title := strings.TrimSpace(l.Title); title != "" {
			return title
		}
	}
	candidate := strings.TrimSpace(l.ID)
	if candidate == "" {
		candidate = strings.TrimSpace(l.Title)
	}
	if candidate == "" {
		return ""
	}
	if idx := strings.LastIndex(candidate, ":"); idx >= 0 {
		candidate = candidate[idx+1:]
	}
	candidate = headerSegmentCleaner.Replace(candidate)
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ""
	}
	fields := strings.Fields(strings.ToLower(candidate))
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

func shouldRenderPanel(data *panelData) bool {
	if data == nil {
		return false
	}
	if data.err != "" {
		return true
	}
	if len(data.lines) > 0 {
		return true
	}
	return data.loading
}

func panelTitleText(data *panelData) string {
	label := strings.TrimSpace(data.title)
	if label == "" {
		label = "(unknown)"
	}
	status := ""
	if data.loading && data.err == "" {
		status = " (loading…)"
	}
	return label + status
}

func panelDisplayLines(data *panelData) []string {
	lines := data.lines
	if len(lines) == 0 {
		if data.loading {
			return []string{"Loading…"}
		}
		return []string{}
	}
	if panelMaxDisplayLines > 0 && len(lines) > panelMaxDisplayLines {
		return lines[:panelMaxDisplayLines]
	}
	return lines
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: error/status + filter prompt
	if header := m.menuHeader(); header != "" {
		used++
	}
	used += len(m.statusLines())
	// The side panel has its own column; only the inline panel takes rows.
	if !m.hasSidePanel() {
		if panel := m.activePanel(); shouldRenderPanel(panel) {
			used += 2 // blank separator + title line
			if panel.err != "" {
				used++
			} else {
				used += len(panelDisplayLines(panel))
			}
		}
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

// wrapText breaks s at word boundaries to fit width, hard-wrapping words
// longer than a row.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	return strings.Split(wrap.String(wordwrap.String(s, width), width), "\n")
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = styledLine{
			text:          truncateText(line.text, width),
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText cuts text to width display columns, ending with an ellipsis.
func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	if lipgloss.Width(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
