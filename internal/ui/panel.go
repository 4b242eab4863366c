package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/pipeline-console/internal/entity"
)

// panelData is the inspector content shown next to (or below) the items of
// the detail and topic levels.
type panelData struct {
	title   string
	lines   []string
	err     string
	loading bool
}

func (m *Model) activePanel() *panelData {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	switch current.ID {
	case levelDetail:
		return m.detailPanel(current.Title)
	case levelTopics:
		return m.topicsPanel(current.Title)
	}
	return nil
}

func (m *Model) detailPanel(appID string) *panelData {
	d := m.details.Current()
	if d.ID != "" {
		appID = d.ID
	}
	panel := &panelData{title: appID}
	switch {
	case d.Loading:
		panel.loading = true
	case d.Status == entity.StatusNotFound:
		panel.err = fmt.Sprintf("Application %s not found in namespace %s.", appID, d.Namespace)
	case d.Status == entity.StatusError && d.Err != nil:
		panel.err = fmt.Sprintf("Error: %v", d.Err)
	case d.ID == "":
		panel.loading = true
	default:
		panel.lines = detailLines(d.Detail, len(m.tables.Entries()))
	}
	return panel
}

func detailLines(d entity.Detail, tables int) []string {
	lines := []string{fmt.Sprintf("Name: %s", d.Name)}
	if d.Description != "" {
		lines = append(lines, fmt.Sprintf("Description: %s", d.Description))
	}
	if d.Artifact.Name != "" {
		artifact := strings.TrimSpace(d.Artifact.Name + " " + d.Artifact.Version)
		if d.Artifact.Scope != "" {
			artifact = fmt.Sprintf("%s (%s)", artifact, strings.ToLower(d.Artifact.Scope))
		}
		lines = append(lines, fmt.Sprintf("Artifact: %s", artifact))
	}
	lines = append(lines,
		fmt.Sprintf("Programs: %d  Datasets: %d  Streams: %d", len(d.Programs), len(d.Datasets), len(d.Streams)),
		fmt.Sprintf("Explorable tables: %d", tables),
		"",
		"Properties:",
	)
	if len(d.Properties) == 0 {
		return append(lines, "  (none)")
	}
	return append(lines, propertyLines(d.Properties)...)
}

func propertyLines(props map[string]string) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("  %s=%s", k, props[k]))
	}
	return out
}

func (m *Model) topicsPanel(connectionID string) *panelData {
	panel := &panelData{title: connectionID}
	if m.selector == nil {
		return panel
	}
	kafka := m.selector.Store().State().Kafka
	if kafka.ConnectionID != "" {
		panel.title = kafka.ConnectionID
	}
	switch {
	case kafka.Loading:
		panel.loading = true
	case kafka.Err != nil:
		panel.err = fmt.Sprintf("Error (%s): %v", kafka.ErrStage, kafka.Err)
	default:
		if name := kafka.Info.Name(); name != "" {
			panel.lines = append(panel.lines, fmt.Sprintf("Connection: %s", name))
		}
		if t := kafka.Info.Field("type"); t != "" {
			panel.lines = append(panel.lines, fmt.Sprintf("Type: %s", strings.ToLower(t)))
		}
		panel.lines = append(panel.lines, fmt.Sprintf("Topics: %d", len(kafka.Topics)))
	}
	return panel
}
