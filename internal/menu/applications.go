package menu

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/atomicstack/pipeline-console/internal/entity"
	"github.com/atomicstack/pipeline-console/internal/format/table"
	"github.com/atomicstack/pipeline-console/internal/logging/events"
	"github.com/atomicstack/pipeline-console/internal/notice"
)

func loadApplicationsMenu(ctx Context) ([]Item, error) {
	return ApplicationItems(ctx.Apps), nil
}

// ApplicationItems renders the namespace application list as an aligned
// table keyed by application name.
func ApplicationItems(apps []api.AppSummary) []Item {
	if len(apps) == 0 {
		return nil
	}
	sorted := append([]api.AppSummary(nil), apps...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	rows := make([][]string, 0, len(sorted))
	ids := make([]string, 0, len(sorted))
	for _, app := range sorted {
		artifact := app.Artifact.Name
		if app.Artifact.Version != "" {
			artifact = fmt.Sprintf("%s %s", artifact, app.Artifact.Version)
		}
		rows = append(rows, []string{app.Name, artifact, app.Description})
		ids = append(ids, app.Name)
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft})
	items := make([]Item, len(aligned))
	for i, label := range aligned {
		items[i] = Item{ID: ids[i], Label: strings.TrimRight(label, " ")}
	}
	return items
}

func OpenApplicationAction(ctx Context, item Item) tea.Cmd {
	target := strings.TrimSpace(item.ID)
	if target == "" {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid application selection")} }
	}
	return func() tea.Msg {
		return OpenDetailMsg{Namespace: ctx.Namespace, AppID: target, Label: target}
	}
}

// DetailItems lists the programs, datasets and streams of d. Item IDs are the
// per-load tokens so list keys stay stable while the detail is shown.
func DetailItems(d entity.Detail) []Item {
	total := len(d.Programs) + len(d.Datasets) + len(d.Streams)
	if total == 0 {
		return nil
	}
	rows := make([][]string, 0, total)
	ids := make([]string, 0, total)
	for _, p := range d.Programs {
		rows = append(rows, []string{entity.TypeProgram, p.Name, p.Type})
		ids = append(ids, p.Token)
	}
	for _, ds := range d.Datasets {
		rows = append(rows, []string{ds.EntityID.Entity, ds.Name, ds.Type})
		ids = append(ids, ds.Token)
	}
	for _, s := range d.Streams {
		rows = append(rows, []string{s.EntityID.Entity, s.Name, ""})
		ids = append(ids, s.Token)
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft})
	items := make([]Item, len(aligned))
	for i, label := range aligned {
		items[i] = Item{ID: ids[i], Label: strings.TrimRight(label, " ")}
	}
	return items
}

// ProgramForItem resolves a detail item back to its program.
func ProgramForItem(d entity.Detail, itemID string) (entity.ProgramRef, bool) {
	for _, p := range d.Programs {
		if p.Token == itemID {
			return p, true
		}
	}
	return entity.ProgramRef{}, false
}

// DeleteApplicationCommand deletes appID. Success routes home.
func DeleteApplicationCommand(ctx Context, appID string) tea.Cmd {
	return func() tea.Msg {
		result := ActionResult{
			Action:     notice.ActionDelete,
			EntityType: entity.TypeApplication,
			Namespace:  ctx.Namespace,
			Target:     appID,
		}
		if ctx.API == nil {
			result.Err = fmt.Errorf("delete %s: no platform client", appID)
			return result
		}
		c, cancel := actionContext()
		defer cancel()
		if err := ctx.API.DeleteApp(c, ctx.Namespace, appID); err != nil {
			result.Err = fmt.Errorf("delete %s: %w", appID, err)
		}
		return result
	}
}

// ProgramCommand starts or stops program of appID.
func ProgramCommand(ctx Context, action notice.Action, appID string, program entity.ProgramRef) tea.Cmd {
	return func() tea.Msg {
		result := ActionResult{
			Action:     action,
			EntityType: entity.TypeProgram,
			Namespace:  ctx.Namespace,
			Target:     fmt.Sprintf("%s.%s", appID, program.Name),
		}
		if ctx.API == nil {
			result.Err = fmt.Errorf("%s %s: no platform client", action, result.Target)
			return result
		}
		c, cancel := actionContext()
		defer cancel()
		var err error
		switch action {
		case notice.ActionStart:
			err = ctx.API.StartProgram(c, ctx.Namespace, appID, program.Type, program.Name)
		case notice.ActionStop:
			err = ctx.API.StopProgram(c, ctx.Namespace, appID, program.Type, program.Name)
		default:
			err = fmt.Errorf("unsupported program action %q", action)
		}
		if err != nil {
			result.Err = fmt.Errorf("%s %s: %w", action, result.Target, err)
		}
		return result
	}
}

// PreferencesAction opens the preferences form for appID.
func PreferencesAction(ctx Context, appID string, current map[string]string) tea.Cmd {
	target := strings.TrimSpace(appID)
	if target == "" {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid application target")} }
	}
	return func() tea.Msg {
		events.Action.PreferencesPrompt(target)
		return PreferencesPrompt{Context: ctx, AppID: target, Initial: current}
	}
}

// PreferencesCommand stores prefs on appID.
func PreferencesCommand(ctx Context, appID string, prefs map[string]string) tea.Cmd {
	return func() tea.Msg {
		result := ActionResult{
			Action:     notice.ActionSetPreferences,
			EntityType: entity.TypeApplication,
			Namespace:  ctx.Namespace,
			Target:     appID,
		}
		if ctx.API == nil {
			result.Err = fmt.Errorf("set preferences on %s: no platform client", appID)
			return result
		}
		c, cancel := actionContext()
		defer cancel()
		if err := ctx.API.SetPreferences(c, ctx.Namespace, appID, prefs); err != nil {
			result.Err = fmt.Errorf("set preferences on %s: %w", appID, err)
		}
		return result
	}
}
