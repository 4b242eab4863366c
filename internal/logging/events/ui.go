package events

import "github.com/atomicstack/pipeline-console/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) LevelEnter(levelID, itemID, label, filter string) {
	logging.Trace("level.enter", map[string]interface{}{
		"level":  levelID,
		"item":   itemID,
		"label":  label,
		"filter": filter,
	})
}

func (UITracer) LevelBack(from, to string) {
	logging.Trace("level.back", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) Cursor(levelID string, cursor int) {
	logging.Trace("level.cursor", map[string]interface{}{"level": levelID, "cursor": cursor})
}

func (UITracer) RouteHome(namespace string) {
	logging.Trace("level.route-home", map[string]interface{}{"namespace": namespace})
}

func (ActionTracer) Error(action string, err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"action": action, "error": err.Error()})
}

func (ActionTracer) Success(action, target string) {
	logging.Trace("action.success", map[string]interface{}{"action": action, "target": target})
}

func (ActionTracer) PreferencesPrompt(target string) {
	logging.Trace("action.preferences.prompt", map[string]interface{}{"target": target})
}

func (ActionTracer) PreferencesCancel(target, reason string) {
	logging.Trace("action.preferences.cancel", map[string]interface{}{"target": target, "reason": reason})
}

// Edit records a change to a level's filter query. op names the edit
// (append, backspace, word-backspace, clear).
func (FilterTracer) Edit(levelID, op, filter string) {
	logging.Trace("filter."+op, map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Cursor(levelID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"level": levelID, "cursor": pos})
}

func (CommandTracer) Queue(action, target string) {
	logging.Trace("command.queue", map[string]interface{}{"action": action, "target": target})
}

func (CommandTracer) Skip(action, target string) {
	logging.Trace("command.skip", map[string]interface{}{"action": action, "target": target})
}

func (CommandTracer) Result(action, target string, err error) {
	logging.Trace("command.result", map[string]interface{}{"action": action, "target": target, "error": errString(err)})
}
