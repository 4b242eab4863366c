// Package notice turns fast-action results into short-lived success
// messages.
package notice

import (
	"strings"
	"time"
	"unicode"

	"github.com/atomicstack/pipeline-console/internal/logging/events"
)

// ClearAfter is how long a published message stays visible.
const ClearAfter = 3000 * time.Millisecond

// Action identifies a fast action on an entity.
type Action string

const (
	ActionDelete         Action = "delete"
	ActionSetPreferences Action = "setPreferences"
	ActionStart          Action = "start"
	ActionStop           Action = "stop"
	ActionTruncate       Action = "truncate"
	ActionDeploy         Action = "deploy"
)

const entityTypePlaceholder = "{entityType}"

// Messages maps actions to display templates. "{entityType}" is replaced by
// the capitalised entity type.
type Messages map[Action]string

// DefaultMessages returns the built-in templates.
func DefaultMessages() Messages {
	return Messages{
		ActionDelete:         "Deleted successfully.",
		ActionSetPreferences: "{entityType} preferences saved successfully.",
		ActionStart:          "Program started.",
		ActionStop:           "Program stopped.",
		ActionTruncate:       "Truncated successfully.",
		ActionDeploy:         "Deployed successfully.",
	}
}

// Merge returns a copy of m with non-empty overrides applied.
func (m Messages) Merge(overrides map[string]string) Messages {
	out := make(Messages, len(m)+len(overrides))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out[Action(k)] = v
	}
	return out
}

// Render looks up the message for action. Unknown actions fall back to a
// generic sentence so a success is never silent.
func (m Messages) Render(action Action, entityType string) string {
	tmpl, ok := m[action]
	if !ok || strings.TrimSpace(tmpl) == "" {
		tmpl = "Action " + string(action) + " completed."
	}
	return strings.ReplaceAll(tmpl, entityTypePlaceholder, capitalize(entityType))
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Entity"
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Notice is the transient state shown after a fast action. Message and
// RouteToHome always change together.
type Notice struct {
	Action      Action
	Message     string
	RouteToHome bool
	Namespace   string
	Seq         int
}

// Board holds the current notice. It is owned by the UI loop.
type Board struct {
	messages Messages
	current  Notice
	seq      int
}

// NewBoard builds a board rendering with messages.
func NewBoard(messages Messages) *Board {
	if messages == nil {
		messages = DefaultMessages()
	}
	return &Board{messages: messages}
}

// Publish replaces the current notice in a single assignment. Deletes also
// set RouteToHome with the namespace to return to.
func (b *Board) Publish(action Action, entityType, namespace string) Notice {
	b.seq++
	n := Notice{
		Action:  action,
		Message: b.messages.Render(action, entityType),
		Seq:     b.seq,
	}
	if action == ActionDelete {
		n.RouteToHome = true
		n.Namespace = namespace
	}
	b.current = n
	events.Notice.Publish(string(action), n.Message, n.RouteToHome, n.Seq)
	return n
}

// Expire clears the message if seq is still the latest publish. The route
// flag is left for the caller to consume.
func (b *Board) Expire(seq int) bool {
	cleared := seq == b.seq && b.current.Message != ""
	if cleared {
		b.current.Message = ""
	}
	events.Notice.Expire(seq, cleared)
	return cleared
}

// ConsumeRoute reports and resets the route-to-home flag.
func (b *Board) ConsumeRoute() (string, bool) {
	if !b.current.RouteToHome {
		return "", false
	}
	ns := b.current.Namespace
	b.current.RouteToHome = false
	return ns, true
}

// Current returns the visible notice.
func (b *Board) Current() Notice {
	return b.current
}

// Message returns the visible message, or "".
func (b *Board) Message() string {
	return b.current.Message
}
