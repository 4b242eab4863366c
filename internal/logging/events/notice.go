package events

import "github.com/atomicstack/pipeline-console/internal/logging"

type NoticeTracer struct{}

var Notice = NoticeTracer{}

func (NoticeTracer) Publish(action, message string, routeHome bool, seq int) {
	logging.Trace("notice.publish", map[string]interface{}{
		"action":    action,
		"message":   message,
		"routeHome": routeHome,
		"seq":       seq,
	})
}

func (NoticeTracer) Expire(seq int, cleared bool) {
	logging.Trace("notice.expire", map[string]interface{}{"seq": seq, "cleared": cleared})
}
