package events

import "github.com/atomicstack/pipeline-console/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Mock(baseURL string) {
	logging.Trace("app.mock", map[string]interface{}{"url": baseURL})
}

func (AppTracer) Namespace(namespace string) {
	logging.Trace("app.namespace", map[string]interface{}{"namespace": namespace})
}
