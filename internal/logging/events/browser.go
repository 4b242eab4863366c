package events

import "github.com/atomicstack/pipeline-console/internal/logging"

type BrowserTracer struct{}

var Browser = BrowserTracer{}

func (BrowserTracer) Activate(kind, source string, generation int) {
	logging.Trace("browser.activate", map[string]interface{}{"kind": kind, "source": source, "generation": generation})
}

func (BrowserTracer) Busy(kind, source string) {
	logging.Trace("browser.busy", map[string]interface{}{"kind": kind, "source": source})
}

func (BrowserTracer) Loaded(kind, source string, topics int) {
	logging.Trace("browser.loaded", map[string]interface{}{"kind": kind, "source": source, "topics": topics})
}

func (BrowserTracer) Failed(kind, source, stage string, err error) {
	logging.Trace("browser.error", map[string]interface{}{"kind": kind, "source": source, "stage": stage, "error": errString(err)})
}

func (BrowserTracer) Stale(kind, source string, generation, current int) {
	logging.Trace("browser.stale", map[string]interface{}{"kind": kind, "source": source, "generation": generation, "current": current})
}
