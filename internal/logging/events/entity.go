package events

import "github.com/atomicstack/pipeline-console/internal/logging"

type EntityTracer struct{}

var Entity = EntityTracer{}

func (EntityTracer) Load(namespace, id string) {
	logging.Trace("entity.load", map[string]interface{}{"namespace": namespace, "id": id})
}

func (EntityTracer) Loaded(namespace, id string, programs, datasets, streams int) {
	logging.Trace("entity.loaded", map[string]interface{}{
		"namespace": namespace,
		"id":        id,
		"programs":  programs,
		"datasets":  datasets,
		"streams":   streams,
	})
}

func (EntityTracer) NotFound(namespace, id string) {
	logging.Trace("entity.not-found", map[string]interface{}{"namespace": namespace, "id": id})
}

func (EntityTracer) Failed(namespace, id string, err error) {
	logging.Trace("entity.error", map[string]interface{}{"namespace": namespace, "id": id, "error": errString(err)})
}

func (EntityTracer) Stale(id string, seq int) {
	logging.Trace("entity.stale", map[string]interface{}{"id": id, "seq": seq})
}

func (EntityTracer) TablesRefresh(namespace string) {
	logging.Trace("entity.tables.refresh", map[string]interface{}{"namespace": namespace})
}

func (EntityTracer) TablesFailed(namespace string, err error) {
	logging.Trace("entity.tables.error", map[string]interface{}{"namespace": namespace, "error": errString(err)})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
