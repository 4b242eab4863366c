package state

import "github.com/atomicstack/pipeline-console/internal/entity"

// DetailState is the application detail shown on screen.
type DetailState struct {
	Namespace string
	ID        string
	Loading   bool
	Seeded    bool
	Status    entity.Status
	Detail    entity.Detail
	Err       error
	Seq       int
}

// DetailStore owns the detail screen state. Only the result of the latest
// Begin is accepted.
type DetailStore interface {
	Begin(namespace, id string) int
	Apply(seq int, out entity.Outcome) bool
	Seed(namespace string, detail entity.Detail)
	Current() DetailState
	Clear()
}

type detailStore struct {
	current DetailState
	seq     int
}

func NewDetailStore() DetailStore {
	return &detailStore{}
}

// Begin marks a load for id as in flight and returns its sequence number.
func (d *detailStore) Begin(namespace, id string) int {
	d.seq++
	d.current = DetailState{
		Namespace: namespace,
		ID:        id,
		Loading:   true,
		Seq:       d.seq,
	}
	return d.seq
}

// Apply records out if seq is still current.
func (d *detailStore) Apply(seq int, out entity.Outcome) bool {
	if seq != d.seq || !d.current.Loading {
		return false
	}
	d.current.Loading = false
	d.current.Status = out.Status
	d.current.Err = out.Err
	if out.Status == entity.StatusDetail {
		d.current.Detail = out.Detail.Clone()
	} else {
		d.current.Detail = entity.Detail{}
	}
	return true
}

// Seed shows a pre-fetched record without loading. Any load in flight is
// superseded.
func (d *detailStore) Seed(namespace string, detail entity.Detail) {
	d.seq++
	d.current = DetailState{
		Namespace: namespace,
		ID:        detail.ID,
		Seeded:    true,
		Status:    entity.StatusDetail,
		Detail:    detail.Clone(),
		Seq:       d.seq,
	}
}

func (d *detailStore) Current() DetailState {
	out := d.current
	if out.Status == entity.StatusDetail {
		out.Detail = d.current.Detail.Clone()
	}
	return out
}

// Clear drops the detail and invalidates any load in flight.
func (d *detailStore) Clear() {
	d.seq++
	d.current = DetailState{Seq: d.seq}
}
