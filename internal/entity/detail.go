// Package entity loads and decorates the detail record of a platform
// application.
package entity

import (
	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/google/uuid"
)

// Entity type tags.
const (
	TypeApplication = "application"
	TypeProgram     = "program"
	TypeDataset     = "dataset"
	TypeStream      = "stream"
)

// EntityID is the composite identifier attached to nested datasets and
// streams.
type EntityID struct {
	Entity string
	Name   string
}

// ProgramRef is a program of the application.
type ProgramRef struct {
	Name        string
	Type        string
	Description string
	// Token keeps list rendering stable within one load. It is never
	// persisted and never compared across loads.
	Token string
}

// DatasetRef is a dataset used by the application.
type DatasetRef struct {
	Name     string
	Type     string
	EntityID EntityID
	Token    string
}

// StreamRef is a stream used by the application.
type StreamRef struct {
	Name     string
	EntityID EntityID
	Token    string
}

// Detail is the consolidated application record. It is only ever built whole.
type Detail struct {
	ID          string
	Type        string
	Name        string
	Description string
	Artifact    api.Artifact
	Programs    []ProgramRef
	Datasets    []DatasetRef
	Streams     []StreamRef
	Properties  map[string]string
}

// NewToken returns an opaque unique value for list keys.
func NewToken() string {
	return uuid.NewString()
}

// Decorate merges the raw app record and its properties into a Detail. Every
// nested item gets a fresh token from token; datasets and streams also get
// their composite identifier.
func Decorate(id string, app api.App, props map[string]string, token func() string) Detail {
	if token == nil {
		token = NewToken
	}
	d := Detail{
		ID:          id,
		Type:        TypeApplication,
		Name:        app.Name,
		Description: app.Description,
		Artifact:    app.Artifact,
		Programs:    make([]ProgramRef, 0, len(app.Programs)),
		Datasets:    make([]DatasetRef, 0, len(app.Datasets)),
		Streams:     make([]StreamRef, 0, len(app.Streams)),
		Properties:  make(map[string]string, len(props)),
	}
	if d.Name == "" {
		d.Name = id
	}
	for _, p := range app.Programs {
		d.Programs = append(d.Programs, ProgramRef{
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
			Token:       token(),
		})
	}
	for _, ds := range app.Datasets {
		d.Datasets = append(d.Datasets, DatasetRef{
			Name:     ds.Name,
			Type:     ds.Type,
			EntityID: EntityID{Entity: TypeDataset, Name: ds.Name},
			Token:    token(),
		})
	}
	for _, s := range app.Streams {
		d.Streams = append(d.Streams, StreamRef{
			Name:     s.Name,
			EntityID: EntityID{Entity: TypeStream, Name: s.Name},
			Token:    token(),
		})
	}
	for k, v := range props {
		d.Properties[k] = v
	}
	return d
}

// Clone returns a deep copy of d.
func (d Detail) Clone() Detail {
	out := d
	out.Programs = append([]ProgramRef(nil), d.Programs...)
	out.Datasets = append([]DatasetRef(nil), d.Datasets...)
	out.Streams = append([]StreamRef(nil), d.Streams...)
	out.Properties = make(map[string]string, len(d.Properties))
	for k, v := range d.Properties {
		out.Properties[k] = v
	}
	return out
}
