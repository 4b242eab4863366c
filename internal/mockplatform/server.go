// Package mockplatform serves an in-memory copy of the platform REST API.
// The console runs against it with --mock, and tests mount it behind
// httptest to exercise the real HTTP client.
package mockplatform

import (
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/gin-gonic/gin"
)

// Route names accepted by Fail.
const (
	RouteApps        = "apps"
	RouteApp         = "app"
	RouteProperties  = "properties"
	RouteTables      = "tables"
	RouteConnections = "connections"
	RouteConnection  = "connection"
	RouteTopics      = "topics"
	RoutePreferences = "preferences"
	RouteProgram     = "program"
	RouteDelete      = "delete"
)

// Namespace holds the fixtures of one namespace.
type Namespace struct {
	Apps        map[string]api.App
	Properties  map[string]map[string]string
	Preferences map[string]map[string]string
	Tables      []api.Table
	Connections []api.Connection
	Infos       map[string]api.ConnectionInfo
	Topics      map[string][]string
}

// Platform is the mutable fixture set behind the router.
type Platform struct {
	mu         sync.Mutex
	namespaces map[string]*Namespace
	failures   map[string]int
	hits       map[string]int
	programs   map[string]string
}

// New returns an empty platform.
func New() *Platform {
	return &Platform{
		namespaces: make(map[string]*Namespace),
		failures:   make(map[string]int),
		hits:       make(map[string]int),
		programs:   make(map[string]string),
	}
}

// Put installs fixtures for a namespace, replacing any previous ones.
func (p *Platform) Put(name string, ns Namespace) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ns.Apps == nil {
		ns.Apps = map[string]api.App{}
	}
	if ns.Properties == nil {
		ns.Properties = map[string]map[string]string{}
	}
	if ns.Preferences == nil {
		ns.Preferences = map[string]map[string]string{}
	}
	if ns.Infos == nil {
		ns.Infos = map[string]api.ConnectionInfo{}
	}
	if ns.Topics == nil {
		ns.Topics = map[string][]string{}
	}
	copyNS := ns
	p.namespaces[name] = &copyNS
}

// Fail makes every later request to route answer with code. A zero code
// clears the failure.
func (p *Platform) Fail(route string, code int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if code == 0 {
		delete(p.failures, route)
		return
	}
	p.failures[route] = code
}

// Hits returns how many requests reached route.
func (p *Platform) Hits(route string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits[route]
}

// Preferences returns the last preferences stored for an app.
func (p *Platform) Preferences(namespace, app string) map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ns, ok := p.namespaces[namespace]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(ns.Preferences[app]))
	for k, v := range ns.Preferences[app] {
		out[k] = v
	}
	return out
}

// ProgramStatus returns the last action applied to a program ("start",
// "stop" or "").
func (p *Platform) ProgramStatus(namespace, app, program string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.programs[namespace+"/"+app+"/"+program]
}

// Router builds the gin engine serving the platform.
func (p *Platform) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Any("/v3/namespaces/:ns/*rest", p.route)
	return router
}

// route dispatches on the path below the namespace. The platform mixes
// static and parameter segments at the same depth (apps/dataprep vs
// apps/:app), so the split is done here rather than in the route tree.
func (p *Platform) route(c *gin.Context) {
	parts := splitPath(c.Param("rest"))
	method := c.Request.Method
	switch {
	case method == http.MethodGet && match(parts, "apps"):
		p.listApps(c)
	case len(parts) >= 5 && parts[0] == "apps" && parts[1] == "dataprep" && parts[4] == "methods":
		p.dataprep(c, parts[5:])
	case method == http.MethodGet && len(parts) == 2 && parts[0] == "apps":
		p.getApp(c, parts[1])
	case method == http.MethodDelete && len(parts) == 2 && parts[0] == "apps":
		p.deleteApp(c, parts[1])
	case method == http.MethodPut && len(parts) == 3 && parts[0] == "apps" && parts[2] == "preferences":
		p.putPreferences(c, parts[1])
	case method == http.MethodGet && len(parts) == 4 && parts[2] == "metadata" && parts[3] == "properties":
		p.getProperties(c, parts[0], parts[1])
	case method == http.MethodPost && len(parts) == 5 && parts[0] == "apps":
		p.programAction(c, parts[1], parts[2], parts[3], parts[4])
	case method == http.MethodGet && match(parts, "data", "explore", "tables"):
		p.listTables(c)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "no such endpoint"})
	}
}

func (p *Platform) dataprep(c *gin.Context, parts []string) {
	method := c.Request.Method
	switch {
	case method == http.MethodGet && match(parts, "connections"):
		p.listConnections(c)
	case method == http.MethodPost && match(parts, "connections", "kafka"):
		p.listTopics(c)
	case method == http.MethodGet && len(parts) == 2 && parts[0] == "connections":
		p.getConnection(c, parts[1])
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "no such dataprep method"})
	}
}

// begin records the hit and resolves the namespace. It writes the response
// and returns nil when the request must not proceed.
func (p *Platform) begin(c *gin.Context, route string) *Namespace {
	p.hits[route]++
	if code, ok := p.failures[route]; ok {
		c.JSON(code, gin.H{"error": http.StatusText(code)})
		return nil
	}
	ns, ok := p.namespaces[c.Param("ns")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "namespace not found"})
		return nil
	}
	return ns
}

func (p *Platform) listApps(c *gin.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ns := p.begin(c, RouteApps)
	if ns == nil {
		return
	}
	names := make([]string, 0, len(ns.Apps))
	for name := range ns.Apps {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]api.AppSummary, 0, len(names))
	for _, name := range names {
		app := ns.Apps[name]
		summary := api.AppSummary{Name: name, Description: app.Description, Version: app.Artifact.Version}
		summary.Artifact.Name = app.Artifact.Name
		summary.Artifact.Version = app.Artifact.Version
		out = append(out, summary)
	}
	c.JSON(http.StatusOK, out)
}

func (p *Platform) getApp(c *gin.Context, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ns := p.begin(c, RouteApp)
	if ns == nil {
		return
	}
	app, ok := ns.Apps[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	c.JSON(http.StatusOK, app)
}

func (p *Platform) deleteApp(c *gin.Context, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ns := p.begin(c, RouteDelete)
	if ns == nil {
		return
	}
	if _, ok := ns.Apps[name]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	delete(ns.Apps, name)
	delete(ns.Properties, name)
	delete(ns.Preferences, name)
	c.Status(http.StatusOK)
}

func (p *Platform) putPreferences(c *gin.Context, name string) {
	var prefs map[string]string
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	ns := p.begin(c, RoutePreferences)
	if ns == nil {
		return
	}
	if _, ok := ns.Apps[name]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	ns.Preferences[name] = prefs
	c.Status(http.StatusOK)
}

func (p *Platform) getProperties(c *gin.Context, entityType, id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ns := p.begin(c, RouteProperties)
	if ns == nil {
		return
	}
	if entityType != "apps" {
		c.JSON(http.StatusOK, map[string]string{})
		return
	}
	if _, ok := ns.Apps[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		return
	}
	props := ns.Properties[id]
	if props == nil {
		props = map[string]string{}
	}
	c.JSON(http.StatusOK, props)
}

func (p *Platform) programAction(c *gin.Context, appName, programType, program, action string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ns := p.begin(c, RouteProgram)
	if ns == nil {
		return
	}
	if action != "start" && action != "stop" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown program action"})
		return
	}
	app, ok := ns.Apps[appName]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	for _, prog := range app.Programs {
		seg, err := api.ProgramTypePath(prog.Type)
		if err != nil || seg != programType || prog.Name != program {
			continue
		}
		p.programs[c.Param("ns")+"/"+appName+"/"+program] = action
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "program not found"})
}

func (p *Platform) listTables(c *gin.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ns := p.begin(c, RouteTables)
	if ns == nil {
		return
	}
	tables := ns.Tables
	if tables == nil {
		tables = []api.Table{}
	}
	c.JSON(http.StatusOK, tables)
}

func (p *Platform) listConnections(c *gin.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ns := p.begin(c, RouteConnections)
	if ns == nil {
		return
	}
	filter := strings.ToLower(strings.TrimSpace(c.Query("type")))
	out := make([]api.Connection, 0, len(ns.Connections))
	for _, conn := range ns.Connections {
		if filter != "" && strings.ToLower(conn.Type) != filter {
			continue
		}
		out = append(out, conn)
	}
	c.JSON(http.StatusOK, gin.H{"values": out})
}

func (p *Platform) getConnection(c *gin.Context, id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ns := p.begin(c, RouteConnection)
	if ns == nil {
		return
	}
	info, ok := ns.Infos[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "connection not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"values": []api.ConnectionInfo{info}})
}

func (p *Platform) listTopics(c *gin.Context) {
	var info api.ConnectionInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	ns := p.begin(c, RouteTopics)
	if ns == nil {
		return
	}
	id := info.Field("id")
	topics, ok := ns.Topics[id]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to reach broker"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"values": topics})
}

func splitPath(raw string) []string {
	fields := strings.Split(strings.Trim(raw, "/"), "/")
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func match(parts []string, want ...string) bool {
	if len(parts) != len(want) {
		return false
	}
	for i := range want {
		if parts[i] != want[i] {
			return false
		}
	}
	return true
}
