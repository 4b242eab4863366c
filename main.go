package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/pipeline-console/internal/app"
	"github.com/atomicstack/pipeline-console/internal/config"
	"github.com/atomicstack/pipeline-console/internal/logging"
	"github.com/atomicstack/pipeline-console/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)
	defer logging.Close()

	events.App.Start(startupTracePayload(runtimeCfg))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Close()
		os.Exit(1)
	}
}

// startupTracePayload records what the console was started against: the
// platform endpoint, the namespace, where settings came from and the
// terminal it draws on.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	platform := map[string]interface{}{
		"url":       cfg.App.APIURL,
		"timeout":   cfg.App.APITimeout.String(),
		"namespace": cfg.App.Namespace,
		"refresh":   cfg.App.RefreshInterval.String(),
		"mock":      cfg.App.Mock,
	}
	if cfg.App.Mock {
		platform["url"] = "in-process mock"
	}

	payload := map[string]interface{}{
		"argv":       cfg.Args,
		"flags":      flags,
		"configFile": cfg.File,
		"platform":   platform,
		"config":     cfg,
		"tty":        probeTerminals(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	return payload
}

// terminalProbe is the result of inspecting one standard descriptor.
type terminalProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

type terminalReport struct {
	// Size is the first descriptor that reported a size.
	Size   *terminalProbe  `json:"size,omitempty"`
	Probes []terminalProbe `json:"probes"`
}

func probeTerminals() terminalReport {
	descriptors := []struct {
		name string
		file *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
	}
	report := terminalReport{Probes: make([]terminalProbe, 0, len(descriptors))}
	for _, d := range descriptors {
		probe := terminalProbe{Name: d.name}
		fd := int(d.file.Fd())
		if term.IsTerminal(fd) {
			probe.IsTerminal = true
			width, height, err := term.GetSize(fd)
			if err != nil {
				probe.Error = err.Error()
			} else {
				probe.Width, probe.Height = width, height
				if report.Size == nil {
					found := probe
					report.Size = &found
				}
			}
		}
		report.Probes = append(report.Probes, probe)
	}
	return report
}
