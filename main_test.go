package main

import (
	"testing"
	"time"

	"github.com/atomicstack/pipeline-console/internal/app"
	"github.com/atomicstack/pipeline-console/internal/config"
)

func TestProbeTerminalsCoversStandardDescriptors(t *testing.T) {
	report := probeTerminals()
	want := []string{"stdin", "stdout", "stderr"}
	if len(report.Probes) != len(want) {
		t.Fatalf("expected %d probes, got %d", len(want), len(report.Probes))
	}
	for i, name := range want {
		if report.Probes[i].Name != name {
			t.Fatalf("expected probe %d to be %q, got %q", i, name, report.Probes[i].Name)
		}
	}
	if report.Size != nil && !report.Size.IsTerminal {
		t.Fatalf("size must come from a terminal probe")
	}
}

func TestStartupTracePayloadDescribesPlatform(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			APIURL:          "http://platform:11015",
			APITimeout:      10 * time.Second,
			Namespace:       "default",
			RefreshInterval: 5 * time.Second,
			Width:           80,
			Height:          24,
		},
		Logging: config.Logging{FilePath: "trace.log", Trace: true},
		File:    "/etc/console.toml",
		Flags: map[string]string{
			"api":    "http://platform:11015",
			"width":  "80",
			"footer": "true",
		},
		Args: []string{"--api", "http://platform:11015"},
	}

	payload := startupTracePayload(cfg)

	flags, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flags["api"] != "http://platform:11015" || flags["width"] != "80" || flags["footer"] != "true" {
		t.Fatalf("unexpected flags %#v", flags)
	}
	if flags["trace"] != true || flags["logFile"] != "trace.log" {
		t.Fatalf("expected logging settings merged into flags, got %#v", flags)
	}
	platform, ok := payload["platform"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected platform section")
	}
	if platform["namespace"] != "default" || platform["timeout"] != "10s" || platform["refresh"] != "5s" {
		t.Fatalf("unexpected platform section %#v", platform)
	}
	if payload["configFile"] != "/etc/console.toml" {
		t.Fatalf("expected config file recorded, got %v", payload["configFile"])
	}
	if _, ok := payload["tty"].(terminalReport); !ok {
		t.Fatalf("expected terminal report in payload")
	}
}

func TestStartupTracePayloadMasksMockURL(t *testing.T) {
	payload := startupTracePayload(config.Config{App: app.Config{Mock: true, APIURL: "http://localhost:11015"}})
	platform := payload["platform"].(map[string]interface{})
	if platform["url"] != "in-process mock" || platform["mock"] != true {
		t.Fatalf("expected mock platform, got %#v", platform)
	}
}
