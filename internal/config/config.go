package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/pipeline-console/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	File     string
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envConfigFile = "PIPELINE_CONSOLE_CONFIG"
	envAPIURL     = "PIPELINE_CONSOLE_API_URL"
	envAPITimeout = "PIPELINE_CONSOLE_API_TIMEOUT"
	envNamespace  = "PIPELINE_CONSOLE_NAMESPACE"
	envRefresh    = "PIPELINE_CONSOLE_REFRESH"
	envWidth      = "PIPELINE_CONSOLE_WIDTH"
	envHeight     = "PIPELINE_CONSOLE_HEIGHT"
	envShowFooter = "PIPELINE_CONSOLE_FOOTER"
	envVerbose    = "PIPELINE_CONSOLE_VERBOSE"
	envTrace      = "PIPELINE_CONSOLE_TRACE"
	envLogFile    = "PIPELINE_CONSOLE_LOG_FILE"
	envMock       = "PIPELINE_CONSOLE_MOCK"
	envRootMenu   = "PIPELINE_CONSOLE_ROOT_MENU"
)

const (
	defaultAPIURL     = "http://localhost:11015"
	defaultAPITimeout = 10 * time.Second
	defaultNamespace  = "default"
	defaultRefresh    = 5 * time.Second
	minRefresh        = 250 * time.Millisecond
)

// fileConfig mirrors the optional TOML file. Unset keys keep lower
// precedence values.
type fileConfig struct {
	API struct {
		URL     string        `toml:"url"`
		Timeout time.Duration `toml:"timeout"`
	} `toml:"api"`
	Namespace       string            `toml:"namespace"`
	RefreshInterval time.Duration     `toml:"refresh_interval"`
	Width           *int              `toml:"width"`
	Height          *int              `toml:"height"`
	Footer          *bool             `toml:"footer"`
	Verbose         *bool             `toml:"verbose"`
	Trace           *bool             `toml:"trace"`
	LogFile         string            `toml:"log_file"`
	Mock            *bool             `toml:"mock"`
	RootMenu        string            `toml:"root_menu"`
	Messages        map[string]string `toml:"messages"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values resolve
// as flags, then environment, then the config file, then defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("pipeline-console", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configFile := fs.String("config", "", "path to a TOML config file")
	apiURL := fs.String("api", defaultAPIURL, "platform API base URL")
	apiTimeout := fs.Duration("api-timeout", defaultAPITimeout, "timeout for each platform request")
	namespace := fs.String("namespace", defaultNamespace, "namespace to browse")
	refresh := fs.Duration("refresh", defaultRefresh, "interval between platform polls")
	width := fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", false, "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", false, "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", false, "print info messages for menu actions")
	logFile := fs.String("log-file", "", "path to the log file")
	mock := fs.Bool("mock", false, "serve demo data from an in-process mock platform")
	rootMenu := fs.String("root-menu", "", "open this menu instead of the main menu")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	path := *configFile
	if !explicit["config"] {
		path = envOrDefault(env, envConfigFile, "")
	}
	var file fileConfig
	if path != "" {
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	layerString(apiURL, explicit["api"], env, envAPIURL, file.API.URL)
	layerString(namespace, explicit["namespace"], env, envNamespace, file.Namespace)
	layerString(logFile, explicit["log-file"], env, envLogFile, file.LogFile)
	layerString(rootMenu, explicit["root-menu"], env, envRootMenu, file.RootMenu)
	layerDuration(apiTimeout, explicit["api-timeout"], env, envAPITimeout, file.API.Timeout)
	layerDuration(refresh, explicit["refresh"], env, envRefresh, file.RefreshInterval)
	layerInt(width, explicit["width"], env, envWidth, file.Width)
	layerInt(height, explicit["height"], env, envHeight, file.Height)
	layerBool(footer, explicit["footer"], env, envShowFooter, file.Footer)
	layerBool(trace, explicit["trace"], env, envTrace, file.Trace)
	layerBool(verbose, explicit["verbose"], env, envVerbose, file.Verbose)
	layerBool(mock, explicit["mock"], env, envMock, file.Mock)

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			APIURL:          strings.TrimSpace(*apiURL),
			APITimeout:      *apiTimeout,
			Namespace:       strings.TrimSpace(*namespace),
			RefreshInterval: *refresh,
			Width:           *width,
			Height:          *height,
			ShowFooter:      *footer,
			Verbose:         *verbose,
			RootMenu:        *rootMenu,
			Mock:            *mock,
			Messages:        file.Messages,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		File: path,
		Flags: map[string]string{
			"config":     path,
			"api":        *apiURL,
			"apiTimeout": apiTimeout.String(),
			"namespace":  *namespace,
			"refresh":    refresh.String(),
			"width":      strconv.Itoa(*width),
			"height":     strconv.Itoa(*height),
			"footer":     strconv.FormatBool(*footer),
			"trace":      strconv.FormatBool(*trace),
			"verbose":    strconv.FormatBool(*verbose),
			"logFile":    *logFile,
			"mock":       strconv.FormatBool(*mock),
			"rootMenu":   *rootMenu,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func layerString(dst *string, set bool, env map[string]string, key, fromFile string) {
	if set {
		return
	}
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		*dst = v
		return
	}
	if fromFile != "" {
		*dst = fromFile
	}
}

func layerDuration(dst *time.Duration, set bool, env map[string]string, key string, fromFile time.Duration) {
	if set {
		return
	}
	if v, ok := env[key]; ok {
		if parsed, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			*dst = parsed
			return
		}
	}
	if fromFile > 0 {
		*dst = fromFile
	}
}

func layerInt(dst *int, set bool, env map[string]string, key string, fromFile *int) {
	if set {
		return
	}
	if v, ok := env[key]; ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = parsed
			return
		}
	}
	if fromFile != nil {
		*dst = *fromFile
	}
}

func layerBool(dst *bool, set bool, env map[string]string, key string, fromFile *bool) {
	if set {
		return
	}
	if v, ok := env[key]; ok {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			*dst = parsed
			return
		}
	}
	if fromFile != nil {
		*dst = *fromFile
	}
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Namespace == "" && !cfg.App.Mock {
		return fmt.Errorf("namespace must not be empty")
	}
	if cfg.App.APIURL == "" && !cfg.App.Mock {
		return fmt.Errorf("api url must not be empty")
	}
	if cfg.App.RefreshInterval < minRefresh {
		return fmt.Errorf("refresh interval must be >= %s (got %s)", minRefresh, cfg.App.RefreshInterval)
	}
	if cfg.App.APITimeout <= 0 {
		return fmt.Errorf("api timeout must be > 0 (got %s)", cfg.App.APITimeout)
	}
	return nil
}
