package main

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/cli"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-metrics"

	"github.com/benjaminschreck/go-templatizer/pkg/templatizer"
)

// Meta holds the state and flags shared by every command.
type Meta struct {
	Ui     cli.Ui
	Out    io.Writer
	ErrOut io.Writer
	In     io.Reader

	configPath string
	logLevel   string
	metrics    bool

	sink *metrics.InmemSink
}

// FlagSet returns a flag set with the common options registered.
func (m *Meta) FlagSet(name string) *flag.FlagSet {
	f := flag.NewFlagSet(name, flag.ContinueOnError)
	f.SetOutput(io.Discard)
	f.StringVar(&m.configPath, "config", "", "")
	f.StringVar(&m.logLevel, "log-level", "", "")
	f.BoolVar(&m.metrics, "metrics", false, "")
	return f
}

// Engine loads the configuration, sets up logging and metrics, and returns
// an engine built from them.
func (m *Meta) Engine() (*templatizer.Engine, hclog.Logger, error) {
	config := templatizer.DefaultConfig()
	if m.configPath != "" {
		var err error
		if config, err = templatizer.LoadConfigFile(m.configPath); err != nil {
			return nil, nil, err
		}
	}
	if m.logLevel != "" {
		config.LogLevel = m.logLevel
		if err := config.Validate(); err != nil {
			return nil, nil, err
		}
	}

	logger := templatizer.NewLogger(m.ErrOut, config.LogLevel)
	templatizer.SetLogger(logger)

	if m.metrics {
		m.sink = metrics.NewInmemSink(time.Minute, time.Minute)
		cfg := metrics.DefaultConfig("")
		cfg.EnableHostname = false
		cfg.EnableRuntimeMetrics = false
		if _, err := metrics.NewGlobal(cfg, m.sink); err != nil {
			return nil, nil, fmt.Errorf("failed to set up metrics: %w", err)
		}
	}

	engine := templatizer.NewEngine(templatizer.WithConfig(config), templatizer.WithLogger(logger))
	if err := engine.Err(); err != nil {
		return nil, nil, err
	}
	return engine, logger, nil
}

// DumpMetrics writes the collected counters and timers to ErrOut.
func (m *Meta) DumpMetrics() {
	if m.sink == nil {
		return
	}
	var lines []string
	for _, interval := range m.sink.Data() {
		interval.RLock()
		for name, v := range interval.Counters {
			lines = append(lines, fmt.Sprintf("%s count=%d", name, v.Count))
		}
		for name, v := range interval.Samples {
			lines = append(lines, fmt.Sprintf("%s count=%d mean=%.3fms max=%.3fms", name, v.Count, v.AggregateSample.Mean(), v.Max))
		}
		interval.RUnlock()
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(m.ErrOut, l)
	}
}

const generalOptions = `
  -config=<path>
    YAML configuration file. Absent keys keep their defaults.

  -log-level=<level>
    One of trace, debug, info, warn, error or off. Overrides the
    configuration file.

  -metrics
    Print compile and render timings to stderr when done.`

func generalOptionsUsage() string {
	return strings.TrimPrefix(generalOptions, "\n")
}
