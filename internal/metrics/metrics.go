// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics records per-command pipeline metrics.
//
// Metrics:
//   - bento_command_runs_total{command,result}
//   - bento_command_duration_seconds{command}
//   - bento_hook_runs_total{command,phase,result}
//
// A nil *Recorder is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Recorder holds the metrics of one session in its own registry.
type Recorder struct {
	reg *prometheus.Registry

	CommandRuns     *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	HookRuns        *prometheus.CounterVec
}

// New returns a Recorder with a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		CommandRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bento_command_runs_total",
				Help: "Total number of commands run",
			},
			[]string{"command", "result"},
		),
		CommandDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bento_command_duration_seconds",
				Help:    "Duration of command execution in seconds, hooks included",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
			[]string{"command"},
		),
		HookRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bento_hook_runs_total",
				Help: "Total number of pre and post hooks run",
			},
			[]string{"command", "phase", "result"},
		),
	}
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// ObserveCommand records one command run.
func (r *Recorder) ObserveCommand(command string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.CommandRuns.WithLabelValues(command, result(err)).Inc()
	r.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
}

// ObserveHook records one hook run.
func (r *Recorder) ObserveHook(command, phase string, err error) {
	if r == nil {
		return
	}
	r.HookRuns.WithLabelValues(command, phase, result(err)).Inc()
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteFile writes the metrics in text exposition format to path, for the
// node exporter textfile collector.
func (r *Recorder) WriteFile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.reg)
}
