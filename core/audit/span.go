// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package audit records timed spans of work and reports them through zerolog
// and the Server-Timing header.
package audit

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"runtime/trace"
	"strconv"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetDefaultLogger writes console-formatted lines to stderr until the
// configuration installs its own outputs.
func SetDefaultLogger() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// Kind describes what a span measures.
type Kind string

const (
	// KindRequest is an inbound HTTP request.
	KindRequest Kind = "http"
	// KindCatalog is a load of the icon catalog.
	KindCatalog Kind = "catalog"
	// KindRender is the rendering of a single component.
	KindRender Kind = "render"
)

// Span is a unit of timed work.
//
// Only start, duration, task and metric are managed by Begin and End; the
// remaining fields are filled in by the caller before Log.
type Span struct {
	task     *trace.Task
	start    time.Time
	duration time.Duration
	metric   *servertiming.Metric

	Kind       Kind
	RequestID  string
	Method     string
	URL        string
	StatusCode int
	Size       int
	Error      error
}

// ServerTimingName is the metric name used in the Server-Timing header.
//
// The URL is base64 encoded without padding so the name stays a valid token.
func (span *Span) ServerTimingName() string {
	name := string(span.Kind)
	if span.Method != "" {
		name += "$" + span.Method
	}

	if span.URL != "" {
		name += "$" + base64.RawURLEncoding.EncodeToString([]byte(span.URL))
	}

	return name
}

// Begin starts timing and returns a context carrying the trace task.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, string(span.Kind))
	if timing := servertiming.FromContext(ctx); timing != nil {
		span.metric = timing.NewMetric(span.ServerTimingName())
		span.metric.Extra = map[string]string{
			"start": strconv.FormatFloat(float64(span.start.UnixNano())/float64(time.Millisecond), 'f', -1, 64),
		}
	}

	return ctx
}

// End stops timing. Calls after the first are no-ops.
func (span *Span) End() {
	if span.task == nil {
		return
	}

	span.duration = time.Since(span.start)
	span.task.End()

	if span.metric != nil {
		span.metric.Duration = span.duration
	}

	span.task = nil
}

// Duration reports the measured time, valid after End.
func (span *Span) Duration() time.Duration {
	return span.duration
}

// Log writes the span to the global logger.
func (span *Span) Log() {
	span.LogTo(log.Logger)
}

// LogTo writes the span to logger.
//
// Failed spans and server errors log at error level; everything else at debug.
func (span *Span) LogTo(logger zerolog.Logger) {
	event := logger.Debug()
	if span.Error != nil || span.StatusCode >= 500 {
		event = logger.Error()
	}

	if span.Kind == KindRequest {
		event.Str("sys", "http").
			Str("method", span.Method).
			Str("url", span.URL).
			Int("status_code", span.StatusCode).
			Str("request_id", span.RequestID)
	} else {
		event.Str("sys", string(span.Kind))
	}

	event.Str("len", humanizeSize(span.Size)).
		Dur("dur", span.duration)

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Send()
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
	bytesInGB = bytesInMB * bytesInKB
)

func humanizeSize(x int) string {
	switch {
	case x < bytesInKB:
		return strconv.Itoa(x)
	case x < bytesInMB:
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	case x < bytesInGB:
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	default:
		return fmt.Sprintf("%.2fG", float64(x)/bytesInGB)
	}
}
