package app

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Metrics tracks event loop counters. It is safe for concurrent use.
type Metrics struct {
	// Frame timing
	frameCount    atomic.Uint64
	frameTotalNs  atomic.Int64
	frameMaxNs    atomic.Int64
	skippedFrames atomic.Uint64

	// Event processing
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64

	reloads atomic.Uint64
	exports atomic.Uint64
	errors  atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrame records a drawn frame.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordSkippedFrame records a frame dropped by the rate limit.
func (m *Metrics) RecordSkippedFrame() {
	m.skippedFrames.Add(1)
}

// RecordEvent records event processing timing.
func (m *Metrics) RecordEvent(duration time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(duration.Nanoseconds())
}

// RecordReload records an applied configuration reload.
func (m *Metrics) RecordReload() { m.reloads.Add(1) }

// RecordExport records a written export.
func (m *Metrics) RecordExport() { m.exports.Add(1) }

// RecordError records an error shown to the user.
func (m *Metrics) RecordError() { m.errors.Add(1) }

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frames := m.frameCount.Load()
	events := m.eventCount.Load()

	var avgFrame, avgEvent time.Duration
	if frames > 0 {
		avgFrame = time.Duration(m.frameTotalNs.Load() / int64(frames))
	}
	if events > 0 {
		avgEvent = time.Duration(m.eventTotalNs.Load() / int64(events))
	}

	return MetricsSnapshot{
		Uptime:        time.Since(m.startTime),
		FrameCount:    frames,
		SkippedFrames: m.skippedFrames.Load(),
		AvgFrameTime:  avgFrame,
		MaxFrameTime:  time.Duration(m.frameMaxNs.Load()),
		EventCount:    events,
		AvgEventTime:  avgEvent,
		Reloads:       m.reloads.Load(),
		Exports:       m.exports.Load(),
		Errors:        m.errors.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime        time.Duration
	FrameCount    uint64
	SkippedFrames uint64
	AvgFrameTime  time.Duration
	MaxFrameTime  time.Duration
	EventCount    uint64
	AvgEventTime  time.Duration
	Reloads       uint64
	Exports       uint64
	Errors        uint64
}

// SkipRate returns the percentage of frames dropped by the rate limit.
func (s MetricsSnapshot) SkipRate() float64 {
	total := s.FrameCount + s.SkippedFrames
	if total == 0 {
		return 0
	}
	return float64(s.SkippedFrames) / float64(total) * 100
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (s MetricsSnapshot) MarshalZerologObject(e *zerolog.Event) {
	e.Dur("uptime", s.Uptime).
		Uint64("frames", s.FrameCount).
		Uint64("skipped_frames", s.SkippedFrames).
		Dur("avg_frame", s.AvgFrameTime).
		Dur("max_frame", s.MaxFrameTime).
		Uint64("events", s.EventCount).
		Dur("avg_event", s.AvgEventTime).
		Uint64("reloads", s.Reloads).
		Uint64("exports", s.Exports).
		Uint64("errors", s.Errors)
}
