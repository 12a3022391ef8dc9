// Package simio fixes the interfaces the simulation core consumes and
// produces at its external boundary: input decoding (XML/ASCII/cluster),
// output rendering (VTK/XYZ/XML), and the analytics histogram writer.
// Concrete decoders/encoders live outside this module; this package gives
// the core something real to call, and a no-op implementation usable by
// tests and headless runs.
package simio

import (
	"github.com/noahpy/MolSim-SS24-sub000/container"
)

// Reader populates a container from whatever external representation it
// wraps (legacy/cluster/empty/ascii/XML). The core never parses a byte of
// this itself.
type Reader interface {
	Read(c *container.Container) error
}

// Writer emits one frame of simulation state (VTK/XYZ/XML/none).
type Writer interface {
	Write(c *container.Container, iteration int) error
	Close() error
}

// AnalyticsWriter appends one row of binned density/velocity samples per
// call, one CSV row per sample.
type AnalyticsWriter interface {
	WriteDensity(row []float64) error
	WriteVelocity(row []float64) error
	Close() error
}

// NoopReader leaves the container exactly as the caller already populated
// it (e.g. via the generate package). Useful for headless/tests and the
// reader kind "empty".
type NoopReader struct{}

func (NoopReader) Read(c *container.Container) error { return nil }

// NoopWriter discards every frame; used for writer kind "none".
type NoopWriter struct{}

func (NoopWriter) Write(c *container.Container, iteration int) error { return nil }
func (NoopWriter) Close() error                                      { return nil }

// NoopAnalytics discards every sample.
type NoopAnalytics struct{}

func (NoopAnalytics) WriteDensity(row []float64) error  { return nil }
func (NoopAnalytics) WriteVelocity(row []float64) error { return nil }
func (NoopAnalytics) Close() error                      { return nil }
