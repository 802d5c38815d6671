package internal

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/cpu"
	log "github.com/sirupsen/logrus"

	"github.com/divi255/rgbmon"
)

// Gradient parameters mapping a 0-100 CPU load onto the hue wheel.
const (
	gradientTotal = 0xFFFFFF
	gradientStart = 4340064
	gradientEnd   = 0xFFFFFF
)

// noLoad marks the monitor state before the first sample.
const noLoad = math.MaxUint8

// MonitorOptions configures a Monitor.
type MonitorOptions struct {
	// DeviceTypes are the controller device types to repaint.
	DeviceTypes []uint32

	// SleepStep is the CPU sampling interval.
	SleepStep time.Duration

	// LoadDiff is the minimum load change, in percent, that triggers a
	// repaint. Smaller wobbles are ignored.
	LoadDiff uint8
}

// Monitor samples the CPU load and keeps the selected controllers painted
// with the matching gradient color. It drives the client from a single
// goroutine; the signal handler calls Reload/Toggle between samples, which
// is safe because SetColor and Reconnect never overlap a blocking sample.
type Monitor struct {
	client *rgbmon.Client
	opts   MonitorOptions

	minLoad      uint8
	defaultColor rgbmon.RGBColor
	hasDefault   bool

	load   uint8
	color  rgbmon.RGBColor
	active bool
}

// NewMonitor creates a monitor driving the given client.
func NewMonitor(client *rgbmon.Client, opts MonitorOptions) *Monitor {
	if opts.SleepStep <= 0 {
		opts.SleepStep = time.Second
	}
	return &Monitor{
		client: client,
		opts:   opts,
		load:   noLoad,
		active: true,
	}
}

// SetDefaultColor holds the given color whenever the load is at or below
// minLoad percent, instead of the gradient color.
func (m *Monitor) SetDefaultColor(minLoad uint8, color rgbmon.RGBColor) {
	m.minLoad = minLoad
	m.defaultColor = color
	m.hasDefault = true
}

// Close releases the client's connection.
func (m *Monitor) Close() {
	m.client.Close()
}

// Run samples the CPU load until stop is closed, repainting on changes.
func (m *Monitor) Run(stop chan struct{}) error {
	for {
		select {
		case <-stop:
			return nil
		default:
		}

		pcts, err := cpu.Percent(m.opts.SleepStep, false)
		if err != nil {
			return errors.Wrap(err, "sampling cpu load")
		}
		if len(pcts) == 0 {
			continue
		}
		load := uint8(pcts[0])
		log.WithField("load", load).Debug("cpu load sampled")
		if load < m.opts.LoadDiff {
			load = 0
		}
		if m.load == noLoad || absDiff(m.load, load) >= m.opts.LoadDiff {
			m.load = load
			m.apply(false)
		}
	}
}

// Reload re-enumerates the controller directory and repaints, reporting
// topology changes.
func (m *Monitor) Reload() error {
	before := m.client.Fingerprint()
	if err := m.client.Reconnect(context.Background()); err != nil {
		log.WithError(err).Error("unable to reload controllers")
		return err
	}

	dir := m.client.Controllers()
	if len(dir) == 0 {
		log.Error("no controllers connected")
	} else if !m.anyManagedType(dir) {
		log.Error("no device types to control")
	}
	if m.client.Fingerprint() != before {
		log.WithField("controllers", len(dir)).Info("controller topology changed")
	}

	m.active = true
	m.apply(true)
	return nil
}

// Toggle suspends or resumes painting. Suspending sets the managed
// controllers to black.
func (m *Monitor) Toggle() {
	if m.active {
		m.Suspend()
	} else {
		m.Resume()
	}
}

// Suspend stops repainting and blanks the managed controllers.
func (m *Monitor) Suspend() {
	log.Debug("suspending")
	m.active = false
	if err := m.setColor(rgbmon.Black()); err != nil {
		log.WithError(err).Error("unable to set color")
	}
}

// Resume restarts repainting with the current load.
func (m *Monitor) Resume() {
	log.Debug("resuming")
	m.active = true
	m.apply(true)
}

// apply repaints the managed controllers when active and a load sample
// exists. Without force, an unchanged target color is skipped.
func (m *Monitor) apply(force bool) {
	if !m.active || m.load == noLoad {
		return
	}
	color := m.targetColor(m.load)
	if !force && color == m.color {
		return
	}
	log.WithField("color", color).Debug("setting color")
	if err := m.setColor(color); err != nil {
		log.WithError(err).Error("unable to set color")
		return
	}
	m.color = color
}

// targetColor maps a load percentage onto the configured color policy.
func (m *Monitor) targetColor(load uint8) rgbmon.RGBColor {
	if m.hasDefault && load <= m.minLoad {
		return m.defaultColor
	}
	return rgbmon.Rainbow(uint32(load), gradientTotal, gradientStart, gradientEnd)
}

func (m *Monitor) setColor(color rgbmon.RGBColor) error {
	selector := rgbmon.ByDeviceTypeSet(m.opts.DeviceTypes...)
	err := m.client.SetColor(context.Background(), selector, color)
	if errors.Is(err, rgbmon.ErrControllerNotFound) {
		// Nothing matched the managed types; not a system failure.
		return nil
	}
	return err
}

func (m *Monitor) anyManagedType(dir []rgbmon.Controller) bool {
	for _, c := range dir {
		for _, t := range m.opts.DeviceTypes {
			if c.DeviceType == t {
				return true
			}
		}
	}
	return false
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
