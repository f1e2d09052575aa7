package config

import (
	"fmt"
	"time"
)

// LoadStep changes the device current at a point in simulated time.
type LoadStep struct {
	AtSeconds float64 `json:"at_seconds"`
	CurrentA  float64 `json:"current_a"`
}

// At returns the step time as a duration from simulation start.
func (s LoadStep) At() time.Duration {
	return time.Duration(s.AtSeconds * float64(time.Second))
}

// ScenarioConfig drives a simulation run: a load profile, a sampling
// interval for the diagnostic time series, and a stop time.
type ScenarioConfig struct {
	StopAfterSeconds      float64    `json:"stop_after_seconds"`
	SampleIntervalSeconds float64    `json:"sample_interval_seconds"`
	Steps                 []LoadStep `json:"steps"`
}

// SetDefaults applies the reference pulse profile: 1 A for 1800 s, rest
// for 600 s, then 1 A again until the 4200 s stop.
func (c *ScenarioConfig) SetDefaults() {
	if c.StopAfterSeconds == 0 {
		c.StopAfterSeconds = 4200
	}
	if c.SampleIntervalSeconds == 0 {
		c.SampleIntervalSeconds = 20
	}
	if len(c.Steps) == 0 {
		c.Steps = []LoadStep{
			{AtSeconds: 0, CurrentA: 1},
			{AtSeconds: 1800, CurrentA: 0},
			{AtSeconds: 2400, CurrentA: 1},
		}
	}
}

// StopAfter returns the configured stop time.
func (c ScenarioConfig) StopAfter() time.Duration {
	return time.Duration(c.StopAfterSeconds * float64(time.Second))
}

// SampleInterval returns the configured sampling period.
func (c ScenarioConfig) SampleInterval() time.Duration {
	return time.Duration(c.SampleIntervalSeconds * float64(time.Second))
}

// Validate checks the section.
func (c ScenarioConfig) Validate() error {
	if c.StopAfterSeconds <= 0 {
		return fmt.Errorf("scenario: stop_after_seconds must be positive")
	}
	if c.SampleIntervalSeconds <= 0 {
		return fmt.Errorf("scenario: sample_interval_seconds must be positive")
	}
	prev := -1.0
	for i, s := range c.Steps {
		if s.AtSeconds < 0 {
			return fmt.Errorf("scenario: step %d has negative time", i)
		}
		if s.AtSeconds <= prev && i > 0 {
			return fmt.Errorf("scenario: steps must be in increasing time order")
		}
		if s.CurrentA < 0 {
			return fmt.Errorf("scenario: step %d has negative current", i)
		}
		prev = s.AtSeconds
	}
	return nil
}
