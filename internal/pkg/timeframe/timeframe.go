/*
Package timeframe fixes the discrete time axis an energy system model is
indexed on: a start instant plus a number of equally spaced steps. Every
time-varying attribute in a model carries one value per step.
*/
package timeframe

import (
	"errors"
	"time"
)

// Timeframe is an ordered sequence of fixed-frequency time steps.
type Timeframe struct {
	Start   time.Time     `json:"Start"`
	Periods int           `json:"Periods"`
	Freq    time.Duration `json:"Freq"`
}

// New returns a timeframe of periods steps of freq length starting at start.
func New(start time.Time, periods int, freq time.Duration) (Timeframe, error) {
	if periods <= 0 {
		return Timeframe{}, errors.New("timeframe: periods must be positive")
	}
	if freq <= 0 {
		return Timeframe{}, errors.New("timeframe: freq must be positive")
	}
	return Timeframe{Start: start.UTC(), Periods: periods, Freq: freq}, nil
}

// Hourly is the common case: periods one-hour steps starting at start.
func Hourly(start time.Time, periods int) (Timeframe, error) {
	return New(start, periods, time.Hour)
}

// Len returns the number of time steps.
func (t Timeframe) Len() int {
	return t.Periods
}

// Index expands the frame into its step instants.
func (t Timeframe) Index() []time.Time {
	idx := make([]time.Time, t.Periods)
	for i := range idx {
		idx[i] = t.Start.Add(time.Duration(i) * t.Freq)
	}
	return idx
}

// End returns the instant of the last step.
func (t Timeframe) End() time.Time {
	if t.Periods == 0 {
		return t.Start
	}
	return t.Start.Add(time.Duration(t.Periods-1) * t.Freq)
}
