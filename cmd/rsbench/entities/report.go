package entities

import (
	"fmt"
	"time"
)

type Measurement struct {
	Label   string        `json:"label"`
	Size    int           `json:"size"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Seconds float64       `json:"seconds"`
}

// SweepResult is the timing table of one scenario. Series[label][i] is the
// time of label at Sizes[i].
type SweepResult struct {
	Name         string               `json:"name"`
	Sizes        []int                `json:"sizes"`
	Labels       []string             `json:"labels"`
	Series       map[string][]float64 `json:"series"`
	Measurements []Measurement        `json:"measurements"`
}

func NewSweepResult(name string, sizes []int, labels []string) *SweepResult {
	series := make(map[string][]float64, len(labels))
	for _, label := range labels {
		series[label] = make([]float64, 0, len(sizes))
	}

	return &SweepResult{
		Name:         name,
		Sizes:        append([]int(nil), sizes...),
		Labels:       append([]string(nil), labels...),
		Series:       series,
		Measurements: make([]Measurement, 0, len(sizes)*len(labels)),
	}
}

func (r *SweepResult) Record(m Measurement) {
	r.Series[m.Label] = append(r.Series[m.Label], m.Seconds)
	r.Measurements = append(r.Measurements, m)
}

// Validate checks that every label has exactly one value per size.
func (r *SweepResult) Validate() error {
	if len(r.Series) != len(r.Labels) {
		return fmt.Errorf("Expected %d series, got %d", len(r.Labels), len(r.Series))
	}

	for _, label := range r.Labels {
		values, ok := r.Series[label]
		if !ok {
			return fmt.Errorf("Missing series for %s", label)
		}
		if len(values) != len(r.Sizes) {
			return fmt.Errorf("Series %s has %d values for %d sizes", label, len(values), len(r.Sizes))
		}
	}

	return nil
}
