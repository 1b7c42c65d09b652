package entity

import (
	"errors"
	"fmt"
	"time"
)

// Statistic is the aggregation applied to datapoints within one period.
type Statistic string

const (
	StatisticAverage     Statistic = "Average"
	StatisticSum         Statistic = "Sum"
	StatisticMinimum     Statistic = "Minimum"
	StatisticMaximum     Statistic = "Maximum"
	StatisticSampleCount Statistic = "SampleCount"
)

// Dimension is one name/value pair of a metric's dimension set.
type Dimension struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MetricWindow describes a single-statistic query over a time range.
type MetricWindow struct {
	Namespace  string
	MetricName string
	Dimensions []Dimension
	Start      time.Time
	End        time.Time
	Period     time.Duration
	Statistic  Statistic
}

// NewTrailingWindow builds a window covering the last `days` days up to now.
func NewTrailingWindow(now time.Time, days int, period time.Duration, namespace, metric string, statistic Statistic, dims ...Dimension) MetricWindow {
	return MetricWindow{
		Namespace:  namespace,
		MetricName: metric,
		Dimensions: dims,
		Start:      now.AddDate(0, 0, -days),
		End:        now,
		Period:     period,
		Statistic:  statistic,
	}
}

// ErrInvalidMetricWindow is returned for windows the metrics API would reject.
var ErrInvalidMetricWindow = errors.New("invalid metric window")

// Validate checks the constraints the metrics API places on a query.
func (w MetricWindow) Validate() error {
	if w.Namespace == "" || w.MetricName == "" {
		return fmt.Errorf("%w: namespace and metric name are required", ErrInvalidMetricWindow)
	}
	if len(w.Dimensions) == 0 {
		return w.invalid("at least one dimension is required")
	}
	if !w.Start.Before(w.End) {
		return w.invalid("start %s is not before end %s", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
	}
	if w.Period <= 0 || w.Period%time.Minute != 0 {
		return w.invalid("period %s must be a positive multiple of 60s", w.Period)
	}
	if w.End.Sub(w.Start)%w.Period != 0 {
		return w.invalid("period %s does not evenly divide window %s", w.Period, w.End.Sub(w.Start))
	}
	return nil
}

func (w MetricWindow) invalid(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s/%s: %s", ErrInvalidMetricWindow, w.Namespace, w.MetricName, fmt.Sprintf(format, a...))
}

// DimensionValue returns the value of the named dimension, or "".
func (w MetricWindow) DimensionValue(name string) string {
	for _, d := range w.Dimensions {
		if d.Name == name {
			return d.Value
		}
	}
	return ""
}

// MetricSample is the outcome of evaluating a MetricWindow: one aggregate value or nothing.
type MetricSample struct {
	Value      float64 `json:"value"`
	Present    bool    `json:"present"`
	Datapoints int     `json:"datapoints"`
}

// AbsentSample is the result of a window for which the provider reported no datapoints.
func AbsentSample() MetricSample {
	return MetricSample{}
}

// PresentSample wraps an aggregate value computed from n datapoints.
func PresentSample(value float64, n int) MetricSample {
	return MetricSample{Value: value, Present: true, Datapoints: n}
}

// Absent reports whether no datapoints were returned.
func (s MetricSample) Absent() bool {
	return !s.Present
}
