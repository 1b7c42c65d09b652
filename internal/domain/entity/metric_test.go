package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricWindow_Validate(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dim := Dimension{Name: "InstanceId", Value: "i-1"}

	valid := NewTrailingWindow(now, 31, 24*time.Hour, "AWS/EC2", "CPUUtilization", StatisticAverage, dim)

	tests := []struct {
		name    string
		mutate  func(w *MetricWindow)
		wantErr bool
	}{
		{"valid", func(w *MetricWindow) {}, false},
		{"single period over the whole window", func(w *MetricWindow) { w.Period = 31 * 24 * time.Hour }, false},
		{"missing namespace", func(w *MetricWindow) { w.Namespace = "" }, true},
		{"missing metric", func(w *MetricWindow) { w.MetricName = "" }, true},
		{"no dimensions", func(w *MetricWindow) { w.Dimensions = nil }, true},
		{"start after end", func(w *MetricWindow) { w.Start, w.End = w.End, w.Start }, true},
		{"zero period", func(w *MetricWindow) { w.Period = 0 }, true},
		{"sub-minute period", func(w *MetricWindow) { w.Period = 90 * time.Second }, true},
		{"period does not divide window", func(w *MetricWindow) { w.Period = 7 * 24 * time.Hour }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := valid
			w.Dimensions = append([]Dimension(nil), valid.Dimensions...)
			tt.mutate(&w)

			err := w.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMetricWindow)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewTrailingWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	w := NewTrailingWindow(now, 31, 24*time.Hour, "AWS/S3", "NumberOfObjects", StatisticSum,
		Dimension{Name: "BucketName", Value: "b-1"},
		Dimension{Name: "StorageType", Value: "AllStorageTypes"})

	assert.Equal(t, now, w.End)
	assert.Equal(t, time.Date(2025, 1, 29, 10, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, "b-1", w.DimensionValue("BucketName"))
	assert.Equal(t, "", w.DimensionValue("FilterId"))
}

func TestMetricSample(t *testing.T) {
	assert.True(t, AbsentSample().Absent())

	s := PresentSample(4.2, 31)
	assert.False(t, s.Absent())
	assert.Equal(t, 4.2, s.Value)
	assert.Equal(t, 31, s.Datapoints)
}
