package aws

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/diillson/aws-idle-notifier/internal/domain/entity"
)

// QueryMetric evaluates a window with GetMetricStatistics and collapses the
// returned datapoints into one aggregate. No datapoints yields an absent sample.
func (r *AWSRepositoryImpl) QueryMetric(ctx context.Context, region string, window entity.MetricWindow) (entity.MetricSample, error) {
	if err := window.Validate(); err != nil {
		return entity.AbsentSample(), err
	}

	client, err := r.cloudWatchClient(ctx, region)
	if err != nil {
		return entity.AbsentSample(), err
	}

	output, err := client.GetMetricStatistics(ctx, buildMetricInput(window))
	if err != nil {
		return entity.AbsentSample(), describeError(
			fmt.Sprintf("GetMetricStatistics %s/%s %s", window.Namespace, window.MetricName, formatDimensions(window.Dimensions)), err)
	}

	return collapseDatapoints(output.Datapoints, window.Statistic), nil
}

func buildMetricInput(window entity.MetricWindow) *cloudwatch.GetMetricStatisticsInput {
	dims := make([]cwTypes.Dimension, 0, len(window.Dimensions))
	for _, d := range window.Dimensions {
		dims = append(dims, cwTypes.Dimension{Name: aws.String(d.Name), Value: aws.String(d.Value)})
	}

	statistics := []cwTypes.Statistic{cwTypes.Statistic(window.Statistic)}
	if window.Statistic == entity.StatisticAverage {
		// Sample counts let per-period averages be weighted when collapsed.
		statistics = append(statistics, cwTypes.StatisticSampleCount)
	}

	return &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(window.Namespace),
		MetricName: aws.String(window.MetricName),
		Dimensions: dims,
		StartTime:  aws.Time(window.Start),
		EndTime:    aws.Time(window.End),
		Period:     aws.Int32(int32(window.Period.Seconds())),
		Statistics: statistics,
	}
}

// collapseDatapoints reduces per-period datapoints to a single value for the
// whole window according to the requested statistic.
func collapseDatapoints(datapoints []cwTypes.Datapoint, statistic entity.Statistic) entity.MetricSample {
	var values []float64
	var counts []float64
	for _, dp := range datapoints {
		v := statisticValue(dp, statistic)
		if v == nil {
			continue
		}
		values = append(values, *v)
		counts = append(counts, aws.ToFloat64(dp.SampleCount))
	}
	if len(values) == 0 {
		return entity.AbsentSample()
	}

	var result float64
	switch statistic {
	case entity.StatisticSum, entity.StatisticSampleCount:
		for _, v := range values {
			result += v
		}
	case entity.StatisticMinimum:
		result = math.Inf(1)
		for _, v := range values {
			result = math.Min(result, v)
		}
	case entity.StatisticMaximum:
		result = math.Inf(-1)
		for _, v := range values {
			result = math.Max(result, v)
		}
	default:
		result = weightedMean(values, counts)
	}
	return entity.PresentSample(result, len(values))
}

// weightedMean weights each value by its sample count, falling back to the
// plain mean when any count is missing.
func weightedMean(values, counts []float64) float64 {
	var sum, weighted, weight float64
	weightsUsable := true
	for i, v := range values {
		sum += v
		if counts[i] <= 0 {
			weightsUsable = false
			continue
		}
		weighted += v * counts[i]
		weight += counts[i]
	}
	if weightsUsable && weight > 0 {
		return weighted / weight
	}
	return sum / float64(len(values))
}

func statisticValue(dp cwTypes.Datapoint, statistic entity.Statistic) *float64 {
	switch statistic {
	case entity.StatisticSum:
		return dp.Sum
	case entity.StatisticMinimum:
		return dp.Minimum
	case entity.StatisticMaximum:
		return dp.Maximum
	case entity.StatisticSampleCount:
		return dp.SampleCount
	default:
		return dp.Average
	}
}

func formatDimensions(dims []entity.Dimension) string {
	parts := make([]string, 0, len(dims))
	for _, d := range dims {
		parts = append(parts, d.Name+"="+d.Value)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
