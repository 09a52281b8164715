// Package metrics publishes per-operation dashboard metrics to CloudWatch.
package metrics

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/sirupsen/logrus"
)

// CloudWatchAPI defines the CloudWatch client interface used for metrics.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Emitter sends operation metrics to CloudWatch. A nil Emitter is a no-op,
// so callers never need to branch on whether metrics are enabled.
type Emitter struct {
	client    CloudWatchAPI
	namespace string
}

// NewEmitter creates a CloudWatch metrics emitter.
func NewEmitter(ctx context.Context, namespace, region string) (*Emitter, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Emitter{client: cloudwatch.NewFromConfig(cfg), namespace: namespace}, nil
}

// EmitOperation publishes one count datum and one duration datum for a
// dashboard operation. Failures are logged, never surfaced: metrics must not
// break an operation that already succeeded.
func (e *Emitter) EmitOperation(ctx context.Context, operation string, duration time.Duration, failed bool) {
	if e == nil {
		return
	}

	dimensions := []types.Dimension{{
		Name:  aws.String("Operation"),
		Value: aws.String(operation),
	}}

	outcome := "Succeeded"
	if failed {
		outcome = "Failed"
	}

	data := []types.MetricDatum{
		{
			MetricName: aws.String(outcome),
			Unit:       types.StandardUnitCount,
			Value:      aws.Float64(1),
			Dimensions: dimensions,
		},
		{
			MetricName: aws.String("DurationMs"),
			Unit:       types.StandardUnitMilliseconds,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Dimensions: dimensions,
		},
	}

	_, err := e.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(e.namespace),
		MetricData: data,
	})
	if err != nil {
		logrus.WithError(err).WithField("operation", operation).Warn("metric publish failed")
	}
}
