package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
)

type fakeCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (f *fakeCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, f.err
}

func TestEmitOperation(t *testing.T) {
	fake := &fakeCloudWatch{}
	e := &Emitter{client: fake, namespace: "GroupMaker"}

	e.EmitOperation(context.Background(), "create_group", 1500*time.Millisecond, false)

	if len(fake.inputs) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(fake.inputs))
	}
	input := fake.inputs[0]
	if *input.Namespace != "GroupMaker" {
		t.Fatalf("unexpected namespace %q", *input.Namespace)
	}
	if len(input.MetricData) != 2 {
		t.Fatalf("expected count and duration data, got %d", len(input.MetricData))
	}
	if *input.MetricData[0].MetricName != "Succeeded" {
		t.Fatalf("unexpected metric name %q", *input.MetricData[0].MetricName)
	}
	if *input.MetricData[1].MetricName != "DurationMs" || *input.MetricData[1].Value != 1500 {
		t.Fatalf("unexpected duration datum %+v", input.MetricData[1])
	}
	if *input.MetricData[0].Dimensions[0].Value != "create_group" {
		t.Fatalf("unexpected dimension %+v", input.MetricData[0].Dimensions)
	}
}

func TestEmitOperationFailedOutcome(t *testing.T) {
	fake := &fakeCloudWatch{}
	e := &Emitter{client: fake, namespace: "GroupMaker"}

	e.EmitOperation(context.Background(), "delete_group", time.Second, true)

	if *fake.inputs[0].MetricData[0].MetricName != "Failed" {
		t.Fatalf("unexpected metric name %q", *fake.inputs[0].MetricData[0].MetricName)
	}
}

func TestEmitOperationSwallowsErrors(t *testing.T) {
	fake := &fakeCloudWatch{err: errors.New("throttled")}
	e := &Emitter{client: fake, namespace: "GroupMaker"}

	// Must not panic or surface the error.
	e.EmitOperation(context.Background(), "list_groups", time.Second, false)
}

func TestNilEmitterIsNoOp(t *testing.T) {
	var e *Emitter
	e.EmitOperation(context.Background(), "anything", time.Second, false)
}
