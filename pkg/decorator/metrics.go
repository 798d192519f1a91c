package decorator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/architeacher/inventory/pkg/metrics"
)

type (
	commandMetricsDecorator[C Command, R any] struct {
		base   CommandHandler[C, R]
		client metrics.Client
	}

	queryMetricsDecorator[Q Query, R Result] struct {
		base   QueryHandler[Q, R]
		client metrics.Client
	}
)

func (d commandMetricsDecorator[C, R]) Handle(ctx context.Context, cmd C) (result R, err error) {
	start := time.Now()

	defer func() {
		record(ctx, d.client, "commands", strings.ToLower(generateActionName(cmd)), start, err)
	}()

	return d.base.Handle(ctx, cmd)
}

func (d queryMetricsDecorator[Q, R]) Execute(ctx context.Context, query Q) (result R, err error) {
	start := time.Now()

	defer func() {
		record(ctx, d.client, "queries", strings.ToLower(generateActionName(query)), start, err)
	}()

	return d.base.Execute(ctx, query)
}

func record(ctx context.Context, client metrics.Client, family, action string, start time.Time, err error) {
	if client == nil {
		return
	}

	client.Inc(ctx, fmt.Sprintf("%s.%s.duration_seconds", family, action), time.Since(start).Seconds())

	if err == nil {
		client.Inc(ctx, fmt.Sprintf("%s.%s.success", family, action), 1)
	} else {
		client.Inc(ctx, fmt.Sprintf("%s.%s.failure", family, action), 1)
	}
}
