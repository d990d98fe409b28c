package payslip

import (
	"context"
	"encoding/json"
	"time"

	"tl-payroll/internal/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunPaidConsumer renders payslips when a payroll run is marked paid.
type RunPaidConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewRunPaidConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *RunPaidConsumer {
	l := zap.L().Named("payslip.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.consumer")
	}

	return &RunPaidConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.PayrollRunPaidTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *RunPaidConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume payroll_run_paid failed", zap.Error(err))
				continue
			}

			var event events.PayrollRunPaidEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode payroll_run_paid event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid payroll_run_paid event failed", zap.Error(commitErr))
				}
				continue
			}

			count, err := c.service.GenerateForRun(ctx, event.CompanyID, event.RunID)
			if err != nil {
				c.logger.Error("generate payslips for paid run failed",
					zap.String("run_id", event.RunID),
					zap.String("company_id", event.CompanyID),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit payroll_run_paid event failed", zap.Error(err))
				continue
			}

			c.logger.Info("payslips generated for paid run",
				zap.String("run_id", event.RunID),
				zap.Int("count", count),
			)
		}
	}()
}

func (c *RunPaidConsumer) Close() error {
	return c.reader.Close()
}
