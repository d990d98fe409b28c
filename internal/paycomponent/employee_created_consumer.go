package paycomponent

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tl-payroll/internal/events"
	paycomponenterrors "tl-payroll/internal/paycomponent/errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// defaultComponents are provisioned at zero for every new employee so
// operators only fill in amounts instead of remembering the codes.
var defaultComponents = []string{
	CodeFoodAllowance,
	CodeTransportAllowance,
}

// EmployeeCreatedConsumer provisions the standard allowance components
// when an employee is created.
type EmployeeCreatedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewEmployeeCreatedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *EmployeeCreatedConsumer {
	l := zap.L().Named("paycomponent.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("paycomponent.consumer")
	}

	return &EmployeeCreatedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.EmployeeCreatedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *EmployeeCreatedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume employee_created failed", zap.Error(err))
				continue
			}

			var event events.EmployeeCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode employee_created event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid employee_created event failed", zap.Error(commitErr))
				}
				continue
			}

			if err := c.provision(ctx, event); err != nil {
				c.logger.Error("provision default pay components failed",
					zap.String("employee_id", event.EmployeeID),
					zap.String("company_id", event.CompanyID),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit employee_created event failed", zap.Error(err))
				continue
			}

			c.logger.Info("default pay components provisioned",
				zap.String("employee_id", event.EmployeeID),
				zap.String("company_id", event.CompanyID),
			)
		}
	}()
}

func (c *EmployeeCreatedConsumer) provision(ctx context.Context, event events.EmployeeCreatedEvent) error {
	effectiveFrom := time.Now().UTC().Format("2006-01-02")
	for _, code := range defaultComponents {
		_, err := c.service.Create(ctx, event.CompanyID, CreateComponentRequest{
			EmployeeID:    event.EmployeeID,
			Code:          code,
			AmountCents:   0,
			EffectiveFrom: effectiveFrom,
		})
		if err != nil {
			// Redelivered event is safe to skip.
			if errors.Is(err, paycomponenterrors.ErrComponentSlotTaken) {
				c.logger.Warn("pay component already exists for event, skipping",
					zap.String("employee_id", event.EmployeeID),
					zap.String("code", code),
				)
				continue
			}
			return err
		}
	}
	return nil
}

func (c *EmployeeCreatedConsumer) Close() error {
	return c.reader.Close()
}
