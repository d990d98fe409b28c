package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tl-payroll/internal/company"
	"tl-payroll/internal/paycomponent"
	"tl-payroll/internal/payroll"
	"tl-payroll/internal/payslip"
	"tl-payroll/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer starts the Kafka consumers: default pay component
// provisioning on employee creation, and payslip rendering on paid runs.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	payComponentRepo := paycomponent.NewRepository(gormDB)
	payComponentService := paycomponent.NewService(sqlDB, payComponentRepo)

	payrollRepo := payroll.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	payslipService := payslip.NewService(payslipRepo, payrollRepo, companyRepo)

	componentConsumer := paycomponent.NewEmployeeCreatedConsumer(
		kafkaBroker,
		"tl-payroll-pay-components",
		payComponentService,
	)
	defer componentConsumer.Close()

	payslipConsumer := payslip.NewRunPaidConsumer(
		kafkaBroker,
		"tl-payroll-payslips",
		payslipService,
	)
	defer payslipConsumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	componentConsumer.Start(ctx)
	payslipConsumer.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
