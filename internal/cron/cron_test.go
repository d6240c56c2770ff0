package cron

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/internal/logger"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) CreateOrder(ctx context.Context, request *dto.CreateOrderRequest) (*dto.CreateOrderResult, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateOrderResult), args.Error(1)
}

func (m *mockOrderService) MarkOrderPaid(ctx context.Context, reference string) error {
	args := m.Called(ctx, reference)
	return args.Error(0)
}

func (m *mockOrderService) ReconcilePendingPayments(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func TestNewCronManager(t *testing.T) {
	// Arrange
	log := getLogger()
	orders := new(mockOrderService)

	// Act
	cm := NewCronManager(log, orders)

	// Assert
	assert.NotNil(t, cm)
	assert.Equal(t, log, cm.log)
	assert.Equal(t, orders, cm.orders)
	assert.NotNil(t, cm.jobIDs)
}

func TestCronManager_StartCron(t *testing.T) {
	// Set environment variable for testing
	os.Setenv("CRON_SCHEDULE_RECONCILE_PAYMENTS", "0 0 * * * *")
	defer os.Unsetenv("CRON_SCHEDULE_RECONCILE_PAYMENTS")

	// Arrange
	cm := NewCronManager(getLogger(), new(mockOrderService))

	// Act
	cm.StartCron()
	defer cm.Stop()

	// Assert
	assert.NotNil(t, cm.cron)
	assert.Contains(t, cm.jobIDs, "reconcile_payments")
	assert.Len(t, cm.cron.Entries(), 1)
}

func TestCronManager_ReconcileJobRuns(t *testing.T) {
	// every second, so the job fires during the test window
	os.Setenv("CRON_SCHEDULE_RECONCILE_PAYMENTS", "* * * * * *")
	defer os.Unsetenv("CRON_SCHEDULE_RECONCILE_PAYMENTS")

	orders := new(mockOrderService)
	done := make(chan struct{})
	orders.On("ReconcilePendingPayments", mock.Anything).Run(func(args mock.Arguments) {
		select {
		case done <- struct{}{}:
		default:
		}
	}).Return(nil)

	cm := NewCronManager(getLogger(), orders)
	cm.StartCron()
	defer cm.Stop()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("reconcile job did not run")
	}
	orders.AssertCalled(t, "ReconcilePendingPayments", mock.Anything)
}

func TestCronManager_Stop(t *testing.T) {
	os.Setenv("CRON_SCHEDULE_RECONCILE_PAYMENTS", "0 0 * * * *")
	defer os.Unsetenv("CRON_SCHEDULE_RECONCILE_PAYMENTS")

	cm := NewCronManager(getLogger(), new(mockOrderService))
	cm.StartCron()

	// Stop must not block when no job is running
	stopped := make(chan struct{})
	go func() {
		cm.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("cron manager did not stop")
	}
}
