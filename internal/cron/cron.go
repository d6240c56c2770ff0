package cron

import (
	"context"
	"sync"

	"github.com/caarlos0/env/v6"
	cronv3 "github.com/robfig/cron/v3"

	"github.com/ruachost/domainstack/interfaces"
	cron_config "github.com/ruachost/domainstack/internal/cron/config"
	"github.com/ruachost/domainstack/internal/logger"
	"github.com/ruachost/domainstack/internal/tracing"
)

const (
	// GroupStore is the group for storefront related jobs
	GroupStore = "store"
)

// LOCK MANAGEMENT
var jobLocks = struct {
	sync.Mutex
	locks map[string]*sync.Mutex
}{
	locks: map[string]*sync.Mutex{
		GroupStore: new(sync.Mutex),
	},
}

type CronManager struct {
	log    logger.Logger
	cron   *cronv3.Cron
	stopCh chan struct{}
	jobIDs map[string]cronv3.EntryID
	orders interfaces.OrderService
}

func NewCronManager(log logger.Logger, orders interfaces.OrderService) *CronManager {
	return &CronManager{
		log:    log,
		stopCh: make(chan struct{}),
		jobIDs: make(map[string]cronv3.EntryID),
		orders: orders,
	}
}

// StartCron initializes and starts the cron scheduler
func (cm *CronManager) StartCron() {
	cm.log.Info("Starting cron manager")
	// Create a new cron with seconds field enabled and panic recovery
	cronOptions := []cronv3.Option{
		cronv3.WithSeconds(),
		cronv3.WithChain(
			cronv3.SkipIfStillRunning(cronv3.DefaultLogger), // Skip if still running
			cronv3.Recover(cronv3.DefaultLogger),            // Default recovery as backup
		),
	}
	c := cronv3.New(cronOptions...)
	cm.registerJobs(c)
	c.Start()
	cm.cron = c
}

// Stop gracefully stops the cron manager
func (cm *CronManager) Stop() {
	if cm.cron != nil {
		cm.log.Info("Stopping cron manager")
		ctx := cm.cron.Stop()
		// Wait for jobs to finish
		<-ctx.Done()
	}
	close(cm.stopCh)
}

// registerJobs adds all cron jobs to the scheduler
func (cm *CronManager) registerJobs(c *cronv3.Cron) {
	// Load cron config from environment variables
	var cronConfig cron_config.Config
	if err := env.Parse(&cronConfig); err != nil {
		cm.log.Fatalf("Failed to parse cron config from environment: %v", err)
	}

	// Add payment reconciliation job
	if cronConfig.CronScheduleReconcilePayments != "" {
		id, err := c.AddFunc(cronConfig.CronScheduleReconcilePayments, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			jobLocks.locks[GroupStore].Lock()
			defer jobLocks.locks[GroupStore].Unlock()
			cm.reconcilePendingPayments()
		})
		if err != nil {
			cm.log.Fatalf("Could not add payment reconciliation cron job: %v", err)
		}
		cm.jobIDs["reconcile_payments"] = id
		cm.log.Infof("Registered payment reconciliation job with schedule: %s", cronConfig.CronScheduleReconcilePayments)
	}
}

func (cm *CronManager) reconcilePendingPayments() {
	cm.log.Info("Running pending payment reconciliation")

	ctx := context.Background()

	span, ctx := tracing.StartTracerSpan(ctx, "CronManager.reconcilePendingPayments")
	defer span.Finish()
	tracing.TagComponentCronJob(span)

	if err := cm.orders.ReconcilePendingPayments(ctx); err != nil {
		tracing.TraceErr(span, err)
		cm.log.Errorf("Failed to reconcile pending payments: %v", err)
		return
	}

	cm.log.Info("Successfully completed payment reconciliation")
}
