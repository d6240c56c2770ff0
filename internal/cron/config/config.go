package config

type Config struct {
	CronScheduleReconcilePayments string `env:"CRON_SCHEDULE_RECONCILE_PAYMENTS" envDefault:"0 */10 * * * *"`
}
