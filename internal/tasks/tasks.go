package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"cloudmzansi/server/internal/config"
	"cloudmzansi/server/internal/services"
)

// TaskType defines the type of a background task.
const (
	TypeInvoiceGenerate = "billing:invoice:generate"
	TypeOverdueNotify   = "billing:overdue:notify"
	TypeRetentionSweep  = "retention:sweep"
)

// --- Task Client (Enqueuing tasks) ---

func NewClient(rdb *redis.Client) *asynq.Client {
	return asynq.NewClient(redisOpt(rdb))
}

func redisOpt(rdb *redis.Client) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}
}

// --- Scheduler (Periodic enqueuing) ---

// NewScheduler registers the periodic jobs. Entries carry a uniqueness TTL
// slightly under their own interval, so when several replicas all run the
// scheduler only one enqueue per window wins.
func NewScheduler(rdb *redis.Client, cfg *config.Config) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt(rdb), &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	entries := []struct {
		taskType string
		interval time.Duration
	}{
		{TypeInvoiceGenerate, cfg.BillingInterval},
		{TypeOverdueNotify, cfg.OverdueCheckInterval},
		{TypeRetentionSweep, cfg.RetentionInterval},
	}

	for _, e := range entries {
		cronspec := fmt.Sprintf("@every %s", e.interval)
		uniqueWindow := e.interval - time.Minute
		if uniqueWindow < time.Minute {
			uniqueWindow = time.Minute
		}
		task := asynq.NewTask(e.taskType, nil)
		if _, err := scheduler.Register(cronspec, task, asynq.Unique(uniqueWindow)); err != nil {
			return nil, fmt.Errorf("failed to register periodic task %s: %w", e.taskType, err)
		}
	}

	return scheduler, nil
}

// --- Task Server (Processing tasks) ---

// TaskProcessor handles the processing of tasks.
// It holds dependencies needed by task handlers.
type TaskProcessor struct {
	cfg                 *config.Config
	billingService      services.IBillingService
	notificationService services.INotificationService
	retentionService    services.IRetentionService
}

func NewTaskProcessor(
	cfg *config.Config,
	billingService services.IBillingService,
	notificationService services.INotificationService,
	retentionService services.IRetentionService,
) *TaskProcessor {
	return &TaskProcessor{
		cfg:                 cfg,
		billingService:      billingService,
		notificationService: notificationService,
		retentionService:    retentionService,
	}
}

// NewServeMux wires task types to processor handlers.
func NewServeMux(processor *TaskProcessor) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeInvoiceGenerate, processor.HandleInvoiceGenerateTask)
	mux.HandleFunc(TypeOverdueNotify, processor.HandleOverdueNotifyTask)
	mux.HandleFunc(TypeRetentionSweep, processor.HandleRetentionSweepTask)
	return mux
}

// SetupServer configures and returns an Asynq server instance.
func SetupServer(rdb *redis.Client) *asynq.Server {
	return asynq.NewServer(
		redisOpt(rdb),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq Error] Task Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)
}

// --- Task Handlers ---

// HandleInvoiceGenerateTask generates one invoice per due subscription.
// A failure on one subscription is logged and skipped so a single bad row
// never starves the rest of the billing run.
func (p *TaskProcessor) HandleInvoiceGenerateTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Starting invoice generation task...")

	subs := p.billingService.GetDueSubscriptions(ctx)
	generatedCount := 0

	for _, sub := range subs {
		invoice, err := p.billingService.GenerateInvoice(ctx, services.GenerateInvoiceInput{
			ClientID:       sub.ClientID,
			SubscriptionID: sub.ID,
			PlanID:         sub.PlanID,
			Amount:         sub.Amount,
			TaxRate:        p.cfg.DefaultTaxRate,
		})
		if err != nil {
			log.Printf("Error generating invoice for subscription %s: %v. Skipping.", sub.ID, err)
			continue
		}
		log.Printf("Invoice %s generated for client %s (%.2f %s)", invoice.ID, invoice.ClientID, invoice.Total, invoice.Currency)
		generatedCount++
	}

	log.Printf("Invoice generation task finished. Generated %d invoices.", generatedCount)
	return nil
}

// HandleOverdueNotifyTask emails clients about overdue invoices.
func (p *TaskProcessor) HandleOverdueNotifyTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Starting overdue invoice check...")

	invoices := p.billingService.GetOverdueInvoices(ctx)
	notifiedCount := 0

	for i := range invoices {
		inv := &invoices[i]
		if err := p.notificationService.SendLatePaymentNotification(ctx, inv); err != nil {
			log.Printf("Error notifying about overdue invoice %s: %v. Skipping.", inv.ID, err)
			continue
		}
		notifiedCount++
	}

	log.Printf("Overdue check finished. Sent %d notifications for %d overdue invoices.", notifiedCount, len(invoices))
	return nil
}

// HandleRetentionSweepTask runs the data retention job. Errors propagate so
// asynq retries a partially completed sweep; already-deleted rows are gone
// and will not match the next scan.
func (p *TaskProcessor) HandleRetentionSweepTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Starting data retention sweep...")

	summary, err := p.retentionService.RunDataRetentionJob(ctx)
	if err != nil {
		return fmt.Errorf("retention sweep failed: %w", err)
	}

	log.Printf("Retention sweep finished: %+v", *summary)
	return nil
}
