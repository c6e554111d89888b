package background

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/mfk4us/bocc-client-panel/internal/services"
)

// JobScheduler owns the periodic background work of the panel, currently the
// template catalogue refresh that keeps the cached provider templates warm.
type JobScheduler struct {
	scheduler       gocron.Scheduler
	templateService services.TemplateService
	refreshInterval time.Duration
}

func NewJobScheduler(templateService services.TemplateService, refreshInterval time.Duration) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:       scheduler,
		templateService: templateService,
		refreshInterval: refreshInterval,
	}
	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(js.refreshInterval),
		gocron.NewTask(js.refreshTemplates, context.Background()),
		gocron.WithName("template-cache-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (js *JobScheduler) refreshTemplates(ctx context.Context) {
	templates, err := js.templateService.Refresh(ctx)
	if err != nil {
		log.Printf("template cache refresh failed: %v", err)
		return
	}
	log.Printf("template cache refreshed, %d templates", len(templates))
}
