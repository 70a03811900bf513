package notification

import (
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the 5-minute notification pass. The tick interval must
// stay at or below the 10-minute qualification windows in the service, or
// contests can slip through unnotified.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
}

func NewScheduler(service *Service) *Scheduler {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	return &Scheduler{
		cron:    c,
		service: service,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("*/5 * * * *", func() {
		if err := s.service.Tick(); err != nil {
			log.Printf("Notification tick error: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Notification scheduler started (every 5 minutes)")

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Notification scheduler stopped")
}

func (s *Scheduler) RunNow() error {
	return s.service.Tick()
}
