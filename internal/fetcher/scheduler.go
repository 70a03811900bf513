package fetcher

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the hourly contest import. Ticks are serialized: if an
// import is still running when the next tick fires, that tick is skipped —
// dedup makes a delayed rerun harmless, an overlapping one is just wasted
// work against the same sources.
type Scheduler struct {
	cron     *cron.Cron
	importer *Importer
}

func NewScheduler(importer *Importer) *Scheduler {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	return &Scheduler{
		cron:     c,
		importer: importer,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		log.Println("Starting scheduled contest import...")
		if _, _, err := s.importer.Run(context.Background()); err != nil {
			log.Printf("Scheduled import error: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Contest import scheduler started (hourly)")

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Contest import scheduler stopped")
}

func (s *Scheduler) RunNow(ctx context.Context) error {
	_, _, err := s.importer.Run(ctx)
	return err
}
