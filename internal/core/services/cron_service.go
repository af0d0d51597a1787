package services

import (
	"log"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance: abandoned wizard sessions are
// swept every 10 minutes so drafts nobody came back for don't pile up.
type CronService struct {
	cron   *cron.Cron
	wizard *WizardService
}

// NewCronService creates the cron service.
func NewCronService(wizard *WizardService) *CronService {
	return &CronService{
		cron:   cron.New(),
		wizard: wizard,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *CronService) Start() {
	s.cron.AddFunc("@every 10m", func() {
		if removed := s.wizard.SweepExpired(); removed > 0 {
			log.Printf("🧹 Swept %d abandoned wizard session(s)", removed)
		}
	})
	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler, waiting for a running job to finish.
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}
