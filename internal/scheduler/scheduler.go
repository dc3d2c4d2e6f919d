package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler re-runs the widget update on a cron spec, the CLI analog of the
// page-load activation the widget gets in a browser.
type Scheduler struct {
	c        *cron.Cron
	cronSpec string
}

func New(cronSpec string, job func()) (*Scheduler, error) {
	s := &Scheduler{
		c:        cron.New(), // standard 5-field spec, runs in server local time
		cronSpec: cronSpec,
	}
	_, err := s.c.AddFunc(cronSpec, func() {
		logrus.Info("Scheduler tick: running widget update")
		job()
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	logrus.Infof("Starting scheduler (cron=%s)", s.cronSpec)
	s.c.Start()
}

func (s *Scheduler) Stop() {
	s.c.Stop()
}
