package sync

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"notion-sheets-sync/internal/config"
	"notion-sheets-sync/internal/logger"
)

// Scheduler triggers the configured sync direction on a cron interval.
type Scheduler struct {
	cfg     config.SchedulerConfig
	manager *Manager
	cron    *cron.Cron
	entryID cron.EntryID
}

func NewScheduler(cfg config.SchedulerConfig, manager *Manager) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		manager: manager,
		cron:    cron.New(),
	}
}

func (s *Scheduler) Start() {
	if !s.cfg.Enabled {
		logger.Log.Info("Scheduler is disabled")
		return
	}

	direction, err := ParseDirection(s.cfg.Direction)
	if err != nil {
		logger.Log.Error("Invalid scheduler direction", zap.Error(err))
		return
	}

	logger.Log.Info("Starting scheduler",
		zap.String("interval", s.cfg.Interval),
		zap.String("direction", string(direction)))

	id, err := s.cron.AddFunc(s.cfg.Interval, func() {
		s.triggerSync(direction)
	})

	if err != nil {
		logger.Log.Error("Failed to schedule job", zap.Error(err))
		return
	}

	s.entryID = id
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	logger.Log.Info("Stopped scheduler")
}

func (s *Scheduler) triggerSync(direction Direction) {
	logger.Log.Info("Triggering scheduled sync")

	if err := s.manager.TriggerSync(direction); err != nil {
		if err == ErrSyncRunning {
			logger.Log.Info("Sync already running, skipping scheduled run")
			return
		}
		logger.Log.Error("Failed to start scheduled sync", zap.Error(err))
	}
}
