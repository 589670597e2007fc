package processor

import (
	"context"

	"maplemarket/pkg/catalog"
	"maplemarket/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronScheduler периодически запускает прогон генерации по cron расписанию
type CronScheduler struct {
	cron        *cron.Cron
	coordinator *Coordinator
	targets     map[catalog.Category]int
}

func NewCronScheduler(coordinator *Coordinator, targets map[catalog.Category]int) *CronScheduler {
	return &CronScheduler{
		cron:        cron.New(),
		coordinator: coordinator,
		targets:     targets,
	}
}

func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("Cron job triggered: generating catalog products")

		if _, err := s.coordinator.Run(ctx, s.targets); err != nil {
			logger.Error().Err(err).Msg("Scheduled generation run failed")
		} else {
			logger.Info().Msg("Cron job completed: generation run finished")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	// Первый прогон сразу при старте, не дожидаясь расписания
	logger.Info().Msg("Performing initial generation run...")
	if _, err := s.coordinator.Run(ctx, s.targets); err != nil {
		logger.Warn().Err(err).Msg("Initial generation run failed")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
