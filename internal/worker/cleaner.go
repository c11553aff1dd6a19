package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
)

// Cleaner периодически удаляет истекшие записи из key-value хранилища.
// Чтение отфильтровывает истекшие ключи само, поэтому очистка не влияет
// на корректность ответов - только сдерживает рост таблицы
type Cleaner struct {
	store     ExpiredPurger
	logger    Logger
	scheduler *gocron.Scheduler
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewCleaner создает новый экземпляр очистки хранилища
func NewCleaner(store ExpiredPurger, logger Logger, interval time.Duration) *Cleaner {
	ctx, cancel := context.WithCancel(context.Background())

	return &Cleaner{
		store:     store,
		logger:    logger,
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start запускает периодическую очистку
func (c *Cleaner) Start() error {
	c.logger.Info("Starting store cleaner (interval: %s)", c.interval)

	if _, err := c.scheduler.Every(c.interval).Do(c.purge); err != nil {
		return fmt.Errorf("failed to schedule store cleanup: %w", err)
	}

	c.scheduler.StartAsync()
	return nil
}

// Stop останавливает очистку
func (c *Cleaner) Stop() {
	c.logger.Info("Stopping store cleaner")
	c.cancel()
	c.scheduler.Stop()
	c.logger.Info("Store cleaner stopped")
}

func (c *Cleaner) purge() {
	deleted, err := c.store.PurgeExpired(c.ctx)
	if err != nil {
		// Хранилище best-effort: очистка повторится на следующем тике
		c.logger.Warn("Store cleanup failed: %v", err)
		return
	}

	if deleted > 0 {
		c.logger.Info("Store cleanup removed %d expired entries", deleted)
	}
}
