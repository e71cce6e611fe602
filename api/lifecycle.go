package api

import (
	"context"
	"time"

	"hackathon_system/common/constants/eventstatus"
	"hackathon_system/common/db/models"
	"hackathon_system/lib/logger"
)

// refreshEventStatuses periodically publishes number of events per status
func (h *Handler) refreshEventStatuses() {
	ticker := time.NewTicker(h.config.Events.StatusRefreshInterval.Val())
	defer ticker.Stop()
	for {
		if err := h.updateEventStatusMetrics(h.hs.StopCtx); err != nil {
			logger.Warn("Can not refresh event statuses, error: %v", err)
		}
		select {
		case <-h.hs.StopCtx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *Handler) updateEventStatusMetrics(ctx context.Context) error {
	var events []models.Event
	err := h.db.WithContext(ctx).
		Select("id", "start_date", "end_date", "cancelled").
		Find(&events).
		Error
	if err != nil {
		return err
	}
	now := h.now()
	counts := make(map[eventstatus.Status]int)
	for _, event := range events {
		counts[event.Status(now)]++
	}
	h.hs.Metrics.SetEventCounts(counts)
	logger.Trace("Event statuses refreshed: %v", counts)
	return nil
}
