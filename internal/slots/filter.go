package slots

import (
	"time"

	"github.com/turnate/booking-engine/internal/domain"
)

// IsOfferable решает, можно ли предложить слот клиенту
//
// Слот отклоняется, если:
//  1. пересекается хотя бы с одним занятым интервалом дня
//     (slot.start < occ.end && slot.end > occ.start; касание границ не пересечение)
//  2. начинается раньше now
func IsOfferable(slot domain.CandidateSlot, occupied []domain.Interval, now time.Time) bool {
	if slot.Start.Before(now) {
		return false
	}

	interval := slot.Interval()
	for _, occ := range occupied {
		if interval.Overlaps(occ) {
			return false
		}
	}

	return true
}

// FilterAvailable оставляет только слоты, которые можно предложить клиенту
// Для каждого слота берутся занятые интервалы его дня из индекса.
func FilterAvailable(candidates []domain.CandidateSlot, idx OccupancyIndex, now time.Time) []domain.CandidateSlot {
	result := make([]domain.CandidateSlot, 0, len(candidates))
	for _, slot := range candidates {
		if IsOfferable(slot, idx.On(slot.Start), now) {
			result = append(result, slot)
		}
	}
	return result
}
