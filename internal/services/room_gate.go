package services

import "github.com/hazelbrook/doseline/internal/models"

// EffectivePlan is the plan a user is treated as having. During a billing
// grace period the stored plan is ignored and the user presents as unplanned;
// existing rooms stay accessible, new ones are blocked.
func EffectivePlan(planID string, gracePeriod bool) string {
	if gracePeriod {
		return models.PlanNone
	}
	return planID
}

func EffectiveRoomLimit(planID string, gracePeriod bool) int {
	if gracePeriod {
		return 0
	}
	return models.RoomLimitForPlan(planID)
}

// CanAcquireRoom decides whether a user may own one more room, either by
// creating it or by accepting an ownership transfer. Returns the decision and
// the effective limit.
func CanAcquireRoom(planID string, ownedRooms int, gracePeriod bool) (bool, int) {
	limit := EffectiveRoomLimit(planID, gracePeriod)
	return limit > 0 && ownedRooms < limit, limit
}
