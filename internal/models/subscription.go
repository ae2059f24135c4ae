package models

const (
	PlanNone   = ""
	PlanSingle = "plan.single"
	PlanDuo    = "plan.duo"
	PlanFamily = "plan.family"
)

// Room ceilings per plan tier. This mirrors the external pricing table and is
// intentionally not computed from anything.
var planRoomLimits = map[string]int{
	PlanNone:   0,
	PlanSingle: 1,
	PlanDuo:    2,
	PlanFamily: 5,
}

func RoomLimitForPlan(planID string) int {
	limit, ok := planRoomLimits[planID]
	if !ok {
		return 0
	}
	return limit
}

func KnownPlan(planID string) bool {
	_, ok := planRoomLimits[planID]
	return ok
}
