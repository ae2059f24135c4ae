package services

import (
	"testing"

	"github.com/hazelbrook/doseline/internal/models"
)

func TestCanAcquireRoomAtLimit(t *testing.T) {
	allowed, limit := CanAcquireRoom(models.PlanDuo, 2, false)
	if allowed {
		t.Fatalf("expected denial at the plan ceiling")
	}
	if limit != 2 {
		t.Fatalf("expected limit 2, got %d", limit)
	}
}

func TestCanAcquireRoomBelowLimit(t *testing.T) {
	allowed, limit := CanAcquireRoom(models.PlanFamily, 3, false)
	if !allowed {
		t.Fatalf("expected approval below the ceiling")
	}
	if limit != 5 {
		t.Fatalf("expected limit 5, got %d", limit)
	}
}

func TestGracePeriodForcesZeroLimit(t *testing.T) {
	for _, plan := range []string{models.PlanSingle, models.PlanDuo, models.PlanFamily} {
		allowed, limit := CanAcquireRoom(plan, 0, true)
		if allowed || limit != 0 {
			t.Fatalf("plan %q in grace period: expected denied with limit 0, got %v/%d", plan, allowed, limit)
		}
		if EffectivePlan(plan, true) != models.PlanNone {
			t.Fatalf("plan %q in grace period must present as none", plan)
		}
	}
}

func TestUnknownPlanHasNoRooms(t *testing.T) {
	allowed, limit := CanAcquireRoom("plan.retired_tier", 0, false)
	if allowed || limit != 0 {
		t.Fatalf("unknown plan must map to limit 0, got %v/%d", allowed, limit)
	}
}
