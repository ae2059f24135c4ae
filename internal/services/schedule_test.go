package services

import (
	"testing"
	"time"

	"github.com/hazelbrook/doseline/internal/models"
)

func TestItemDueOnWithoutSchedule(t *testing.T) {
	item := models.Item{Name: "Omalizumab"}

	for offset := 0; offset < 30; offset++ {
		day := mustParseDay("2025-01-01").AddDate(0, 0, offset)
		if !ItemDueOn(item, day) {
			t.Fatalf("expected unscheduled item to be due on %s", day.Format("2006-01-02"))
		}
	}
}

func TestItemDueOnEveryOtherDay(t *testing.T) {
	start := mustParseDay("2025-03-10")
	item := models.Item{
		Name:              "Peanut flour",
		ScheduleType:      models.ScheduleEveryOtherDay,
		ScheduleStartDate: &start,
	}

	if !ItemDueOn(item, start) {
		t.Fatalf("expected item due on its own start date")
	}

	previous := ItemDueOn(item, start)
	for offset := 1; offset < 14; offset++ {
		day := start.AddDate(0, 0, offset)
		due := ItemDueOn(item, day)
		if due == previous {
			t.Fatalf("expected alternation to flip on %s", day.Format("2006-01-02"))
		}
		previous = due
	}
}

func TestItemDueOnCustomWeekdays(t *testing.T) {
	// 2=Monday, 4=Wednesday, 6=Friday.
	item := models.Item{
		Name:             "Antihistamine",
		ScheduleType:     models.ScheduleCustom,
		ScheduleWeekdays: []int{2, 4, 6},
	}

	start := mustParseDay("2025-06-01")
	for offset := 0; offset < 28; offset++ {
		day := start.AddDate(0, 0, offset)
		expected := day.Weekday() == time.Monday || day.Weekday() == time.Wednesday || day.Weekday() == time.Friday
		if ItemDueOn(item, day) != expected {
			t.Fatalf("wrong due decision on %s (%s)", day.Format("2006-01-02"), day.Weekday())
		}
	}
}

func TestItemDueOnCustomEmptyWeekdaySet(t *testing.T) {
	item := models.Item{
		Name:         "Misconfigured",
		ScheduleType: models.ScheduleCustom,
	}

	for offset := 0; offset < 14; offset++ {
		day := mustParseDay("2025-01-01").AddDate(0, 0, offset)
		if ItemDueOn(item, day) {
			t.Fatalf("expected empty weekday set to be due on no day")
		}
	}
}

func TestDueItemsOnPreservesOrder(t *testing.T) {
	monday := mustParseDay("2025-06-02")
	items := []models.Item{
		{Name: "first", ScheduleType: models.ScheduleCustom, ScheduleWeekdays: []int{2}},
		{Name: "skipped", ScheduleType: models.ScheduleCustom, ScheduleWeekdays: []int{3}},
		{Name: "second"},
	}

	due := DueItemsOn(items, monday)
	if len(due) != 2 {
		t.Fatalf("expected 2 due items, got %d", len(due))
	}
	if due[0].Name != "first" || due[1].Name != "second" {
		t.Fatalf("unexpected order: %s, %s", due[0].Name, due[1].Name)
	}
}

func mustParseDay(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return parsed
}
