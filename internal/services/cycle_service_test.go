package services

import (
	"errors"
	"testing"
	"time"

	"github.com/hazelbrook/doseline/internal/models"
)

func newCycleFixture() (*CycleService, *fakeCycleStore, *fakeItemStore, *fakeLogStore) {
	cycles := &fakeCycleStore{}
	items := &fakeItemStore{}
	logs := &fakeLogStore{}
	return NewCycleService(cycles, items, logs, time.UTC), cycles, items, logs
}

func TestCreateCycleNumbersSequentially(t *testing.T) {
	service, _, _, _ := newCycleFixture()
	input := CycleInput{
		PatientName:       "Sam",
		StartDate:         mustParseDay("2025-01-01"),
		FoodChallengeDate: mustParseDay("2025-06-01"),
	}

	first, err := service.CreateCycle(1, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := service.CreateCycle(1, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.Number != 1 || second.Number != 2 {
		t.Fatalf("expected numbers 1 and 2, got %d and %d", first.Number, second.Number)
	}
}

func TestCreateCycleRejectsInvertedDates(t *testing.T) {
	service, _, _, _ := newCycleFixture()
	_, err := service.CreateCycle(1, CycleInput{
		PatientName:       "Sam",
		StartDate:         mustParseDay("2025-06-01"),
		FoodChallengeDate: mustParseDay("2025-01-01"),
	})
	if !errors.Is(err, ErrCycleDatesInverted) {
		t.Fatalf("expected ErrCycleDatesInverted, got %v", err)
	}
}

func TestRecordMissedDoseIsIdempotent(t *testing.T) {
	service, cycles, _, _ := newCycleFixture()
	cycle, _ := service.CreateCycle(1, CycleInput{
		PatientName:       "Sam",
		StartDate:         mustParseDay("2025-01-01"),
		FoodChallengeDate: mustParseDay("2025-06-01"),
	})

	day := mustParseDay("2025-01-03")
	first, err := service.RecordMissedDose(cycle.ID, day)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	second, err := service.RecordMissedDose(cycle.ID, day)
	if err != nil {
		t.Fatalf("second record failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same record back, got %d and %d", first.ID, second.ID)
	}
	if len(cycles.missed) != 1 {
		t.Fatalf("expected a single missed-dose row, got %d", len(cycles.missed))
	}
}

func TestRecordMissedDoseBeforeStartRejected(t *testing.T) {
	service, _, _, _ := newCycleFixture()
	cycle, _ := service.CreateCycle(1, CycleInput{
		PatientName:       "Sam",
		StartDate:         mustParseDay("2025-01-10"),
		FoodChallengeDate: mustParseDay("2025-06-01"),
	})

	_, err := service.RecordMissedDose(cycle.ID, mustParseDay("2025-01-05"))
	if !errors.Is(err, ErrMissedDateOutside) {
		t.Fatalf("expected ErrMissedDateOutside, got %v", err)
	}
}

func TestBuildWeekViewAssemblesRows(t *testing.T) {
	service, _, items, logs := newCycleFixture()
	cycle, _ := service.CreateCycle(1, CycleInput{
		PatientName:       "Sam",
		StartDate:         mustParseDay("2025-01-01"),
		FoodChallengeDate: mustParseDay("2025-06-01"),
	})
	service.RecordMissedDose(cycle.ID, mustParseDay("2025-01-02"))

	items.items = []models.Item{
		{
			ID:       11,
			CycleID:  cycle.ID,
			Name:     "Peanut flour",
			Category: models.CategoryTreatment,
			WeeklyDoses: []models.WeeklyDose{
				{Week: 1, Dose: 0.5, Unit: "mg"},
			},
		},
		{
			ID:               12,
			CycleID:          cycle.ID,
			Name:             "Antihistamine",
			Category:         models.CategoryMedicine,
			ScheduleType:     models.ScheduleCustom,
			ScheduleWeekdays: []int{4}, // Wednesdays
		},
	}
	logs.entries = []models.ConsumptionLog{
		{CycleID: cycle.ID, ItemID: 11, UserID: 7, Date: mustParseDay("2025-01-01")},
	}

	now := mustParseDay("2025-01-03")
	view, err := service.BuildWeekView(cycle, 0, now)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if view.Week != 1 {
		t.Fatalf("expected week 1, got %d", view.Week)
	}
	// Current week with one miss: 8 days, last one a make-up day.
	if len(view.Days) != 8 {
		t.Fatalf("expected 8 days, got %d", len(view.Days))
	}
	if !view.Days[7].IsMakeUp || view.Days[6].IsMakeUp {
		t.Fatalf("only trailing days past day 7 are make-up days")
	}
	if !view.Days[2].IsToday {
		t.Fatalf("expected 2025-01-03 to be flagged today")
	}

	if len(view.Items) != 2 {
		t.Fatalf("expected 2 item rows, got %d", len(view.Items))
	}

	treatment := view.Items[0]
	if treatment.DoseDisplay != "1/2 mg" {
		t.Fatalf("expected dose display \"1/2 mg\", got %q", treatment.DoseDisplay)
	}
	if !treatment.Taken[0] || treatment.Taken[1] {
		t.Fatalf("taken marks misaligned: %v", treatment.Taken)
	}
	for index, due := range treatment.Due {
		if !due {
			t.Fatalf("unscheduled item must be due every day, index %d", index)
		}
	}

	medicine := view.Items[1]
	// 2025-01-01 is a Wednesday.
	if !medicine.Due[0] || medicine.Due[1] {
		t.Fatalf("custom weekday flags misaligned: %v", medicine.Due)
	}
	if medicine.DoseDisplay != "" {
		t.Fatalf("item without dose data must render blank, got %q", medicine.DoseDisplay)
	}
}
