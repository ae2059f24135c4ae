package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hazelbrook/doseline/internal/models"
)

type ResolvedDose struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// ResolveDose returns the dose that applies in the given 1-based treatment
// week. Weekly entries carry forward: the largest configured week at or below
// the target wins; a target below every entry falls back to the earliest one.
// Items with no weekly table use their constant dose. Items with neither
// resolve to nothing and must render blank.
func ResolveDose(item models.Item, week int) (ResolvedDose, bool) {
	if len(item.WeeklyDoses) > 0 {
		entries := make([]models.WeeklyDose, 0, len(item.WeeklyDoses))
		entries = append(entries, item.WeeklyDoses...)
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Week < entries[j].Week
		})

		best := entries[0]
		for _, entry := range entries {
			if entry.Week > week {
				break
			}
			best = entry
		}
		return ResolvedDose{Value: best.Dose, Unit: best.Unit}, true
	}

	if item.Dose != nil {
		return ResolvedDose{Value: *item.Dose, Unit: item.Unit}, true
	}

	return ResolvedDose{}, false
}

type doseFraction struct {
	value   float64
	display string
}

// Common split-tablet and measuring-spoon fractions. Matched within ±0.01 so
// both 0.333 and 0.3333 render as "1/3".
var doseFractions = []doseFraction{
	{0.125, "1/8"},
	{0.25, "1/4"},
	{1.0 / 3.0, "1/3"},
	{0.5, "1/2"},
	{2.0 / 3.0, "2/3"},
	{0.75, "3/4"},
}

const doseFractionTolerance = 0.01

// FormatDose renders a dose value the way the treatment sheets print it:
// a fraction when it matches the table, otherwise a whole number without a
// decimal point, otherwise one decimal place.
func FormatDose(value float64) string {
	for _, fraction := range doseFractions {
		if math.Abs(value-fraction.value) <= doseFractionTolerance {
			return fraction.display
		}
	}
	if value == math.Trunc(value) {
		return fmt.Sprintf("%.0f", value)
	}
	return fmt.Sprintf("%.1f", value)
}

func (dose ResolvedDose) Display() string {
	formatted := FormatDose(dose.Value)
	if strings.TrimSpace(dose.Unit) == "" {
		return formatted
	}
	return formatted + " " + dose.Unit
}
