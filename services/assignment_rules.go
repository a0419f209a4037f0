package services

import (
	"fmt"

	"challengeapi/models"
)

// WeekForDay maps a 1-based day number to its 1-based week number.
// Day 1-7 is week 1, day 8-14 is week 2, and so on. This is the only
// place week is derived from day; callers must never compute it
// themselves.
func WeekForDay(day int) int {
	return (day + 6) / 7
}

// WeeksForDays returns the number of weeks a challenge of the given
// length spans. A partial trailing week counts as a full week.
func WeeksForDays(days int) int {
	return (days + 6) / 7
}

// CategoryLimits returns the maximum permitted assignment count per
// category for a challenge of the given length.
func CategoryLimits(days int) map[string]int {
	return map[string]int{
		models.CategoryDaily:               days,
		models.CategoryDailyReflection:     days,
		models.CategoryWeeklyReflection:    WeeksForDays(days),
		models.CategoryChallengeReflection: 1,
	}
}

// ProposedAssignment is one (question, day, category) binding awaiting
// validation.
type ProposedAssignment struct {
	QuestionID string
	Day        int
	Category   string
}

// ValidateAssignment checks a proposed assignment against the current
// assignment set of a challenge. Rules run in a fixed order and the
// first failing rule wins. excludeQuestionID names the question whose
// existing row is being edited; its row is skipped for the duplicate
// and quota checks. Pass "" when creating.
func ValidateAssignment(existing []models.ChallengeQuestion, proposed ProposedAssignment, challenge *models.Challenge, excludeQuestionID string) error {
	if proposed.Category == "" || proposed.Day == 0 {
		return newValidationError(CodeMissingField, "select day and category")
	}

	limits := CategoryLimits(challenge.Days)
	limit, known := limits[proposed.Category]
	if !known {
		return newValidationError(CodeMissingField, fmt.Sprintf("unknown question category %q", proposed.Category))
	}

	if proposed.Day < 1 || proposed.Day > challenge.Days {
		return newValidationError(CodeDayOutOfRange, fmt.Sprintf("this challenge only has %d days", challenge.Days))
	}

	if proposed.Category == models.CategoryChallengeReflection && proposed.Day != challenge.Days {
		return newValidationError(CodeInvalidDayForCategory, "the challenge reflection must be assigned to the last day")
	}

	if proposed.Category == models.CategoryWeeklyReflection && proposed.Day%7 != 0 {
		return newValidationError(CodeInvalidDayForCategory, "weekly reflections must be assigned to the last day of a week")
	}

	// Quota before duplicate: once a category is full, every further
	// attempt reports the quota, even on an occupied slot.
	count := 0
	for _, cq := range existing {
		if excludeQuestionID != "" && cq.QuestionID == excludeQuestionID {
			continue
		}
		if cq.QuestionCategory == proposed.Category {
			count++
		}
	}
	if count >= limit {
		return newValidationError(CodeQuotaExceeded,
			fmt.Sprintf("cannot assign more than %d questions for category %q", limit, proposed.Category))
	}

	for _, cq := range existing {
		if excludeQuestionID != "" && cq.QuestionID == excludeQuestionID {
			continue
		}
		if cq.QuestionCategory == proposed.Category && cq.Day == proposed.Day {
			return newValidationError(CodeDuplicateSlot,
				fmt.Sprintf("a %q question is already assigned to day %d", proposed.Category, proposed.Day))
		}
	}

	return nil
}

// AvailableDays lists the days a question of the given category could
// still be assigned to: the category's canonical days minus the ones
// already occupied by that category.
func AvailableDays(category string, challenge *models.Challenge, existing []models.ChallengeQuestion) []int {
	var candidates []int
	switch category {
	case models.CategoryDaily, models.CategoryDailyReflection:
		for d := 1; d <= challenge.Days; d++ {
			candidates = append(candidates, d)
		}
	case models.CategoryWeeklyReflection:
		// A partial trailing week has no day that is a multiple of 7,
		// so its week-end day would fall past the challenge; never
		// offer days the day-range rule would reject.
		for w := 1; w*7 <= challenge.Days; w++ {
			candidates = append(candidates, w*7)
		}
	case models.CategoryChallengeReflection:
		candidates = append(candidates, challenge.Days)
	}

	taken := make(map[int]bool)
	for _, cq := range existing {
		if cq.QuestionCategory == category {
			taken[cq.Day] = true
		}
	}

	days := make([]int, 0, len(candidates))
	for _, d := range candidates {
		if !taken[d] {
			days = append(days, d)
		}
	}
	return days
}
