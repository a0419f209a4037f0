package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"challengeapi/models"
)

// ChallengeSummary is the per-category progress view shown while an
// admin fills a challenge. ExpectedTotal is informational only; the
// per-category limits are the enforced ceilings.
type ChallengeSummary struct {
	Days                     int `json:"days"`
	Weeks                    int `json:"weeks"`
	DailyCount               int `json:"dailyCount"`
	DailyReflectionCount     int `json:"dailyReflectionCount"`
	WeeklyReflectionCount    int `json:"weeklyReflectionCount"`
	ChallengeReflectionCount int `json:"challengeReflectionCount"`
	TotalSelected            int `json:"totalSelected"`
	ExpectedTotal            int `json:"expectedTotal"`
}

// Summarize recomputes the counters from a challenge's assignment set.
func Summarize(challenge *models.Challenge) ChallengeSummary {
	weeks := WeeksForDays(challenge.Days)

	summary := ChallengeSummary{
		Days:          challenge.Days,
		Weeks:         weeks,
		TotalSelected: len(challenge.ChallengeQuestions),
		ExpectedTotal: challenge.Days*2 + weeks + 1,
	}

	for _, cq := range challenge.ChallengeQuestions {
		switch cq.QuestionCategory {
		case models.CategoryDaily:
			summary.DailyCount++
		case models.CategoryDailyReflection:
			summary.DailyReflectionCount++
		case models.CategoryWeeklyReflection:
			summary.WeeklyReflectionCount++
		case models.CategoryChallengeReflection:
			summary.ChallengeReflectionCount++
		}
	}

	return summary
}

type SummaryService struct {
	assignments *AssignmentService
	redis       *redis.Client
}

func NewSummaryService(assignments *AssignmentService, redis *redis.Client) *SummaryService {
	return &SummaryService{
		assignments: assignments,
		redis:       redis,
	}
}

const summaryCacheTTL = 10 * time.Minute

func summaryKey(challengeID string) string {
	return "challenge:summary:" + challengeID
}

// GetSummary returns the cached summary for a challenge, recomputing it
// from the database on a miss. A Redis outage degrades to recomputing
// on every call.
func (s *SummaryService) GetSummary(ctx context.Context, challengeID string) (*ChallengeSummary, error) {
	if data, err := s.redis.Get(ctx, summaryKey(challengeID)).Result(); err == nil {
		var summary ChallengeSummary
		if err := json.Unmarshal([]byte(data), &summary); err == nil {
			return &summary, nil
		}
	} else if err != redis.Nil {
		log.Printf("Redis error getting summary for challenge %s: %v", challengeID, err)
	}

	challenge, err := s.assignments.GetChallengeWithQuestions(challengeID)
	if err != nil {
		return nil, err
	}

	summary := Summarize(challenge)

	if data, err := json.Marshal(summary); err == nil {
		if err := s.redis.Set(ctx, summaryKey(challengeID), data, summaryCacheTTL).Err(); err != nil {
			log.Printf("Redis error caching summary for challenge %s: %v", challengeID, err)
		}
	}

	return &summary, nil
}

// Invalidate drops the cached summary after the assignment set changes.
func (s *SummaryService) Invalidate(ctx context.Context, challengeID string) {
	if err := s.redis.Del(ctx, summaryKey(challengeID)).Err(); err != nil {
		log.Printf("Redis error invalidating summary for challenge %s: %v", challengeID, err)
	}
}
