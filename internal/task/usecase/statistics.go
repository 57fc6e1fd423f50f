package usecase

import (
	"log"
	"sort"
	"time"
)

// GetStatistics aggregates completed-task counts per member over the given
// range, sorted by count descending with member id as the tie-break.
func (u *taskUsecase) GetStatistics(userID, householdID, rng string, now time.Time) ([]MemberStats, error) {
	if _, err := u.households.RequireMembership(userID, householdID); err != nil {
		return nil, err
	}

	var since *time.Time
	switch rng {
	case RangeAll, "":
	case Range7Days:
		t := now.AddDate(0, 0, -7)
		since = &t
	case Range30Days:
		t := now.AddDate(0, 0, -30)
		since = &t
	default:
		return nil, ErrInvalidRange
	}

	counts, err := u.taskRepo.CountCompletedByMember(householdID, since)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]string, 0, len(counts))
	for _, c := range counts {
		memberIDs = append(memberIDs, c.MemberID)
	}

	// A missing profile must not fail the aggregation; the row falls back
	// to a placeholder label.
	profiles := make(map[string]MemberStats, len(memberIDs))
	users, err := u.directory.FindByIDs(memberIDs)
	if err != nil {
		log.Printf("[Tasks] Member lookup failed for statistics: %v", err)
	} else {
		for _, user := range users {
			profiles[user.ID] = MemberStats{MemberID: user.ID, Name: user.Name, Email: user.Email}
		}
	}

	stats := make([]MemberStats, 0, len(counts))
	for _, c := range counts {
		row, ok := profiles[c.MemberID]
		if !ok {
			row = MemberStats{MemberID: c.MemberID, Name: "Unknown"}
		}
		row.Count = c.Count
		stats = append(stats, row)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].MemberID < stats[j].MemberID
	})

	return stats, nil
}
