// Package aggregate derives adherence percentages from adherence records.
// Every function is pure; callers recompute from the full record set after
// each write instead of patching previous results.
package aggregate

import (
	"math"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

type Summary struct {
	OverallAdherencePercentage float64 `json:"overall_adherence_percentage"`
	TotalRecords               int     `json:"total_records"`
	TakenRecords               int     `json:"taken_records"`
	MissedRecords              int     `json:"missed_records"`
}

type SubjectStats struct {
	SubjectKey string  `json:"subject_key"`
	Percentage float64 `json:"percentage"`
	TakenCount int     `json:"taken_count"`
	TotalCount int     `json:"total_count"`
}

func Aggregate(records []*domain.AdherenceRecord) Summary {
	var s Summary
	for _, r := range records {
		if r == nil {
			continue
		}
		s.TotalRecords++
		if r.Taken {
			s.TakenRecords++
		}
	}
	s.MissedRecords = s.TotalRecords - s.TakenRecords
	s.OverallAdherencePercentage = percentage(s.TakenRecords, s.TotalRecords)

	return s
}

// PerSubject returns nil when no record exists for subjectKey, so "no data"
// stays distinguishable from 0%.
func PerSubject(records []*domain.AdherenceRecord, subjectKey string) *SubjectStats {
	var taken, total int
	for _, r := range records {
		if r == nil || r.SubjectKey != subjectKey {
			continue
		}
		total++
		if r.Taken {
			taken++
		}
	}

	if total == 0 {
		return nil
	}

	return &SubjectStats{
		SubjectKey: subjectKey,
		Percentage: percentage(taken, total),
		TakenCount: taken,
		TotalCount: total,
	}
}

// percentage is taken/total*100 rounded to one decimal, 0 for an empty set.
func percentage(taken, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(taken)/float64(total)*1000) / 10
}
