package aggregate

import (
	"fmt"
	"testing"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

func records(subject string, taken, missed int) []*domain.AdherenceRecord {
	out := make([]*domain.AdherenceRecord, 0, taken+missed)
	for i := 0; i < taken+missed; i++ {
		out = append(out, &domain.AdherenceRecord{
			SubjectKey: subject,
			Date:       fmt.Sprintf("2024-01-%02d", i+1),
			Taken:      i < taken,
		})
	}
	return out
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name    string
		records []*domain.AdherenceRecord
		want    Summary
	}{
		{
			name:    "no records",
			records: nil,
			want:    Summary{},
		},
		{
			name:    "eight of ten taken",
			records: records("rem-1", 8, 2),
			want:    Summary{OverallAdherencePercentage: 80.0, TotalRecords: 10, TakenRecords: 8, MissedRecords: 2},
		},
		{
			name:    "rounds to one decimal",
			records: records("rem-1", 2, 1),
			want:    Summary{OverallAdherencePercentage: 66.7, TotalRecords: 3, TakenRecords: 2, MissedRecords: 1},
		},
		{
			name:    "spans subjects",
			records: append(records("rem-1", 1, 0), records("rx-9", 0, 2)...),
			want:    Summary{OverallAdherencePercentage: 33.3, TotalRecords: 3, TakenRecords: 1, MissedRecords: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Aggregate(tt.records); got != tt.want {
				t.Errorf("Aggregate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPerSubject(t *testing.T) {
	mixed := append(records("rem-1", 0, 1), records("rx-9", 5, 2)...)

	tests := []struct {
		name    string
		records []*domain.AdherenceRecord
		subject string
		want    *SubjectStats
	}{
		{
			name:    "single missed record",
			records: records("rem-1", 0, 1),
			subject: "rem-1",
			want:    &SubjectStats{SubjectKey: "rem-1", Percentage: 0, TakenCount: 0, TotalCount: 1},
		},
		{
			name:    "filters other subjects",
			records: mixed,
			subject: "rx-9",
			want:    &SubjectStats{SubjectKey: "rx-9", Percentage: 71.4, TakenCount: 5, TotalCount: 7},
		},
		{
			name:    "no data",
			records: mixed,
			subject: "rem-unknown",
			want:    nil,
		},
		{
			name:    "all taken",
			records: records("rx-1", 3, 0),
			subject: "rx-1",
			want:    &SubjectStats{SubjectKey: "rx-1", Percentage: 100, TakenCount: 3, TotalCount: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerSubject(tt.records, tt.subject)
			if tt.want == nil {
				if got != nil {
					t.Errorf("PerSubject() = %+v, want nil", got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Errorf("PerSubject() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
