package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeProgress(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   Progress
	}{
		{name: "no scans", scores: nil, want: Progress{}},
		{name: "single scan", scores: []int{55}, want: Progress{TotalScans: 1, AvgScore: 55, LastScore: 55}},
		{name: "improving", scores: []int{40, 60, 75}, want: Progress{TotalScans: 3, AvgScore: 58, LastScore: 75, ScoreChange: 15}},
		{name: "declining", scores: []int{90, 70}, want: Progress{TotalScans: 2, AvgScore: 80, LastScore: 70, ScoreChange: -20}},
		{name: "average truncates", scores: []int{50, 51}, want: Progress{TotalScans: 2, AvgScore: 50, LastScore: 51, ScoreChange: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SummarizeProgress(tt.scores))
		})
	}
}
