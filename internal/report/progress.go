package report

// Progress summarizes a user's score history for the dashboard.
type Progress struct {
	TotalScans  int `json:"total_scans"`
	AvgScore    int `json:"avg_score"`
	LastScore   int `json:"last_score"`
	ScoreChange int `json:"score_change"`
}

// SummarizeProgress computes dashboard stats from scores ordered oldest first.
// The average is truncated toward zero.
func SummarizeProgress(scores []int) Progress {
	p := Progress{TotalScans: len(scores)}
	if len(scores) == 0 {
		return p
	}

	sum := 0
	for _, s := range scores {
		sum += s
	}
	p.AvgScore = sum / len(scores)
	p.LastScore = scores[len(scores)-1]
	if len(scores) > 1 {
		p.ScoreChange = p.LastScore - scores[len(scores)-2]
	}
	return p
}
