package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	reportSkillLimit = 10
	noneIdentified   = "- None identified"
)

// FormatScore renders a score with one decimal when integral (50.0) and
// otherwise with the shortest exact representation (66.67).
func FormatScore(score float64) string {
	if score == math.Trunc(score) {
		return strconv.FormatFloat(score, 'f', 1, 64)
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// BuildReportText assembles the downloadable analysis report, stamped with the current UTC time.
func BuildReportText(identity string, score float64, matched, missing []string, plan ActionPlan) string {
	return buildReportText(identity, score, matched, missing, plan, time.Now())
}

func buildReportText(identity string, score float64, matched, missing []string, plan ActionPlan, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("RESUME ANALYSIS REPORT\n")
	sb.WriteString("======================\n")
	fmt.Fprintf(&sb, "Candidate: %s\n", identity)
	fmt.Fprintf(&sb, "Generated: %s UTC\n", now.UTC().Format("2006-01-02 15:04"))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Match Score: %s%%\n", FormatScore(score))
	fmt.Fprintf(&sb, "Fit Level: %s\n", plan.Level)
	fmt.Fprintf(&sb, "Summary: %s\n", plan.Headline)
	sb.WriteString("\n")

	writeSkillSection(&sb, "Matched Skills:", matched)
	writeSkillSection(&sb, "Missing Skills:", missing)

	sb.WriteString("Priority Actions:\n")
	for i, action := range plan.PriorityActions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, action)
	}
	sb.WriteString("\n")

	sb.WriteString("4-Week Plan:\n")
	for _, line := range plan.WeekPlan {
		fmt.Fprintf(&sb, "- %s\n", line)
	}
	sb.WriteString("\n")

	sb.WriteString("Resume Edits:\n")
	for _, line := range plan.ResumeEdits {
		fmt.Fprintf(&sb, "- %s\n", line)
	}

	return sb.String()
}

func writeSkillSection(sb *strings.Builder, title string, skills []string) {
	sb.WriteString(title + "\n")
	if len(skills) == 0 {
		sb.WriteString(noneIdentified + "\n")
	}
	for _, skill := range firstN(skills, reportSkillLimit) {
		fmt.Fprintf(sb, "- %s\n", skill)
	}
	sb.WriteString("\n")
}

// ReportFilename returns the download name for a user's report,
// e.g. jane_doe_at_example_com_resume_report.txt.
func ReportFilename(email string) string {
	safe := strings.ReplaceAll(email, "@", "_at_")
	safe = strings.ReplaceAll(safe, ".", "_")
	return safe + "_resume_report.txt"
}

// BaseFilename returns the download stem for a generated document,
// e.g. jane_doe_ats_resume. An empty name becomes "candidate".
func BaseFilename(fullName, suffix string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "candidate"
	}
	return strings.ToLower(strings.ReplaceAll(name, " ", "_")) + "_" + suffix
}
