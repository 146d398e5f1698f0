package report

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildActionPlan(t *testing.T) {
	Convey("Given match results across the four fit tiers", t, func() {
		matched := []string{"python", "sql", "docker", "aws", "git", "linux", "redis"}
		missing := []string{"react", "kubernetes", "terraform", "kafka", "spark", "airflow"}

		Convey("A score of 80 or more is a strong fit", func() {
			plan := BuildActionPlan(80, matched, missing)
			So(plan.Level, ShouldEqual, LevelStrong)
			So(plan.Headline, ShouldEqual, "You are ready to apply. Polish leadership and impact stories.")
		})

		Convey("A score from 60 up to 80 is a competitive fit", func() {
			So(BuildActionPlan(79.99, matched, missing).Level, ShouldEqual, LevelCompetitive)
			So(BuildActionPlan(60, matched, missing).Level, ShouldEqual, LevelCompetitive)
		})

		Convey("A score from 40 up to 60 is a developing fit", func() {
			So(BuildActionPlan(59.5, matched, missing).Level, ShouldEqual, LevelDeveloping)
			So(BuildActionPlan(40, matched, missing).Level, ShouldEqual, LevelDeveloping)
		})

		Convey("A score below 40 is an early fit", func() {
			plan := BuildActionPlan(39.99, matched, missing)
			So(plan.Level, ShouldEqual, LevelEarly)
			So(plan.Headline, ShouldEqual, "Focus on foundational skills and one portfolio project first.")
		})

		Convey("Strengths and focus skills keep the first five of each list", func() {
			plan := BuildActionPlan(50, matched, missing)
			So(plan.Strengths, ShouldResemble, []string{"python", "sql", "docker", "aws", "git"})
			So(plan.FocusSkills, ShouldResemble, []string{"react", "kubernetes", "terraform", "kafka", "spark"})
		})

		Convey("Priority actions name the first three focus skills", func() {
			plan := BuildActionPlan(50, matched, missing)
			So(plan.PriorityActions, ShouldResemble, []string{
				"Build and document one project outcome using react",
				"Build and document one project outcome using kubernetes",
				"Build and document one project outcome using terraform",
			})
		})

		Convey("The week plan and resume edits are fixed", func() {
			plan := BuildActionPlan(10, nil, nil)
			So(len(plan.WeekPlan), ShouldEqual, 4)
			So(plan.WeekPlan[0], ShouldStartWith, "Week 1:")
			So(plan.WeekPlan[3], ShouldStartWith, "Week 4:")
			So(len(plan.ResumeEdits), ShouldEqual, 3)
		})
	})

	Convey("Given fewer than three missing skills", t, func() {
		Convey("One focus skill is padded with the metrics line first", func() {
			plan := BuildActionPlan(90, []string{"python"}, []string{"react"})
			So(len(plan.PriorityActions), ShouldEqual, 3)
			So(plan.PriorityActions[0], ShouldEqual, "Build and document one project outcome using react")
			So(plan.PriorityActions[1], ShouldEqual, "Add measurable results (%, time saved, revenue, users) to your top three resume bullets")
		})

		Convey("No focus skills still yields three distinct actions", func() {
			plan := BuildActionPlan(100, []string{"python"}, nil)
			So(len(plan.PriorityActions), ShouldEqual, 3)
			So(plan.PriorityActions[0], ShouldEqual, priorityPadding[0])
			So(plan.PriorityActions[1], ShouldNotEqual, plan.PriorityActions[2])
			So(plan.FocusSkills, ShouldBeEmpty)
		})
	})

	Convey("Given a plan is modified by the caller", t, func() {
		plan := BuildActionPlan(50, nil, nil)
		plan.WeekPlan[0] = "changed"

		Convey("Later plans are unaffected", func() {
			So(BuildActionPlan(50, nil, nil).WeekPlan[0], ShouldStartWith, "Week 1:")
		})
	})
}
