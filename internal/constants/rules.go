package constants

const (
	// Achievement thresholds
	WeekWarriorStreak      = 7
	StreakMasterStreak     = 30
	CollectorCategories    = 5
	EarlyBirdCutoffHour    = 9
	InsightHighlightStreak = 7

	// Overview and graph sizing
	OverviewLimit    = 5
	GraphDays        = 7
	DefaultLogDays   = 14
	OverviewBarWidth = 30

	// Upper bounds for the display settings
	MaxGraphDays     = 31
	MaxOverviewLimit = 20
	MaxLogDays       = 365
)
