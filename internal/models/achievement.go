package models

import "time"

type Achievement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

type InsightType string

const (
	InsightSuccess InsightType = "success"
	InsightWarning InsightType = "warning"
	InsightTip     InsightType = "tip"
)

// Insight is a heuristic observation about the current habit state. It is
// regenerated on every evaluation and never persisted.
type Insight struct {
	Type    InsightType `json:"type"`
	Message string      `json:"message"`
}

type Quote struct {
	Text     string   `json:"text"`
	Author   string   `json:"author"`
	Category Category `json:"category"`
}
