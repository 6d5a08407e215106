// internal/models/notification.go
package models

import "time"

// RecommendationNotification is published when an intent is fulfilled with a
// portfolio recommendation.
type RecommendationNotification struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Intent     string    `json:"intent"`
	BotName    string    `json:"botName"`
	UserID     string    `json:"userId,omitempty"`
	FirstName  string    `json:"firstName,omitempty"`
	RiskLevel  string    `json:"riskLevel"`
	Allocation string    `json:"allocation"`
	CreatedAt  time.Time `json:"createdAt"`
}

const NotificationTypeRecommendationFulfilled = "recommendation_fulfilled"
