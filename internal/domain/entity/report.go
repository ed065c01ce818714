package entity

import (
	"time"
)

const (
	ReportStatusPending  = "PENDING"
	ReportStatusReviewed = "REVIEWED"
	ReportStatusResolved = "RESOLVED"
)

const (
	ReportTypeItem         = "item"
	ReportTypeConversation = "conversation"
)

type Report struct {
	ID         string `json:"id" firestore:"id"`
	ReporterID string `json:"reporter_id" firestore:"reporterId"`
	TargetID   string `json:"target_id" firestore:"targetId"`
	ReportType string `json:"report_type" firestore:"reportType"`
	Subject    string `json:"subject" firestore:"subject"`
	Reason     string `json:"reason" firestore:"reason"`
	Status     string `json:"status" firestore:"status"`
	Feedback   string `json:"feedback,omitempty" firestore:"feedback,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
