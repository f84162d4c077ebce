// Package model contains domain types for the opsfeed application.
// They mirror the record shapes returned by the dashboard API.
package model

// CustomStatus represents the lifecycle state of a custom content request.
type CustomStatus string

const (
	StatusNeedsTeamApproval   CustomStatus = "needs_team_approval"
	StatusNeedsClientApproval CustomStatus = "needs_client_approval"
	StatusInProgress          CustomStatus = "in_progress"
	StatusCompleted           CustomStatus = "completed"
	StatusDelivered           CustomStatus = "delivered"
	StatusCancelled           CustomStatus = "cancelled"
)

// AllCustomStatuses contains every valid custom request status.
// This is the single source of truth for valid status values.
var AllCustomStatuses = []CustomStatus{
	StatusNeedsTeamApproval,
	StatusNeedsClientApproval,
	StatusInProgress,
	StatusCompleted,
	StatusDelivered,
	StatusCancelled,
}

// CustomRequest is a custom content request submitted by a client.
// SubmittedAt stays a string end-to-end: the scoring layer owns the
// parse and degrades an unparseable timestamp to zero wait time.
type CustomRequest struct {
	ID             string       `json:"id"`
	Status         CustomStatus `json:"status"`
	SubmittedAt    string       `json:"submittedAt"`
	ProposedAmount *float64     `json:"proposedAmount,omitempty"`
	PaidAmount     float64      `json:"paidAmount,omitempty"`
	Description    string       `json:"description,omitempty"`
	RequesterName  string       `json:"requesterName,omitempty"`

	// LifetimeSpend is the requester's lifetime spend with the agency.
	// Missing means the figure is unknown and the requester is not VIP.
	LifetimeSpend *float64 `json:"lifetimeSpend,omitempty"`
}

// SceneStatus represents the state of a scene assignment.
type SceneStatus string

const (
	ScenePending   SceneStatus = "pending"
	SceneCompleted SceneStatus = "completed"
)

// Scene describes the scene attached to an assignment.
type Scene struct {
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	Location string `json:"location,omitempty"`
}

// SceneAssignment assigns a scene to a creator's work queue.
type SceneAssignment struct {
	ID         string      `json:"id"`
	Status     SceneStatus `json:"status"`
	AssignedAt string      `json:"assignedAt"`
	Scene      Scene       `json:"scene"`
}
