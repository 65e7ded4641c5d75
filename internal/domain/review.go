package domain

import "time"

// Review statuses mirror the worker lifecycle.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// WorkerReview is the admin-facing verification record created at worker
// registration. Approving it flips the worker to approved; rejecting requires
// a reason, surfaced back to the worker.
type WorkerReview struct {
	ReviewID        string     `json:"id" dynamodbav:"review_id"`
	WorkerID        string     `json:"workerId" dynamodbav:"worker_id"`
	WorkerName      string     `json:"workerName" dynamodbav:"worker_name"`
	Status          string     `json:"status" dynamodbav:"status"`
	RejectionReason string     `json:"rejectionReason,omitempty" dynamodbav:"rejection_reason"`
	ReviewedBy      string     `json:"reviewedBy,omitempty" dynamodbav:"reviewed_by"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty" dynamodbav:"reviewed_at"`
	CreatedAt       time.Time  `json:"created" dynamodbav:"created_at"`
}
