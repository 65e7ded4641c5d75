package domain

import "time"

// Worker statuses follow the admin review lifecycle.
const (
	WorkerStatusPending  = "pending"
	WorkerStatusApproved = "approved"
	WorkerStatusRejected = "rejected"
)

type Worker struct {
	WorkerID        string    `json:"id" dynamodbav:"worker_id"`
	Name            string    `json:"name" dynamodbav:"name"`
	Phone           string    `json:"phone" dynamodbav:"phone"`
	Email           string    `json:"email" dynamodbav:"email"`
	DateOfBirth     string    `json:"dateOfBirth" dynamodbav:"date_of_birth"` // YYYY-MM-DD
	Gender          string    `json:"gender" dynamodbav:"gender"`
	AadhaarNumber   string    `json:"-" dynamodbav:"aadhaar_number"`
	AadhaarDocID    string    `json:"aadhaarDocumentId,omitempty" dynamodbav:"aadhaar_doc_id"`
	SkillProofDocID string    `json:"skillProofDocumentId,omitempty" dynamodbav:"skill_proof_doc_id"`
	Category        string    `json:"category" dynamodbav:"category"`
	Skills          []string  `json:"skills" dynamodbav:"skills"`
	CurrentLocation Location  `json:"currentLocation" dynamodbav:"current_location"`
	Status          string    `json:"status" dynamodbav:"status"` // pending | approved | rejected
	Enable          bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt       time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt       time.Time `json:"updated" dynamodbav:"updated_at"`
}

// RegisterWorkerRequest is the single merged registration payload, assembled
// client-side across the basic-info, document and skill wizard steps.
type RegisterWorkerRequest struct {
	Name            string   `json:"name" validate:"required"`
	Phone           string   `json:"phone" validate:"required,len=10,numeric"`
	Email           string   `json:"email" validate:"required,email"`
	DateOfBirth     string   `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Gender          string   `json:"gender" validate:"required,oneof=male female other"`
	AadhaarNumber   string   `json:"aadhaarNumber" validate:"required,len=12,numeric"`
	AadhaarDocID    string   `json:"aadhaarDocumentId" validate:"required"`
	SkillProofDocID string   `json:"skillProofDocumentId" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	Skills          []string `json:"skills" validate:"required,min=1"`
	CurrentLocation Location `json:"currentLocation" validate:"required"`
}
