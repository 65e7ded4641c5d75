package domain

import "time"

// Offer statuses. An offer is decided at most once.
const (
	OfferStatusPending  = "pending"
	OfferStatusAccepted = "accepted"
	OfferStatusRejected = "rejected"
)

// Offer is a direct job offer from a vendor to a specific worker.
type Offer struct {
	OfferID        string       `json:"id" dynamodbav:"offer_id"`
	VendorID       string       `json:"vendorId" dynamodbav:"vendor_id"`
	WorkerID       string       `json:"workerId" dynamodbav:"worker_id"`
	Title          string       `json:"title" dynamodbav:"title"`
	Description    string       `json:"description" dynamodbav:"description"`
	Salary         float64      `json:"salary" dynamodbav:"salary"`
	Budget         float64      `json:"budget" dynamodbav:"budget"`
	Duration       string       `json:"duration" dynamodbav:"duration"`
	Location       Location     `json:"location" dynamodbav:"location"`
	RequiredSkills []string     `json:"requiredSkills" dynamodbav:"required_skills"`
	WorkingHours   WorkingHours `json:"workingHours" dynamodbav:"working_hours"`
	Benefits       []string     `json:"benefits" dynamodbav:"benefits"`
	StartDate      string       `json:"startDate" dynamodbav:"start_date"`
	EndDate        string       `json:"endDate" dynamodbav:"end_date"`
	Status         string       `json:"status" dynamodbav:"status"`
	CreatedAt      time.Time    `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time    `json:"updated" dynamodbav:"updated_at"`
}

// SendOfferRequest is the vendor-facing payload for offering work to a worker.
type SendOfferRequest struct {
	WorkerID       string       `json:"workerID" validate:"required"`
	Title          string       `json:"title" validate:"required"`
	Description    string       `json:"description" validate:"required"`
	Salary         float64      `json:"salary" validate:"required,gt=0"`
	Budget         float64      `json:"budget" validate:"gte=0"`
	Duration       string       `json:"duration" validate:"required"`
	Location       Location     `json:"location" validate:"required"`
	RequiredSkills []string     `json:"requiredSkills" validate:"required,min=1"`
	WorkingHours   WorkingHours `json:"workingHours"`
	Benefits       []string     `json:"benefits"`
	StartDate      string       `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate        string       `json:"endDate" validate:"required,datetime=2006-01-02"`
}
