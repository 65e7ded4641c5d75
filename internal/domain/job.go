package domain

import "time"

// Salary is a structured amount plus pay period ("hour", "day", "month").
type Salary struct {
	Amount float64 `json:"amount" dynamodbav:"amount" validate:"required,gt=0"`
	Period string  `json:"period" dynamodbav:"period" validate:"required,oneof=hour day week month"`
}

// RequiredSkill pairs a skill name with the experience expected for it.
type RequiredSkill struct {
	Skill           string `json:"skill" dynamodbav:"skill" validate:"required"`
	ExperienceYears int    `json:"experienceYears" dynamodbav:"experience_years" validate:"gte=0"`
}

type Job struct {
	JobID          string          `json:"id" dynamodbav:"job_id"`
	VendorID       string          `json:"vendorId" dynamodbav:"vendor_id"`
	JobTitle       string          `json:"jobTitle" dynamodbav:"job_title"`
	Description    string          `json:"description" dynamodbav:"description"`
	Salary         Salary          `json:"salary" dynamodbav:"salary"`
	Budget         string          `json:"budget" dynamodbav:"budget"`
	Duration       string          `json:"duration" dynamodbav:"duration"`
	Location       Location        `json:"location" dynamodbav:"location"`
	Category       string          `json:"category" dynamodbav:"category"`
	RequiredSkills []RequiredSkill `json:"requiredSkills" dynamodbav:"required_skills"`
	WorkingHours   WorkingHours    `json:"workingHours" dynamodbav:"working_hours"`
	Benefits       []string        `json:"benefits" dynamodbav:"benefits"`
	StartDate      string          `json:"startDate" dynamodbav:"start_date"`
	EndDate        string          `json:"endDate" dynamodbav:"end_date"`
	Enable         bool            `json:"enable" dynamodbav:"enable"`
	CreatedAt      time.Time       `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time       `json:"updated" dynamodbav:"updated_at"`
}

// PublishJobRequest is the employer-facing payload for posting a job.
type PublishJobRequest struct {
	JobTitle       string          `json:"jobTitle" validate:"required"`
	Description    string          `json:"description" validate:"required"`
	Salary         Salary          `json:"salary" validate:"required"`
	Budget         string          `json:"budget"`
	Duration       string          `json:"duration" validate:"required"`
	Location       Location        `json:"location" validate:"required"`
	Category       string          `json:"category" validate:"required"`
	RequiredSkills []RequiredSkill `json:"requiredSkills" validate:"required,min=1,dive"`
	WorkingHours   WorkingHours    `json:"workingHours"`
	Benefits       []string        `json:"benefits"`
	StartDate      string          `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate        string          `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// Application statuses. Only pending applications may be decided.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

type Application struct {
	ApplicationID string    `json:"id" dynamodbav:"application_id"`
	JobID         string    `json:"jobId" dynamodbav:"job_id"`
	WorkerID      string    `json:"workerId" dynamodbav:"worker_id"`
	Status        string    `json:"status" dynamodbav:"status"`
	Job           *Job      `json:"job,omitempty" dynamodbav:"-"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`
}
