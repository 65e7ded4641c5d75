package domain

import "time"

// Document kinds accepted by the upload endpoints.
const (
	DocumentKindAadhaar    = "aadhaar"
	DocumentKindSkillProof = "skill-proof"
)

// Document is the metadata record for an uploaded file; the bytes live in S3
// under Object. Uploads during the registration wizard are keyed by the
// verified phone number since no account exists yet.
type Document struct {
	DocumentID      string    `json:"id" dynamodbav:"document_id"`
	Phone           string    `json:"phone" dynamodbav:"phone"`
	Kind            string    `json:"kind" dynamodbav:"kind"`
	Skill           string    `json:"skill,omitempty" dynamodbav:"skill"`
	CertificateType string    `json:"certificateType,omitempty" dynamodbav:"certificate_type"`
	Object          string    `json:"object" dynamodbav:"object"`
	Size            int64     `json:"size" dynamodbav:"size"`
	ContentType     string    `json:"type" dynamodbav:"content_type"`
	Name            string    `json:"name" dynamodbav:"name"`
	Hash            string    `json:"hash" dynamodbav:"hash"`
	Enable          bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt       time.Time `json:"created" dynamodbav:"created_at"`
}
