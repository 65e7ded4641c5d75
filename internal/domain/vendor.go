package domain

import "time"

type Vendor struct {
	VendorID     string    `json:"id" dynamodbav:"vendor_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	Phone        string    `json:"phone" dynamodbav:"phone"`
	Email        string    `json:"email" dynamodbav:"email"`
	BusinessType string    `json:"businessType" dynamodbav:"business_type"`
	GSTNumber    string    `json:"gstNumber,omitempty" dynamodbav:"gst_number"`
	Location     Location  `json:"location" dynamodbav:"location"`
	Enable       bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

type RegisterVendorRequest struct {
	Name         string   `json:"name" validate:"required"`
	Phone        string   `json:"phone" validate:"required,len=10,numeric"`
	Email        string   `json:"email" validate:"required,email"`
	BusinessType string   `json:"businessType" validate:"required"`
	GSTNumber    string   `json:"gstNumber"`
	Location     Location `json:"location" validate:"required"`
}
