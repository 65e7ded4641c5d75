package domain

// Address is the human-readable part of a Location.
type Address struct {
	City        string `json:"city" dynamodbav:"city" validate:"required"`
	State       string `json:"state" dynamodbav:"state" validate:"required"`
	Pincode     string `json:"pincode" dynamodbav:"pincode" validate:"required,len=6,numeric"`
	FullAddress string `json:"fullAddress" dynamodbav:"full_address" validate:"required"`
}

// Location is a GeoJSON-style point with an attached address.
type Location struct {
	Type        string    `json:"type" dynamodbav:"type" validate:"required,eq=Point"`
	Coordinates []float64 `json:"coordinates" dynamodbav:"coordinates" validate:"required,len=2"`
	Address     Address   `json:"address" dynamodbav:"address" validate:"required"`
}

// WorkingHours describes a daily work window.
type WorkingHours struct {
	From       string `json:"from" dynamodbav:"from"`
	To         string `json:"to" dynamodbav:"to"`
	IsFlexible bool   `json:"isFlexible" dynamodbav:"is_flexible"`
}
