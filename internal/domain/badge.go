package domain

// Badge holds the display attributes for a status value.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// StatusBadge maps an application/offer/review status to its display
// attributes. Pure view logic, no state.
func StatusBadge(status string) Badge {
	switch status {
	case ApplicationStatusAccepted, ReviewStatusApproved:
		return Badge{Label: status, Color: "green"}
	case ApplicationStatusRejected:
		return Badge{Label: status, Color: "red"}
	case ApplicationStatusPending:
		return Badge{Label: status, Color: "yellow"}
	default:
		return Badge{Label: status, Color: "gray"}
	}
}
