package dynamo

// DynamoDB attribute names used in update expressions across repos. Constants
// prevent silent runtime bugs caused by key typos.
const (
	fieldStatus           = "status"
	fieldRefreshToken     = "refresh_token"
	fieldRefreshExpiresAt = "refresh_expires_at"
)
