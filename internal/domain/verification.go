package domain

// PhoneVerification is the server-side OTP record for a phone number.
// PK: phone. The code is stored bcrypt-hashed, never plaintext.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL. After a successful
// verify-otp, VerifiedUntil opens the window in which register/login may run.
type PhoneVerification struct {
	Phone         string `json:"phone" dynamodbav:"phone"`
	CodeHash      string `json:"-" dynamodbav:"code_hash"`
	ExpiresAt     int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	VerifiedUntil int64  `json:"verified_until" dynamodbav:"verified_until"`
}

// Verified reports whether the phone's verification window is open at now (Unix seconds).
func (v *PhoneVerification) Verified(now int64) bool {
	return v.VerifiedUntil > 0 && now < v.VerifiedUntil
}
