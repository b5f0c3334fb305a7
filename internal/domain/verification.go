package domain

// OTPVerification stores a pending one-time code for a user.
// PK: user_id, SK: otp_id (ULID, lexicographically sortable by creation time,
// so the highest otp_id for a user is the most recently issued code).
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type OTPVerification struct {
	UserID   string `json:"user_id" dynamodbav:"user_id"`
	OTPID    string `json:"otp_id" dynamodbav:"otp_id"`
	CodeHash string `json:"-" dynamodbav:"code_hash"`
	// CodePlain is a diagnostic copy. It is never serialized into responses
	// and only appears in debug logs.
	CodePlain string `json:"-" dynamodbav:"code_plain"`
	CreatedAt int64  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
