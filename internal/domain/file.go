package domain

import "time"

// File is a stored attachment (PDF documents in practice). Object is the
// storage key; responses expose a signed URL instead.
type File struct {
	FileID    string    `json:"id" dynamodbav:"file_id"`
	SubType   string    `json:"subType" dynamodbav:"sub_type"`
	Object    string    `json:"file" dynamodbav:"object"`
	Title     string    `json:"title,omitempty" dynamodbav:"title"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
