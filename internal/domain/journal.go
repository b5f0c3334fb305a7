package domain

import "time"

type Journal struct {
	JournalID string    `json:"id" dynamodbav:"journal_id"`
	Title     string    `json:"title" dynamodbav:"title"`
	Par       string    `json:"par" dynamodbav:"par"`
	Text      string    `json:"text" dynamodbav:"text"`
	Img       string    `json:"img" dynamodbav:"img"` // S3 key in storage, signed URL in responses
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateJournalRequest struct {
	Title string `json:"title" validate:"required"`
	Par   string `json:"par"`
	Text  string `json:"text" validate:"required"`
	Img   string `json:"img"`
}

type UpdateJournalRequest struct {
	ID    string  `json:"id" validate:"required"`
	Title *string `json:"title"`
	Par   *string `json:"par"`
	Text  *string `json:"text"`
}
