package domain

import "time"

type Color struct {
	ColorID   string    `json:"id" dynamodbav:"color_id"`
	Title     string    `json:"title" dynamodbav:"title"`
	Img       string    `json:"img" dynamodbav:"img"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateColorRequest struct {
	Title string `json:"title" validate:"required"`
	Img   string `json:"img"`
}

type UpdateColorRequest struct {
	ID    string `json:"id" validate:"required"`
	Title string `json:"title" validate:"required"`
}
