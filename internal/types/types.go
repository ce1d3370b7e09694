// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and utils can all import types without depending
// on each other.
package types

import "time"

// ClassificationRequest is the raw input of GET /api/classify-number.
//
// Number stays a string here: the client may send anything, and the
// error response must echo exactly what was sent. The validate tag is
// checked by go-playground/validator before the integer parse.
type ClassificationRequest struct {
	Number string `json:"number" validate:"required"`
}

// ClassificationResult is the 200 response body.
//
//	{
//	  "number": 371,
//	  "is_prime": false,
//	  "is_perfect": false,
//	  "properties": ["armstrong", "odd"],
//	  "digit_sum": 11,
//	  "fun_fact": "371 is a narcissistic number."
//	}
type ClassificationResult struct {
	Number     int64    `json:"number"`
	IsPrime    bool     `json:"is_prime"`
	IsPerfect  bool     `json:"is_perfect"`
	Properties []string `json:"properties"`
	DigitSum   int      `json:"digit_sum"`
	FunFact    string   `json:"fun_fact"`
}

// ErrorResult is the 400 response body. Number echoes the raw input.
type ErrorResult struct {
	Number string `json:"number"`
	Error  bool   `json:"error"`
}

// ClassificationRecord is one row of the classification history.
// FactFallback is true when FunFact holds fallback text rather than a
// fact from the trivia service.
type ClassificationRecord struct {
	ID int64 `json:"id"`
	ClassificationResult
	FactFallback bool      `json:"fact_fallback"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoryQuery holds the query parameters of GET /api/classifications.
type HistoryQuery struct {
	Limit int `validate:"min=1,max=100"`
}
