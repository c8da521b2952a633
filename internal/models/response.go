package models

// Response is the envelope every endpoint replies with. Data is null on
// failure and Error is null on success.
type Response[T any] struct {
	Success bool           `json:"success"`
	Data    *T             `json:"data"`
	Error   *ResponseError `json:"error"`
}

type ResponseError struct {
	Message string  `json:"message"`
	Details *string `json:"details"`
}
