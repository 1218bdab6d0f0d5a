package dto

// PostResponse is one recommended post in the endpoint's response array.
type PostResponse struct {
	ID    int64  `json:"id"`
	Text  string `json:"text"`
	Topic string `json:"topic"`
}
