package api

// Error is the body of every failed API response
type Error struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}
