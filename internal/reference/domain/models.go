package domain

// Option is a code and its display name.
type Option struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
