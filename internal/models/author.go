package models

// Author owns zero or more books.
type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
