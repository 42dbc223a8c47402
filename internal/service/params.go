package service

// BookParams is the input for CreateBook.
type BookParams struct {
	Title       string // required
	PublishDate string // optional, YYYY-MM-DD
	Audience    string // optional, defaults to ALL
	AuthorID    int    // must reference an existing author
}
