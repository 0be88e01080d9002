package entity

// Summary is a short encyclopedia description of a subject.
type Summary struct {
	Title       string
	Description string
	Extract     string
	URL         string
	Ambiguous   bool
}
