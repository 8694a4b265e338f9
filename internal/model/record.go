package model

// Record is the domain model for a todo entry.
// It carries no id: a record is addressed by its position in the file.
type Record struct {
	Done   bool
	Urgent bool
	Text   string
}
