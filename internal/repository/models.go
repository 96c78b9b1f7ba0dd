// Package repository provides typed read/write access to the answer, option
// and recommendation storage. No SQL lives outside this package.
package repository

// Answer is one stored answer row for an attempt.
type Answer struct {
	ID               int64
	AttemptID        int64
	SelectedOptionID int64
}

// Option is one immutable row of the option catalog.
type Option struct {
	ID          int64
	QuestionID  int64
	LikertValue int
}
