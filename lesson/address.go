package lesson

import "fmt"

// Address identifies a word by paragraph and word index. It is the key for
// all per-word transient state (reveal flags, drill results) and stays
// stable for the lifetime of a loaded lesson.
type Address struct {
	Paragraph int `json:"paragraph"`
	Word      int `json:"word"`
}

func (a Address) String() string {
	return fmt.Sprintf("%d-%d", a.Paragraph, a.Word)
}
