package domain

import "time"

type Todo struct {
	ID          string
	OwnerID     string
	Text        string
	Completed   bool
	CompletedAt *int64 // unix milliseconds, nil while the todo is open
}

// TodoPatch is the allow-list of fields a client may change. Nil means "not supplied".
type TodoPatch struct {
	Text      *string
	Completed *bool
}

// TodoChanges is what a store writes on update, after completion has been derived.
type TodoChanges struct {
	Text        *string
	Completed   bool
	CompletedAt *int64
}

// Apply derives the completion fields from the patch. Only an explicit
// completed=true keeps the todo done; anything else reopens it.
func (p TodoPatch) Apply(now time.Time) TodoChanges {
	ch := TodoChanges{Text: p.Text}
	if p.Completed != nil && *p.Completed {
		ms := now.UnixMilli()
		ch.Completed = true
		ch.CompletedAt = &ms
	}
	return ch
}
