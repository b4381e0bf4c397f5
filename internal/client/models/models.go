// Package models holds the CLI's view of server resources.
package models

import "time"

type User struct {
	ID    string `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Todo struct {
	ID          string     `json:"todo_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
	IsComplete  bool       `json:"is_complete"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// TodoInput is the request body for creating or replacing a todo. DueDate
// is sent as YYYY-MM-DD.
type TodoInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	IsComplete  bool    `json:"is_complete"`
}

// InputFrom copies the editable fields of t.
func InputFrom(t Todo) TodoInput {
	in := TodoInput{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		IsComplete:  t.IsComplete,
	}
	if t.DueDate != nil {
		d := t.DueDate.Format(time.DateOnly)
		in.DueDate = &d
	}
	return in
}

type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
}
