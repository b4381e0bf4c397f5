package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

func printTodoLine(w io.Writer, t models.Todo) {
	mark := " "
	if t.IsComplete {
		mark = "x"
	}
	due := ""
	if t.DueDate != nil {
		due = " due " + t.DueDate.Format(time.DateOnly)
	}
	fmt.Fprintf(w, "[%s] %s  %s (%s)%s\n", mark, t.ID, t.Title, t.Priority, due)
}

func (a *App) List(ctx context.Context) error {
	list, err := a.todoService.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No todos yet. Use 'add' to create one.")
		return nil
	}
	for _, t := range list {
		printTodoLine(a.out, t)
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	var in models.TodoInput
	var err error

	if in.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Description, err = getSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}
	if in.Priority, err = getTextWithDefault(a.reader, "Priority (low/medium/high)", "medium", a.out); err != nil {
		return err
	}
	due, err := getSimpleText(a.reader, "Due date (YYYY-MM-DD, empty for none)", a.out)
	if err != nil {
		return err
	}
	if due != "" {
		if _, err := time.Parse(time.DateOnly, due); err != nil {
			return fmt.Errorf("invalid due date %q", due)
		}
		in.DueDate = &due
	}

	todo, err := a.todoService.Add(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Added:")
	printTodoLine(a.out, *todo)
	return nil
}

// todoID takes the id from args or asks for it.
func (a *App) todoID(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, "Enter todo id", a.out)
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.todoID(args)
	if err != nil {
		return err
	}
	t, err := a.todoService.Get(ctx, id)
	if err != nil {
		return err
	}

	printTodoLine(a.out, *t)
	fmt.Fprintf(a.out, "  %s\n", t.Description)
	fmt.Fprintf(a.out, "  created %s\n", t.CreatedAt.Local().Format(time.DateTime))
	if t.UpdatedAt != nil {
		fmt.Fprintf(a.out, "  updated %s\n", t.UpdatedAt.Local().Format(time.DateTime))
	}
	return nil
}

func (a *App) Done(ctx context.Context, args []string, done bool) error {
	id, err := a.todoID(args)
	if err != nil {
		return err
	}
	t, err := a.todoService.SetComplete(ctx, id, done)
	if err != nil {
		return err
	}
	printTodoLine(a.out, *t)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.todoID(args)
	if err != nil {
		return err
	}
	if err := a.todoService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Todo deleted successfully")
	return nil
}
