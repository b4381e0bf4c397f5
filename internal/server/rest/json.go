package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	msgServerError  = "Server Error"
	msgInvalidInput = "Invalid request body"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads the request body into v. An empty body leaves v at its
// zero value.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// truthy decodes any JSON value with JavaScript truthiness: null, false, 0
// and "" are false, everything else is true.
type truthy bool

func (t *truthy) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*t = false
	case bool:
		*t = truthy(x)
	case float64:
		*t = x != 0
	case string:
		*t = x != ""
	default:
		*t = true
	}
	return nil
}

// dueDate accepts RFC 3339 timestamps, bare dates (YYYY-MM-DD), "" and null.
type dueDate struct {
	t *time.Time
}

var dueDateLayouts = []string{time.RFC3339Nano, time.DateOnly}

func (d *dueDate) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		d.t = nil
		return nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			d.t = &t
			return nil
		}
	}
	return fmt.Errorf("invalid due_date %q", *s)
}
