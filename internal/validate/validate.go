// Package validate holds the shared input contracts for every endpoint.
// The limits mirror the column constraints in db/migrations/001_init.sql.
package validate

import (
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxNameLen    = 100
	MaxTitleLen   = 200
	MaxContentLen = 10000

	DefaultPage  = 1
	DefaultLimit = 2
)

// Issue is a single violated constraint, returned to clients in the
// "details" array of 400 responses.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Issues []Issue

// PatientID parses a patient identifier in canonical UUID text form
// (36 characters, hex groups 8-4-4-4-12) and returns it normalized.
func PatientID(raw string) (string, Issues) {
	id, ok := parseUUID(raw)
	if !ok {
		return "", Issues{{Field: "patientId", Message: "Invalid patient ID format"}}
	}
	return id, nil
}

// NoteID is the note counterpart of PatientID.
func NoteID(raw string) (string, Issues) {
	id, ok := parseUUID(raw)
	if !ok {
		return "", Issues{{Field: "noteId", Message: "Invalid note ID format"}}
	}
	return id, nil
}

// uuid.Parse also accepts braced and urn-prefixed forms; the API only
// takes the canonical 36-character one.
func parseUUID(raw string) (string, bool) {
	if len(raw) != 36 {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

type CreatePatientInput struct {
	Name string `json:"name"`
}

func (in CreatePatientInput) Validate() Issues {
	var issues Issues
	switch {
	case in.Name == "":
		issues = append(issues, Issue{Field: "name", Message: "Patient name is required"})
	case utf8.RuneCountInString(in.Name) > MaxNameLen:
		issues = append(issues, Issue{Field: "name", Message: "Name is too long"})
	}
	return issues
}

type CreateNoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (in CreateNoteInput) Validate() Issues {
	var issues Issues
	switch {
	case in.Title == "":
		issues = append(issues, Issue{Field: "title", Message: "Note title is required"})
	case utf8.RuneCountInString(in.Title) > MaxTitleLen:
		issues = append(issues, Issue{Field: "title", Message: "Title is too long"})
	}
	issues = append(issues, contentIssues(in.Content)...)
	return issues
}

type UpdateNoteInput struct {
	Content string `json:"content"`
}

func (in UpdateNoteInput) Validate() Issues {
	return contentIssues(in.Content)
}

func contentIssues(content string) Issues {
	switch {
	case content == "":
		return Issues{{Field: "content", Message: "Note content is required"}}
	case utf8.RuneCountInString(content) > MaxContentLen:
		return Issues{{Field: "content", Message: "Note content is too long"}}
	}
	return nil
}

type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads optional page/limit query parameters. Both must be
// positive integers when present.
func ParsePagination(q url.Values) (Pagination, Issues) {
	p := Pagination{Page: DefaultPage, Limit: DefaultLimit}
	var issues Issues

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			issues = append(issues, Issue{Field: "page", Message: "Page must be a positive integer"})
		} else {
			p.Page = n
		}
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			issues = append(issues, Issue{Field: "limit", Message: "Limit must be a positive integer"})
		} else {
			p.Limit = n
		}
	}
	return p, issues
}
