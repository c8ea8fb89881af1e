// file: internals/features/library/controller/library_controller.go
package controller

import (
	"strings"
	"time"

	"schoolerp_backend/internals/features/library/model"
	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/features/shared/scope"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

// DefaultLoanDays applies when an issue is created without a due date.
const DefaultLoanDays = 14

func BookConfig() resource.Config[model.BookModel] {
	return resource.Config[model.BookModel]{
		Tag:   "BOOK",
		Label: "Book",
		Required: func(m *model.BookModel) bool {
			return strings.TrimSpace(m.Title) != ""
		},
		RequiredMessage: "Title is required",
		Defaults: func(m *model.BookModel) {
			if m.Category == "" {
				m.Category = model.CategoryOther
			}
			if m.TotalCopies == 0 {
				m.TotalCopies = 1
			}
			if m.AvailableCopies == 0 {
				m.AvailableCopies = m.TotalCopies
			}
		},
		BeforeWrite: func(m *model.BookModel) error {
			m.ISBN = strings.ReplaceAll(strings.TrimSpace(m.ISBN), "-", "")
			return nil
		},
		Filters: []resource.Filter{
			{Param: "category", Column: "category"},
			{Param: "author", Column: "author"},
			{Param: "isbn", Column: "isbn"},
		},
		Sort: resource.Sort{Column: "title"},
		Stats: &resource.StatsSpec{
			Fields: []resource.EnumField{
				{Name: "category", Column: "category", Values: model.BookCategories},
			},
		},
	}
}

func BookIssueConfig() resource.Config[model.BookIssueModel] {
	return resource.Config[model.BookIssueModel]{
		Tag:   "BOOK_ISSUE",
		Label: "Book issue",
		Required: func(m *model.BookIssueModel) bool {
			return m.BookID != uuid.Nil && m.StudentID != uuid.Nil
		},
		RequiredMessage: "Book ID and student ID are required",
		Defaults: func(m *model.BookIssueModel) {
			if m.Status == "" {
				m.Status = model.IssueIssued
			}
			if m.IssueDate.IsZero() {
				m.IssueDate = m.CreatedAt
			}
			if m.DueDate.IsZero() {
				m.DueDate = m.IssueDate.AddDate(0, 0, DefaultLoanDays)
			}
		},
		BeforeWrite: func(m *model.BookIssueModel) error {
			if m.DueDate.Before(m.IssueDate) {
				return &resource.ValidationError{Fields: map[string][]string{
					"due_date": {"due_date must not be before issue_date"},
				}}
			}
			if m.Status == model.IssueReturned && m.ReturnDate == nil {
				now := time.Now().UTC()
				m.ReturnDate = &now
			}
			return nil
		},
		Scope: scope.OwnStudent("student_id"),

		References: []resource.Reference[model.BookIssueModel]{
			{Table: refs.TableBooks, Message: "Book not found", ID: func(m *model.BookIssueModel) uuid.UUID { return m.BookID }},
			{Table: refs.TableStudents, Message: "Student not found", ID: func(m *model.BookIssueModel) uuid.UUID { return m.StudentID }},
		},
		Filters: []resource.Filter{
			{Param: "book_id", Column: "book_id", Kind: resource.FilterUUID},
			{Param: "student_id", Column: "student_id", Kind: resource.FilterUUID},
			{Param: "status", Column: "status"},
		},
		Sort: resource.Sort{Column: "issue_date", Desc: true},
		ByRelation: []resource.RelationRoute{
			{Path: "/student/:studentId", Param: "studentId", Column: "student_id"},
			{Path: "/book/:bookId", Param: "bookId", Column: "book_id"},
		},
		Stats: &resource.StatsSpec{
			DateColumn: "issue_date",
			Fields: []resource.EnumField{
				{Name: "status", Column: "status", Values: model.IssueStatuses},
			},
		},
	}
}
