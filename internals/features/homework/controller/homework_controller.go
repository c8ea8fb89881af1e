// file: internals/features/homework/controller/homework_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/homework/model"
	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/features/shared/scope"
	helper "schoolerp_backend/internals/helpers"
	helperAuth "schoolerp_backend/internals/helpers/auth"
	helperOSS "schoolerp_backend/internals/helpers/oss"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const maxAttachments = 10

func HomeworkConfig() resource.Config[model.HomeworkModel] {
	return resource.Config[model.HomeworkModel]{
		Tag:   "HOMEWORK",
		Label: "Homework",
		Required: func(m *model.HomeworkModel) bool {
			return strings.TrimSpace(m.Title) != "" && m.ClassID != uuid.Nil && !m.DueDate.IsZero()
		},
		RequiredMessage: "Title, class ID, and due date are required",
		Defaults: func(m *model.HomeworkModel) {
			if m.Status == "" {
				m.Status = model.HomeworkActive
			}
			if m.Links == nil {
				m.Links = pq.StringArray{}
			}
			m.Attachments = pq.StringArray{}
		},
		Stamp: func(c *fiber.Ctx, m *model.HomeworkModel) error {
			uid, err := helperAuth.GetUserIDFromToken(c)
			if err != nil {
				return err
			}
			m.AssignedByID = uid
			return nil
		},
		Protect: func(dst, stored *model.HomeworkModel) {
			dst.AssignedByID = stored.AssignedByID
			dst.Attachments = stored.Attachments
		},
		References: []resource.Reference[model.HomeworkModel]{
			{Table: refs.TableClasses, Message: "Class not found", ID: func(m *model.HomeworkModel) uuid.UUID { return m.ClassID }},
		},
		Filters: []resource.Filter{
			{Param: "class_id", Column: "class_id", Kind: resource.FilterUUID},
			{Param: "subject", Column: "subject"},
			{Param: "status", Column: "status"},
		},
		Sort: resource.Sort{Column: "due_date", Desc: true},
		ByRelation: []resource.RelationRoute{
			{Path: "/class/:classId", Param: "classId", Column: "class_id"},
		},
	}
}

func SubmissionConfig() resource.Config[model.SubmissionModel] {
	return resource.Config[model.SubmissionModel]{
		Tag:   "SUBMISSION",
		Label: "Submission",
		Required: func(m *model.SubmissionModel) bool {
			return m.HomeworkID != uuid.Nil
		},
		RequiredMessage: "Homework ID is required",
		Defaults: func(m *model.SubmissionModel) {
			if m.Status == "" {
				m.Status = model.SubmissionSubmitted
			}
			if m.SubmittedAt.IsZero() {
				m.SubmittedAt = m.CreatedAt
			}
		},
		// students always submit as themselves
		Stamp: func(c *fiber.Ctx, m *model.SubmissionModel) error {
			if helperAuth.GetRole(c) == constants.RoleStudent {
				sid, ok := helperAuth.GetStudentIDFromToken(c)
				if !ok {
					return fiber.NewError(fiber.StatusForbidden, "Student account is not linked to a student record")
				}
				m.StudentID = sid
				m.Status = model.SubmissionSubmitted
				m.Marks, m.Feedback, m.GradedAt = nil, "", nil
			}
			if m.StudentID == uuid.Nil {
				return fiber.NewError(fiber.StatusBadRequest, "Student ID is required")
			}
			return nil
		},
		BeforeWrite: func(m *model.SubmissionModel) error {
			if m.Marks != nil && m.Status != model.SubmissionGraded {
				m.Status = model.SubmissionGraded
			}
			if m.Status == model.SubmissionGraded && m.GradedAt == nil {
				now := time.Now().UTC()
				m.GradedAt = &now
			}
			return nil
		},
		Scope: scope.OwnStudent("student_id"),

		References: []resource.Reference[model.SubmissionModel]{
			{Table: refs.TableHomework, Message: "Homework not found", ID: func(m *model.SubmissionModel) uuid.UUID { return m.HomeworkID }},
			{Table: refs.TableStudents, Message: "Student not found", ID: func(m *model.SubmissionModel) uuid.UUID { return m.StudentID }},
		},
		Filters: []resource.Filter{
			{Param: "homework_id", Column: "homework_id", Kind: resource.FilterUUID},
			{Param: "student_id", Column: "student_id", Kind: resource.FilterUUID},
			{Param: "status", Column: "status"},
		},
		Sort: resource.Sort{Column: "submitted_at", Desc: true},
		ByRelation: []resource.RelationRoute{
			{Path: "/homework/:homeworkId", Param: "homeworkId", Column: "homework_id"},
			{Path: "/student/:studentId", Param: "studentId", Column: "student_id"},
		},
		Stats: &resource.StatsSpec{
			DateColumn: "submitted_at",
			Fields: []resource.EnumField{
				{Name: "status", Column: "status", Values: model.SubmissionStatuses},
			},
		},
	}
}

// UploadAttachment handles POST /homework/:id/attachment (multipart field
// "file") and appends the stored object's URL to the homework.
func UploadAttachment(ctl *resource.Controller[model.HomeworkModel, *model.HomeworkModel], objects helperOSS.ObjectStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		schoolID, err := helperAuth.GetSchoolIDFromToken(c)
		if err != nil {
			return ctl.Fail(c, "ATTACHMENT", err)
		}
		id, err := resource.ParseID(c, "id")
		if err != nil {
			return ctl.Fail(c, "ATTACHMENT", err)
		}
		if objects == nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "File is required")
		}
		switch constants.DetectFileKindFromExt(fh.Filename) {
		case constants.FileKindAudio, constants.FileKindOther:
			return helper.JsonError(c, fiber.StatusBadRequest, "Attachment must be a document, pdf, slide deck or image")
		}

		ctx := c.UserContext()
		hw, err := ctl.Store.Get(ctx, schoolID, id)
		if err != nil {
			return ctl.Fail(c, "ATTACHMENT", err)
		}
		if len(hw.Attachments) >= maxAttachments {
			return helper.JsonError(c, fiber.StatusBadRequest, "Too many attachments")
		}

		url, key, err := helperOSS.UploadFile(ctx, objects, "schools/"+schoolID.String()+"/homework", fh)
		if err != nil {
			if errors.Is(err, helperOSS.ErrNotConfigured) {
				return helper.JsonError(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
			}
			log.Printf("[HOMEWORK][ATTACHMENT] upload failed: %v", err)
			return helper.JsonError(c, fiber.StatusBadRequest, "Upload failed: "+err.Error())
		}

		hw.Attachments = append(hw.Attachments, url)
		hw.UpdatedAt = time.Now().UTC()
		if err := ctl.Store.Replace(ctx, hw); err != nil {
			_ = objects.Delete(ctx, key)
			return ctl.Fail(c, "ATTACHMENT", err)
		}
		updated, err := ctl.Store.Get(ctx, schoolID, id)
		if err != nil {
			return ctl.Fail(c, "ATTACHMENT", err)
		}
		return helper.JsonUpdated(c, "Attachment uploaded successfully", updated)
	}
}
