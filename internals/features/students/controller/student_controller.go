// file: internals/features/students/controller/student_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/features/shared/scope"
	"schoolerp_backend/internals/features/students/model"
	helper "schoolerp_backend/internals/helpers"
	helperAuth "schoolerp_backend/internals/helpers/auth"
	helperOSS "schoolerp_backend/internals/helpers/oss"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func StudentConfig() resource.Config[model.StudentModel] {
	return resource.Config[model.StudentModel]{
		Tag:   "STUDENT",
		Label: "Student",

		Required: func(m *model.StudentModel) bool {
			return strings.TrimSpace(m.AdmissionNo) != "" &&
				strings.TrimSpace(m.FirstName) != "" &&
				m.ClassID != uuid.Nil &&
				m.Gender != ""
		},
		RequiredMessage: "Admission number, first name, gender, and class ID are required",

		Defaults: func(m *model.StudentModel) {
			if m.Status == "" {
				m.Status = model.StudentStatusActive
			}
		},
		// photo fields only change through the upload endpoint
		Protect: func(dst, stored *model.StudentModel) {
			dst.PhotoURL = stored.PhotoURL
			dst.PhotoKey = stored.PhotoKey
		},
		BeforeWrite: func(m *model.StudentModel) error {
			m.AdmissionNo = strings.TrimSpace(m.AdmissionNo)
			m.FirstName = strings.TrimSpace(m.FirstName)
			m.LastName = strings.TrimSpace(m.LastName)
			m.GuardianEmail = strings.ToLower(strings.TrimSpace(m.GuardianEmail))
			return nil
		},
		Scope: scope.OwnStudent("id"),

		References: []resource.Reference[model.StudentModel]{
			{Table: refs.TableClasses, Message: "Class not found", ID: func(m *model.StudentModel) uuid.UUID { return m.ClassID }},
			{Table: refs.TableUsers, Message: "Parent user not found", ID: func(m *model.StudentModel) uuid.UUID {
				if m.ParentUserID == nil {
					return uuid.Nil
				}
				return *m.ParentUserID
			}},
		},
		Filters: []resource.Filter{
			{Param: "class_id", Column: "class_id", Kind: resource.FilterUUID},
			{Param: "status", Column: "status"},
			{Param: "gender", Column: "gender"},
			{Param: "admission_no", Column: "admission_no"},
			{Param: "parent_user_id", Column: "parent_user_id", Kind: resource.FilterUUID},
		},
		Sort: resource.Sort{Column: "first_name"},
		ByRelation: []resource.RelationRoute{
			{Path: "/class/:classId", Param: "classId", Column: "class_id"},
		},
		Stats: &resource.StatsSpec{
			Fields: []resource.EnumField{
				{Name: "status", Column: "status", Values: model.StudentStatuses},
				{Name: "gender", Column: "gender", Values: model.Genders},
			},
		},
	}
}

// UploadPhoto handles POST /students/:id/photo (multipart field "photo").
// The image is resized, re-encoded as WebP and the previous object removed.
func UploadPhoto(ctl *resource.Controller[model.StudentModel, *model.StudentModel], objects helperOSS.ObjectStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		schoolID, err := helperAuth.GetSchoolIDFromToken(c)
		if err != nil {
			return ctl.Fail(c, "PHOTO", err)
		}
		id, err := resource.ParseID(c, "id")
		if err != nil {
			return ctl.Fail(c, "PHOTO", err)
		}
		if objects == nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
		}
		fh, err := c.FormFile("photo")
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Photo file is required")
		}

		ctx := c.UserContext()
		st, err := ctl.Store.Get(ctx, schoolID, id)
		if err != nil {
			return ctl.Fail(c, "PHOTO", err)
		}

		url, key, err := helperOSS.UploadAsWebP(ctx, objects, "schools/"+schoolID.String()+"/students", fh, helperOSS.DefaultWebPOptions())
		if err != nil {
			if errors.Is(err, helperOSS.ErrNotConfigured) {
				return helper.JsonError(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
			}
			log.Printf("[STUDENT][PHOTO] upload failed: %v", err)
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid image: "+err.Error())
		}

		oldKey := st.PhotoKey
		st.PhotoURL, st.PhotoKey = url, key
		if err := ctl.Store.Replace(ctx, st); err != nil {
			_ = objects.Delete(ctx, key)
			return ctl.Fail(c, "PHOTO", err)
		}
		if oldKey != "" && oldKey != key {
			if err := objects.Delete(ctx, oldKey); err != nil {
				log.Printf("[STUDENT][PHOTO] delete old %s: %v", oldKey, err)
			}
		}

		updated, err := ctl.Store.Get(ctx, schoolID, id)
		if err != nil {
			return ctl.Fail(c, "PHOTO", err)
		}
		return helper.JsonUpdated(c, "Student photo updated successfully", updated)
	}
}
