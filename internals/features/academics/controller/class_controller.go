package controller

import (
	"strings"

	"schoolerp_backend/internals/features/academics/model"
	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

func ClassConfig() resource.Config[model.ClassModel] {
	return resource.Config[model.ClassModel]{
		Tag:   "CLASS",
		Label: "Class",
		Required: func(m *model.ClassModel) bool {
			return strings.TrimSpace(m.Name) != ""
		},
		RequiredMessage: "Class name is required",
		References: []resource.Reference[model.ClassModel]{
			{Table: refs.TableStaff, Message: "Class teacher not found", ID: func(m *model.ClassModel) uuid.UUID {
				if m.ClassTeacherID == nil {
					return uuid.Nil
				}
				return *m.ClassTeacherID
			}},
		},
		Filters: []resource.Filter{
			{Param: "academic_year", Column: "academic_year"},
			{Param: "section", Column: "section"},
			{Param: "class_teacher_id", Column: "class_teacher_id", Kind: resource.FilterUUID},
		},
		Sort: resource.Sort{Column: "name"},
	}
}
