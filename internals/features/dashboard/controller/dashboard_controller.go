package controller

import (
	"errors"
	"log"
	"time"

	"schoolerp_backend/internals/features/dashboard/service"
	helper "schoolerp_backend/internals/helpers"
	helperAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/helpers/report"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Svc *service.Service
	Now func() time.Time
}

func NewDashboardController(svc *service.Service) *DashboardController {
	return &DashboardController{Svc: svc, Now: time.Now}
}

func (ctl *DashboardController) fail(c *fiber.Ctx, op string, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	if errors.Is(err, resource.ErrNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Record not found")
	}
	log.Printf("[DASHBOARD][%s] %v", op, err)
	report.Error(c, "DASHBOARD", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

// GET /api/dashboard/admin
func (ctl *DashboardController) Admin(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return ctl.fail(c, "ADMIN", err)
	}
	out, err := ctl.Svc.Admin(c.UserContext(), schoolID, ctl.Now())
	if err != nil {
		return ctl.fail(c, "ADMIN", err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /api/dashboard/teacher
func (ctl *DashboardController) Teacher(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return ctl.fail(c, "TEACHER", err)
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return ctl.fail(c, "TEACHER", err)
	}
	out, err := ctl.Svc.Teacher(c.UserContext(), schoolID, userID, ctl.Now())
	if err != nil {
		return ctl.fail(c, "TEACHER", err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /api/dashboard/student
func (ctl *DashboardController) Student(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return ctl.fail(c, "STUDENT", err)
	}
	studentID, ok := helperAuth.GetStudentIDFromToken(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "Student account is not linked to a student record")
	}
	out, err := ctl.Svc.Student(c.UserContext(), schoolID, studentID, ctl.Now())
	if err != nil {
		return ctl.fail(c, "STUDENT", err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /api/dashboard/parent
func (ctl *DashboardController) Parent(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return ctl.fail(c, "PARENT", err)
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return ctl.fail(c, "PARENT", err)
	}
	out, err := ctl.Svc.Parent(c.UserContext(), schoolID, userID, ctl.Now())
	if err != nil {
		return ctl.fail(c, "PARENT", err)
	}
	return helper.JsonOK(c, "ok", out)
}
