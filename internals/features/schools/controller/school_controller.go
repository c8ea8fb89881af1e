package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"schoolerp_backend/internals/features/schools/model"
	helper "schoolerp_backend/internals/helpers"
	helperAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

type SchoolController struct {
	Store resource.Store[model.SchoolModel]
}

func NewSchoolController(store resource.Store[model.SchoolModel]) *SchoolController {
	return &SchoolController{Store: store}
}

func (sc *SchoolController) fail(c *fiber.Ctx, op string, err error) error {
	var (
		fe *fiber.Error
		ve *resource.ValidationError
	)
	switch {
	case errors.As(err, &fe):
		return helper.JsonError(c, fe.Code, fe.Message)
	case errors.As(err, &ve):
		return helper.JsonValidationError(c, ve.Fields)
	case errors.Is(err, resource.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "School not found")
	}
	log.Printf("[SCHOOL][%s] %v", op, err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

// GET /api/schools/me
func (sc *SchoolController) GetMe(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return sc.fail(c, "GET_ME", err)
	}
	s, err := sc.Store.Get(c.UserContext(), schoolID, schoolID)
	if err != nil {
		return sc.fail(c, "GET_ME", err)
	}
	return helper.JsonOK(c, "ok", s)
}

// PUT /api/schools/me: slug and status are not editable here.
func (sc *SchoolController) UpdateMe(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return sc.fail(c, "UPDATE_ME", err)
	}
	ctx := c.UserContext()
	stored, err := sc.Store.Get(ctx, schoolID, schoolID)
	if err != nil {
		return sc.fail(c, "UPDATE_ME", err)
	}

	m := *stored
	if err := c.BodyParser(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m.Base = stored.Base
	m.UpdatedAt = time.Now().UTC()
	m.Slug, m.Status = stored.Slug, stored.Status
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "School name is required")
	}
	if strings.TrimSpace(m.Timezone) == "" {
		m.Timezone = "UTC"
	}

	if err := sc.Store.Replace(ctx, &m); err != nil {
		return sc.fail(c, "UPDATE_ME", err)
	}
	return helper.JsonUpdated(c, "School updated successfully", m)
}
