package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schooldesk_backend/internals/features/users/auth/dto"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

// GET /api/a/users?role=TEACHER
func (ac *AuthController) ListUsers(c *fiber.Ctx) error {
	rows, err := ac.Svc.ListUsers(c.UserContext(), c.Query("role"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, dto.NewProfileResponses(rows), nil)
}

// GET /api/a/users/:id
func (ac *AuthController) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	p, err := ac.Svc.GetUser(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.NewProfileResponse(p))
}

// PATCH /api/a/users/:id/role
func (ac *AuthController) UpdateUserRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	p, err := ac.Svc.UpdateUserRole(c.UserContext(), helperAuth.GetRoleFromLocals(c), id, req.Role)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Role updated", dto.NewProfileResponse(p))
}
