package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"charhub/models"
	"charhub/repositories"
	"charhub/services"
	"charhub/utils"
)

type UserController struct {
	Users       repositories.UserRepository
	Permissions *services.PermissionService
	Logger      *logrus.Entry
}

func NewUserController(users repositories.UserRepository, permissions *services.PermissionService, logger *logrus.Entry) *UserController {
	return &UserController{
		Users:       users,
		Permissions: permissions,
		Logger:      logger,
	}
}

// permissionRequest carries the character acting on behalf of the
// caller. The gate checks that character's flags, not the session's.
type permissionRequest struct {
	CharacterID uint `json:"characterId"`
}

// GetUsers lists all users with their characters expanded. Password
// hashes never serialize.
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	users, err := uc.Users.FindAll(true)
	if err != nil {
		utils.CaptureError(uc.Logger, err, "failed to fetch users")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch users",
		})
	}
	return c.JSON(users)
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateUser creates an account directly, without signing the caller in.
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.CaptureError(uc.Logger, err, "failed to hash password")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	if err := uc.Users.Create(&user); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "User with this email already exists",
			})
		}
		utils.CaptureError(uc.Logger, err, "failed to create user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// BlockUser deactivates an account. Gated on the acting character
// holding the user management flag.
func (uc *UserController) BlockUser(c *fiber.Ctx) error {
	return uc.setUserActive(c, false)
}

// UnblockUser reactivates an account, behind the same gate.
func (uc *UserController) UnblockUser(c *fiber.Ctx) error {
	return uc.setUserActive(c, true)
}

func (uc *UserController) setUserActive(c *fiber.Ctx, active bool) error {
	userID := utils.ParseUint(c.Params("id"))

	var req permissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if ok, err := uc.requireUserManagement(c, req); !ok {
		return err
	}

	user, err := uc.Users.SetActive(userID, active)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		utils.CaptureError(uc.Logger, err, "failed to update user status")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update user",
		})
	}

	message := "User blocked successfully"
	if active {
		message = "User unblocked successfully"
	}

	return c.JSON(fiber.Map{
		"message": message,
		"user":    user,
	})
}

// DeleteUser removes an account entirely, behind the same gate. The
// user's characters survive without an owner.
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	userID := utils.ParseUint(c.Params("id"))

	var req permissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if ok, err := uc.requireUserManagement(c, req); !ok {
		return err
	}

	if err := uc.Users.Delete(userID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		utils.CaptureError(uc.Logger, err, "failed to delete user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}

// requireUserManagement writes the failure response itself; the bool
// tells the caller whether to carry on.
func (uc *UserController) requireUserManagement(c *fiber.Ctx, req permissionRequest) (bool, error) {
	if req.CharacterID == 0 {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "characterId is required",
		})
	}

	if err := uc.Permissions.RequireFlag(req.CharacterID, services.FlagUserManagement); err != nil {
		return false, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Character does not have the required permission",
		})
	}

	return true, nil
}
