package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"charhub/models"
	"charhub/repositories"
	"charhub/utils"
)

type FeatureFlagController struct {
	Flags  repositories.FeatureFlagRepository
	Logger *logrus.Entry
}

func NewFeatureFlagController(flags repositories.FeatureFlagRepository, logger *logrus.Entry) *FeatureFlagController {
	return &FeatureFlagController{
		Flags:  flags,
		Logger: logger,
	}
}

func (fc *FeatureFlagController) GetFeatureFlags(c *fiber.Ctx) error {
	flags, err := fc.Flags.FindAll()
	if err != nil {
		utils.CaptureError(fc.Logger, err, "failed to fetch feature flags")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch feature flags",
		})
	}
	return c.JSON(flags)
}

type CreateFeatureFlagRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
}

// CreateFeatureFlag creates a flag; names are unique.
func (fc *FeatureFlagController) CreateFeatureFlag(c *fiber.Ctx) error {
	var req CreateFeatureFlagRequest
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

	flag := models.FeatureFlag{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := fc.Flags.Create(&flag); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Feature flag with this name already exists",
			})
		}
		utils.CaptureError(fc.Logger, err, "failed to create feature flag")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create feature flag",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(flag)
}
