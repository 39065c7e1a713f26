package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"charhub/models"
	"charhub/repositories"
	"charhub/utils"
)

type CharacterController struct {
	Characters repositories.CharacterRepository
	Logger     *logrus.Entry
}

func NewCharacterController(characters repositories.CharacterRepository, logger *logrus.Entry) *CharacterController {
	return &CharacterController{
		Characters: characters,
		Logger:     logger,
	}
}

// GetCharacters lists characters with their owner expanded. Flags are
// expanded too when the caller asks via ?includeFlags=true.
func (cc *CharacterController) GetCharacters(c *fiber.Ctx) error {
	characters, err := cc.Characters.FindAll(true, c.QueryBool("includeFlags"))
	if err != nil {
		utils.CaptureError(cc.Logger, err, "failed to fetch characters")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch characters",
		})
	}
	return c.JSON(characters)
}

type CreateCharacterRequest struct {
	Name           string  `json:"name" validate:"required,max=100"`
	Level          *int    `json:"level"`
	CharacterClass *string `json:"characterClass"`
	UserID         *uint   `json:"userId"`
}

// CreateCharacter creates a character. It belongs to the user named in
// the body, or to the authenticated caller when the body names none.
func (cc *CharacterController) CreateCharacter(c *fiber.Ctx) error {
	var req CreateCharacterRequest
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

	ownerID := req.UserID
	if ownerID == nil {
		if user, ok := c.Locals("user").(*models.User); ok {
			ownerID = &user.ID
		}
	}

	character := models.Character{
		Name:           req.Name,
		Level:          req.Level,
		CharacterClass: req.CharacterClass,
		UserID:         ownerID,
	}

	if err := cc.Characters.Create(&character); err != nil {
		utils.CaptureError(cc.Logger, err, "failed to create character")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create character",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(character)
}

// GetCharacterFlags lists the feature flags assigned to one character.
func (cc *CharacterController) GetCharacterFlags(c *fiber.Ctx) error {
	characterID := utils.ParseUint(c.Params("id"))

	flags, err := cc.Characters.FlagsFor(characterID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Character not found",
			})
		}
		utils.CaptureError(cc.Logger, err, "failed to fetch character flags")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch feature flags",
		})
	}

	return c.JSON(flags)
}

type AttachFlagRequest struct {
	FlagID uint `json:"flagId" validate:"required"`
}

// AttachFlag assigns a feature flag to a character. A pairing that
// already exists is rejected.
func (cc *CharacterController) AttachFlag(c *fiber.Ctx) error {
	characterID := utils.ParseUint(c.Params("id"))

	var req AttachFlagRequest
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

	character, err := cc.Characters.AttachFlag(characterID, req.FlagID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Character or feature flag not found",
			})
		case errors.Is(err, utils.ErrConflict):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Feature flag already assigned to this character",
			})
		}
		utils.CaptureError(cc.Logger, err, "failed to attach feature flag")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to attach feature flag",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Feature flag assigned to character",
		"character": character,
	})
}

// DetachFlag removes a flag from a character. Removing a flag that was
// never attached succeeds and changes nothing.
func (cc *CharacterController) DetachFlag(c *fiber.Ctx) error {
	characterID := utils.ParseUint(c.Params("id"))
	flagID := utils.ParseUint(c.Params("flagId"))

	if err := cc.Characters.DetachFlag(characterID, flagID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Character not found",
			})
		}
		utils.CaptureError(cc.Logger, err, "failed to detach feature flag")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to detach feature flag",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Feature flag removed from character",
	})
}
