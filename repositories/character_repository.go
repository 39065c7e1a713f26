package repositories

import (
	"errors"

	"gorm.io/gorm"

	"charhub/models"
	"charhub/utils"
)

// CharacterRepository owns persistence of characters and their
// feature-flag assignments.
type CharacterRepository interface {
	Create(character *models.Character) error
	FindByID(id uint, withFlags bool) (*models.Character, error)
	FindAll(withOwner, withFlags bool) ([]models.Character, error)
	AttachFlag(characterID, flagID uint) (*models.Character, error)
	DetachFlag(characterID, flagID uint) error
	FlagsFor(characterID uint) ([]models.FeatureFlag, error)
}

type characterRepository struct {
	db *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) CharacterRepository {
	return &characterRepository{db: db}
}

func (r *characterRepository) Create(character *models.Character) error {
	return r.db.Create(character).Error
}

func (r *characterRepository) FindByID(id uint, withFlags bool) (*models.Character, error) {
	query := r.db
	if withFlags {
		query = query.Preload("FeatureFlags")
	}

	var character models.Character
	if err := query.First(&character, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return &character, nil
}

// FindAll expands exactly the relations the caller asked for.
func (r *characterRepository) FindAll(withOwner, withFlags bool) ([]models.Character, error) {
	query := r.db
	if withOwner {
		query = query.Preload("User")
	}
	if withFlags {
		query = query.Preload("FeatureFlags")
	}

	var characters []models.Character
	if err := query.Find(&characters).Error; err != nil {
		return nil, err
	}
	return characters, nil
}

// AttachFlag adds a flag to a character. A pairing is never duplicated:
// the existing assignment check answers utils.ErrConflict, and the join
// table's composite key backs it up against races.
func (r *characterRepository) AttachFlag(characterID, flagID uint) (*models.Character, error) {
	character, err := r.FindByID(characterID, true)
	if err != nil {
		return nil, err
	}

	var flag models.FeatureFlag
	if err := r.db.First(&flag, flagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	for _, assigned := range character.FeatureFlags {
		if assigned.ID == flag.ID {
			return nil, utils.ErrConflict
		}
	}

	if err := r.db.Model(character).Association("FeatureFlags").Append(&flag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrConflict
		}
		return nil, err
	}

	return r.FindByID(characterID, true)
}

// DetachFlag removes a pairing if it exists. Detaching a flag that was
// never attached is not an error; only a missing character is.
func (r *characterRepository) DetachFlag(characterID, flagID uint) error {
	character, err := r.FindByID(characterID, false)
	if err != nil {
		return err
	}

	flag := models.FeatureFlag{Model: gorm.Model{ID: flagID}}
	return r.db.Model(character).Association("FeatureFlags").Delete(&flag)
}

func (r *characterRepository) FlagsFor(characterID uint) ([]models.FeatureFlag, error) {
	character, err := r.FindByID(characterID, true)
	if err != nil {
		return nil, err
	}
	if character.FeatureFlags == nil {
		return []models.FeatureFlag{}, nil
	}
	return character.FeatureFlags, nil
}
