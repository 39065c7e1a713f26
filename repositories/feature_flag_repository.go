package repositories

import (
	"errors"

	"gorm.io/gorm"

	"charhub/models"
	"charhub/utils"
)

type FeatureFlagRepository interface {
	Create(flag *models.FeatureFlag) error
	FindByID(id uint) (*models.FeatureFlag, error)
	FindAll() ([]models.FeatureFlag, error)
}

type featureFlagRepository struct {
	db *gorm.DB
}

func NewFeatureFlagRepository(db *gorm.DB) FeatureFlagRepository {
	return &featureFlagRepository{db: db}
}

// Create inserts a flag; the name is unique. Same pre-check-then-insert
// pattern as user creation, with the index as the final authority.
func (r *featureFlagRepository) Create(flag *models.FeatureFlag) error {
	var existing models.FeatureFlag
	if err := r.db.Where("name = ?", flag.Name).First(&existing).Error; err == nil {
		return utils.ErrConflict
	}

	if err := r.db.Create(flag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrConflict
		}
		return err
	}
	return nil
}

func (r *featureFlagRepository) FindByID(id uint) (*models.FeatureFlag, error) {
	var flag models.FeatureFlag
	if err := r.db.First(&flag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return &flag, nil
}

func (r *featureFlagRepository) FindAll() ([]models.FeatureFlag, error) {
	var flags []models.FeatureFlag
	if err := r.db.Find(&flags).Error; err != nil {
		return nil, err
	}
	return flags, nil
}
