package repositories

import (
	"errors"

	"gorm.io/gorm"

	"charhub/models"
	"charhub/utils"
)

// UserRepository owns persistence of user accounts and their credentials.
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindAll(withCharacters bool) ([]models.User, error)
	SetActive(id uint, active bool) (*models.User, error)
	Delete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. The email pre-check is a fast path; the
// unique index remains the final authority, so a concurrent insert that
// slips past the check still reports utils.ErrConflict.
func (r *userRepository) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return utils.ErrConflict
	}

	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrConflict
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(withCharacters bool) ([]models.User, error) {
	query := r.db
	if withCharacters {
		query = query.Preload("Characters")
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetActive flips the active flag. Re-applying the current state is a
// no-op beyond the write itself.
func (r *userRepository) SetActive(id uint, active bool) (*models.User, error) {
	user, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if err := r.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user for good. Owned characters are kept but lose
// their ownership, inside the same transaction. The delete is unscoped
// so the email can be registered again afterwards.
func (r *userRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.Character{}).
			Where("user_id = ?", id).
			Update("user_id", nil).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&user).Error
	})
}
