package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charhub/models"
	"charhub/utils"
)

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	first := models.User{Name: "Alice", Email: "a@x.com", PasswordHash: "hash", IsActive: true}
	require.NoError(t, repo.Create(&first))

	second := models.User{Name: "Imposter", Email: "a@x.com", PasswordHash: "hash2", IsActive: true}
	err := repo.Create(&second)
	assert.ErrorIs(t, err, utils.ErrConflict)

	// The first registration must be unaffected.
	stored, err := repo.FindByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "Alice", stored.Name)
}

func TestUserRepositorySetActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := models.User{Name: "Bob", Email: "b@x.com", PasswordHash: "hash", IsActive: true}
	require.NoError(t, repo.Create(&user))

	blocked, err := repo.SetActive(user.ID, false)
	require.NoError(t, err)
	assert.False(t, blocked.IsActive)

	// Blocking an already blocked user is idempotent.
	blocked, err = repo.SetActive(user.ID, false)
	require.NoError(t, err)
	assert.False(t, blocked.IsActive)

	unblocked, err := repo.SetActive(user.ID, true)
	require.NoError(t, err)
	assert.True(t, unblocked.IsActive)

	_, err = repo.SetActive(9999, false)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestUserRepositoryDeleteOrphansCharacters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := models.User{Name: "Carol", Email: "c@x.com", PasswordHash: "hash", IsActive: true}
	require.NoError(t, repo.Create(&user))

	character := models.Character{Name: "Thorin", UserID: &user.ID}
	require.NoError(t, db.Create(&character).Error)

	require.NoError(t, repo.Delete(user.ID))

	_, err := repo.FindByID(user.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	// The character survives without an owner.
	var orphan models.Character
	require.NoError(t, db.First(&orphan, character.ID).Error)
	assert.Nil(t, orphan.UserID)

	// The email can be registered again.
	again := models.User{Name: "Carol II", Email: "c@x.com", PasswordHash: "hash", IsActive: true}
	assert.NoError(t, repo.Create(&again))
}

func TestUserRepositoryDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	assert.ErrorIs(t, repo.Delete(42), utils.ErrNotFound)
}

func TestUserRepositoryFindAllWithCharacters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := models.User{Name: "Dave", Email: "d@x.com", PasswordHash: "hash", IsActive: true}
	require.NoError(t, repo.Create(&user))
	require.NoError(t, db.Create(&models.Character{Name: "Gimli", UserID: &user.ID}).Error)

	users, err := repo.FindAll(true)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Len(t, users[0].Characters, 1)
	assert.Equal(t, "Gimli", users[0].Characters[0].Name)

	// Without expansion the relation stays empty.
	users, err = repo.FindAll(false)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Characters)
}
