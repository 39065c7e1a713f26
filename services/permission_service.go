package services

import (
	"errors"

	"github.com/sirupsen/logrus"

	"charhub/repositories"
	"charhub/utils"
)

// FlagUserManagement is the feature flag a character must hold before
// the user-management mutations (block, unblock, delete) are allowed.
const FlagUserManagement = "userverwaltung"

// PermissionService decides whether a character is allowed to perform a
// privileged action, based on its assigned feature flags.
type PermissionService struct {
	characters repositories.CharacterRepository
	logger     *logrus.Entry
}

func NewPermissionService(characters repositories.CharacterRepository, logger *logrus.Entry) *PermissionService {
	return &PermissionService{
		characters: characters,
		logger:     logger,
	}
}

// HasFlag reports whether the character holds flagName, by exact match.
// The gate fails closed: an unknown character, or any lookup failure,
// answers false rather than an error.
func (s *PermissionService) HasFlag(characterID uint, flagName string) bool {
	flags, err := s.characters.FlagsFor(characterID)
	if err != nil {
		if !errors.Is(err, utils.ErrNotFound) {
			s.logger.WithError(err).Warn("permission lookup failed, denying")
		}
		return false
	}

	for _, flag := range flags {
		if flag.Name == flagName {
			return true
		}
	}
	return false
}

// RequireFlag is the precondition guard used before privileged mutations.
func (s *PermissionService) RequireFlag(characterID uint, flagName string) error {
	if !s.HasFlag(characterID, flagName) {
		return utils.ErrForbidden
	}
	return nil
}
