package person

import (
	"context"
	"log/slog"

	"github.com/officetrack/officetrack-backend-go/internal/domain/person"
)

type personService struct {
	personRepo person.Repository
}

func NewPersonService(personRepo person.Repository) person.Service {
	return &personService{personRepo: personRepo}
}

// List implements person.Service.
func (s *personService) List(ctx context.Context) ([]person.Person, error) {
	return s.personRepo.List(ctx)
}

// Get implements person.Service.
func (s *personService) Get(ctx context.Context, externalUserID int64) (person.Person, error) {
	return s.personRepo.GetByExternalID(ctx, externalUserID)
}

// Rename implements person.Service. The next recorded action for the user
// overwrites the name again with whatever the scan carries.
func (s *personService) Rename(ctx context.Context, externalUserID int64, fullName string) error {
	if err := s.personRepo.UpdateFullName(ctx, externalUserID, fullName); err != nil {
		return err
	}

	slog.Info("person renamed", "user_id", externalUserID)
	return nil
}
