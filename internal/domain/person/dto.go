package person

import (
	"time"

	"github.com/officetrack/officetrack-backend-go/internal/pkg/validator"
)

type PersonResponse struct {
	UserID    int64     `json:"user_id"`
	FullName  string    `json:"full_name"`
	Username  *string   `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToPersonResponse(p Person) PersonResponse {
	return PersonResponse{
		UserID:    p.ExternalUserID,
		FullName:  p.FullName,
		Username:  p.Username,
		CreatedAt: p.CreatedAt,
	}
}

type RenameRequest struct {
	FullName string `json:"full_name"`
}

func (r *RenameRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
