package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fitdiary/backend/utils"
)

// checkID rejects ids that cannot exist; primary keys are uuids.
func checkID(kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s %q: %w", kind, id, utils.ErrResourceNotFound)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, utils.ErrResourceNotFound)
}
