package vehicle

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("vehicle not found")

type Vehicle struct {
	ID        uuid.UUID
	Name      string
	Brand     string
	Model     string
	Color     string
	Plate     string // Upper case
	CreatedAt time.Time
	UpdatedAt *time.Time
}
