package uuidutil

import "github.com/google/uuid"

func New() string {
	return uuid.New().String()
}

// NewTimeOrdered returns a version 7 id, so ids sort by creation time.
func NewTimeOrdered() string {
	id, err := uuid.NewV7()
	if err != nil {
		return New()
	}
	return id.String()
}

func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
