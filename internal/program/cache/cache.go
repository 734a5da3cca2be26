// Package cache keeps the active program list close to the service.
//
// Active programs change only when an administrator publishes a version, yet
// every applicant page lists them. Programs wraps the program store and
// serves ListActive from a Backend until a program insert invalidates it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"uat/internal/user/models"
)

const activeProgramsKey = "programs:active"

// Backend stores the encoded active program list.
type Backend interface {
	// Get reports false when nothing is cached or the entry expired.
	Get(ctx context.Context) ([]models.ProgramDefinition, bool, error)
	Set(ctx context.Context, programs []models.ProgramDefinition) error
	Invalidate(ctx context.Context) error
}

func encode(programs []models.ProgramDefinition) ([]byte, error) {
	if programs == nil {
		programs = []models.ProgramDefinition{}
	}
	raw, err := json.Marshal(programs)
	if err != nil {
		return nil, fmt.Errorf("encode active programs: %w", err)
	}
	return raw, nil
}

func decode(raw []byte) ([]models.ProgramDefinition, error) {
	var programs []models.ProgramDefinition
	if err := json.Unmarshal(raw, &programs); err != nil {
		return nil, fmt.Errorf("decode active programs: %w", err)
	}
	return programs, nil
}
