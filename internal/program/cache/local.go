package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"uat/internal/user/models"
)

// Local is an in-process Backend. Entries are kept encoded so callers never
// share maps with the cache.
type Local struct {
	cache *gocache.Cache
}

func NewLocal(ttl time.Duration) *Local {
	return &Local{cache: gocache.New(ttl, 2*ttl)}
}

func (l *Local) Get(_ context.Context) ([]models.ProgramDefinition, bool, error) {
	cached, found := l.cache.Get(activeProgramsKey)
	if !found {
		return nil, false, nil
	}
	programs, err := decode(cached.([]byte))
	if err != nil {
		return nil, false, err
	}
	return programs, true, nil
}

func (l *Local) Set(_ context.Context, programs []models.ProgramDefinition) error {
	raw, err := encode(programs)
	if err != nil {
		return err
	}
	l.cache.Set(activeProgramsKey, raw, gocache.DefaultExpiration)
	return nil
}

func (l *Local) Invalidate(_ context.Context) error {
	l.cache.Delete(activeProgramsKey)
	return nil
}
