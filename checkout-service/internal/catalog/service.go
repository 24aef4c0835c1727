package catalog

import (
	"context"
	"strconv"
	"sync"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"golang.org/x/sync/singleflight"
)

// Service is a read-through cache over the repository. Packages never
// change while the process runs, so entries are never invalidated.
type Service struct {
	repo RepoInterface
	sfg  singleflight.Group // collapses concurrent misses for one id

	mu    sync.RWMutex
	cache map[int64]d.Package
}

func NewService(repo RepoInterface) *Service {
	return &Service{repo: repo, cache: make(map[int64]d.Package)}
}

func (s *Service) GetPackage(ctx context.Context, id int64) (d.Package, error) {
	s.mu.RLock()
	p, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	v, err, _ := s.sfg.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		s.mu.RLock()
		cached, ok := s.cache[id]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		p, err := s.repo.GetPackage(ctx, id)
		if err != nil {
			return d.Package{}, err
		}
		s.mu.Lock()
		s.cache[id] = p
		s.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return d.Package{}, err
	}
	return v.(d.Package), nil
}

func (s *Service) ListPackages(ctx context.Context) ([]d.Package, error) {
	packages, err := s.repo.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for _, p := range packages {
		s.cache[p.ID] = p
	}
	s.mu.Unlock()
	return packages, nil
}
