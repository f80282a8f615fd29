package directorysvc

import (
	"context"
	"sync"

	"github.com/campushub/support-service/core"
)

// MockService is an in-memory core.DirectoryService for tests and local dev.
type MockService struct {
	mu       sync.RWMutex
	profiles map[int]core.Profile

	// Err, when set, is returned by every call; simulates an unreachable
	// directory.
	Err error
}

var _ core.DirectoryService = (*MockService)(nil)

func NewMockService(profiles ...core.Profile) *MockService {
	svc := &MockService{profiles: make(map[int]core.Profile, len(profiles))}
	for _, p := range profiles {
		svc.profiles[p.ID] = p
	}
	return svc
}

func (svc *MockService) AddProfile(p core.Profile) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.profiles[p.ID] = p
}

func (svc *MockService) GetUser(_ context.Context, id int) (core.Profile, error) {
	if svc.Err != nil {
		return core.Profile{}, svc.Err
	}
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	if p, ok := svc.profiles[id]; ok {
		return p, nil
	}
	return core.Profile{}, core.ErrProfileNotFound
}

func (svc *MockService) GetDepartmentMembers(_ context.Context, department, _ string) ([]core.Profile, error) {
	if svc.Err != nil {
		return nil, svc.Err
	}
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	// deterministic order: ascending ids
	var members []core.Profile
	for id := 0; id <= svc.maxID(); id++ {
		if p, ok := svc.profiles[id]; ok && p.Department == department {
			members = append(members, p)
		}
	}
	return members, nil
}

func (svc *MockService) maxID() int {
	var max int
	for id := range svc.profiles {
		if id > max {
			max = id
		}
	}
	return max
}
