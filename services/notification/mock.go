package notifsvc

import (
	"context"
	"sync"

	"github.com/campushub/support-service/core"
)

// MockService records published notifications for test assertions.
type MockService struct {
	mu        sync.Mutex
	published []core.Notification

	// Err, when set, is returned by every publish; simulates a broker
	// outage.
	Err error
}

var _ core.NotificationService = (*MockService)(nil)

func NewMockService() *MockService {
	return &MockService{}
}

func (svc *MockService) PublishSupportEvent(_ context.Context, notif core.Notification) error {
	if svc.Err != nil {
		return svc.Err
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.published = append(svc.published, notif)
	return nil
}

func (svc *MockService) Published() []core.Notification {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	out := make([]core.Notification, len(svc.published))
	copy(out, svc.published)
	return out
}

func (svc *MockService) Reset() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.published = nil
}
