package notifsvc

import (
	"context"
	"encoding/json"
	"log"

	"github.com/campushub/support-service/core"
)

// consoleService writes notifications to stdout; debug mode stand-in for
// the broker.
type consoleService struct{}

var _ core.NotificationService = (*consoleService)(nil)

func NewConsoleService() core.NotificationService {
	return &consoleService{}
}

func (svc consoleService) PublishSupportEvent(_ context.Context, notif core.Notification) error {
	body, err := json.Marshal(notif)
	if err != nil {
		return err
	}
	log.Printf("support event: %s", body)
	return nil
}
