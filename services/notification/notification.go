package notification

import (
	"context"
	"fmt"

	technicianRepo "fieldserve/database/repository/technician"
	"fieldserve/utils"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendTechnicianPush(ctx context.Context, techID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Techs technicianRepo.TechnicianRepository
}

// SendTechnicianPush looks up a technician's FCM token and sends a push.
func (s *DefaultNotificationService) SendTechnicianPush(
	ctx context.Context,
	techID, title, body string,
	data map[string]string,
) error {
	tech, err := s.Techs.GetByID(techID)
	if err != nil {
		return fmt.Errorf("SendTechnicianPush: could not find technician %s: %w", techID, err)
	}
	if tech == nil || tech.FCMToken == "" {
		return fmt.Errorf("SendTechnicianPush: technician %s has no FCM token", techID)
	}

	msg := &messaging.Message{
		Token: tech.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendTechnicianPush: failed to send FCM message: %w", err)
	}
	return nil
}
