package services

import (
	"context"
	"fmt"
	"lifetag/models"
	"lifetag/utils"
	"time"

	"github.com/sirupsen/logrus"
)

// alertSendTimeout bounds outbound push/SMS calls made from detached
// goroutines.
const alertSendTimeout = 10 * time.Second

// AlertService notifies a profile owner when someone else opens their
// medical profile. All sends are best-effort.
type AlertService struct {
	notificationService *utils.NotificationService
}

func NewAlertService(firebaseCredentials, twilioSID, twilioToken, twilioNumber string) (*AlertService, error) {
	notificationService, err := utils.NewNotificationService(firebaseCredentials, twilioSID, twilioToken, twilioNumber)
	if err != nil {
		return nil, err
	}

	return &AlertService{
		notificationService: notificationService,
	}, nil
}

// SendAccessAlert tells the owner their profile was just viewed. Push goes to
// the owner's registered device; SMS goes to the primary emergency contact
// when the owner has SMS alerts on.
func (als *AlertService) SendAccessAlert(owner *models.User, clientIP string) {
	ctx, cancel := context.WithTimeout(context.Background(), alertSendTimeout)
	defer cancel()

	if owner.Notifications.PushEnabled && owner.DeviceToken != "" {
		notification := utils.PushNotification{
			Title: "🚨 Medical Profile Accessed",
			Body:  "Your emergency medical profile was just viewed.",
			Data: map[string]string{
				"type":      "profile_access",
				"profileId": owner.ID.Hex(),
			},
			Sound: "default",
		}
		if clientIP != "" {
			notification.Data["sourceIp"] = clientIP
		}

		if _, err := als.notificationService.SendPushNotification(ctx, owner.DeviceToken, notification); err != nil {
			logrus.Warnf("Failed to send access alert push to %s: %v", utils.MaskEmail(owner.Email), err)
		}
	}

	if owner.Notifications.SMSEnabled {
		if contact := owner.PrimaryContact(); contact != nil && contact.Phone != "" {
			sms := utils.SMSMessage{
				To:      utils.NormalizePhoneNumber(contact.Phone),
				Message: fmt.Sprintf("LifeTag: the emergency medical profile of %s was just accessed.", owner.FullName()),
			}
			if _, err := als.notificationService.SendSMS(ctx, sms); err != nil {
				logrus.Warnf("Failed to send access alert SMS for %s: %v", utils.MaskEmail(owner.Email), err)
			}
		}
	}
}

// SendEmergencyContactAlert texts every emergency contact that the profile
// was scanned, for owners who opted into contact notifications.
func (als *AlertService) SendEmergencyContactAlert(owner *models.User) {
	if !owner.Notifications.SMSEnabled {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), alertSendTimeout)
	defer cancel()

	message := fmt.Sprintf("LifeTag alert: the emergency medical ID of %s was scanned. They may need assistance.", owner.FullName())

	for _, contact := range owner.EmergencyContacts {
		if contact.Phone == "" {
			continue
		}
		sms := utils.SMSMessage{
			To:      utils.NormalizePhoneNumber(contact.Phone),
			Message: message,
		}
		if _, err := als.notificationService.SendSMS(ctx, sms); err != nil {
			logrus.Warnf("Failed to alert emergency contact %s: %v", contact.Name, err)
		}
	}
}
