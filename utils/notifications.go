package utils

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"google.golang.org/api/option"
)

// NotificationService delivers access alerts over FCM push and Twilio SMS.
// Either channel may be unconfigured; sends on a missing channel are logged
// and skipped rather than failed so alerts degrade cleanly in development.
type NotificationService struct {
	fcmClient    *messaging.Client
	twilioClient *twilio.RestClient
	twilioNumber string
}

type PushNotification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
	Sound string            `json:"sound,omitempty"`
}

type SMSMessage struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type NotificationResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

func NewNotificationService(firebaseCredentials, twilioSID, twilioToken, twilioNumber string) (*NotificationService, error) {
	ns := &NotificationService{
		twilioNumber: twilioNumber,
	}

	if firebaseCredentials != "" {
		opt := option.WithCredentialsFile(firebaseCredentials)
		app, err := firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Firebase: %v", err)
		}

		ns.fcmClient, err = app.Messaging(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize FCM client: %v", err)
		}
	} else {
		logrus.Warn("⚠️  Firebase credentials not set, push notifications disabled")
	}

	if twilioSID != "" && twilioToken != "" {
		ns.twilioClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: twilioSID,
			Password: twilioToken,
		})
	} else {
		logrus.Warn("⚠️  Twilio credentials not set, SMS notifications disabled")
	}

	return ns, nil
}

func (ns *NotificationService) SendPushNotification(ctx context.Context, deviceToken string, notification PushNotification) (*NotificationResult, error) {
	if ns.fcmClient == nil {
		logrus.Debugf("Push skipped (FCM disabled): %s", notification.Title)
		return &NotificationResult{Success: false, Error: "push disabled"}, nil
	}

	message := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: notification.Data,
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Sound: notification.Sound,
				Icon:  "ic_notification",
				Color: "#D32F2F",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: notification.Title,
						Body:  notification.Body,
					},
					Sound: notification.Sound,
				},
			},
		},
	}

	response, err := ns.fcmClient.Send(ctx, message)
	if err != nil {
		return &NotificationResult{
			Success: false,
			Error:   err.Error(),
		}, err
	}

	return &NotificationResult{
		Success:   true,
		MessageID: response,
	}, nil
}

func (ns *NotificationService) SendSMS(ctx context.Context, sms SMSMessage) (*NotificationResult, error) {
	if ns.twilioClient == nil {
		logrus.Debugf("SMS skipped (Twilio disabled): %s", sms.To)
		return &NotificationResult{Success: false, Error: "sms disabled"}, nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(sms.To)
	params.SetFrom(ns.twilioNumber)
	params.SetBody(sms.Message)

	resp, err := ns.twilioClient.Api.CreateMessage(params)
	if err != nil {
		return &NotificationResult{
			Success: false,
			Error:   err.Error(),
		}, err
	}

	return &NotificationResult{
		Success:   true,
		MessageID: *resp.Sid,
	}, nil
}
