package utils

import (
	"lms/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyUserRegistered posts a "user registered" event to the configured
// webhook. Fire-and-forget: callers should run it in a goroutine; the signup
// request never fails because of the webhook.
func NotifyUserRegistered(userID uint, name, email, role string) {
	webhookURL := config.AppConfig.RegistrationWebhookURL
	if webhookURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":   "user.registered",
			"user_id": userID,
			"name":    name,
			"email":   email,
			"role":    role,
		}).
		Post(webhookURL)
	if err != nil {
		log.Printf("[NOTIFY] Error calling registration webhook: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("[NOTIFY] Registration webhook failed with status %d: %s", resp.StatusCode(), resp.String())
		return
	}
	log.Printf("[NOTIFY] Registration event delivered for %s", email)
}
