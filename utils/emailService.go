package utils

import (
	"fmt"
	"lms/config"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email through SendGrid. Failures are logged but
// never surfaced to the request that triggered the email.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("[EMAIL] SendGrid not configured, skipping email %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail(config.AppConfig.EmailName, config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[EMAIL] SendGrid rejected email to %s with status %d", toEmail, resp.StatusCode)
		return fmt.Errorf("sendgrid responded with status %d", resp.StatusCode)
	}
	return nil
}

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to " + config.AppConfig.EmailName + "!"
	body := emailTemplate("Welcome aboard", `
		<p>Dear `+name+`,</p>
		<p>Your account has been created successfully. Browse our course catalog and start learning today!</p>`)

	go SendEmail(email, name, subject, body)
}

// SendEnrollmentEmail confirms a new course enrollment
func SendEnrollmentEmail(email, name, courseTitle string) {
	subject := "You are enrolled in " + courseTitle
	body := emailTemplate("Enrollment confirmed", `
		<p>Dear `+name+`,</p>
		<p>You have been enrolled in <strong>`+courseTitle+`</strong>. Your progress is tracked automatically as you complete lessons.</p>`)

	go SendEmail(email, name, subject, body)
}

// emailTemplate wraps content in the shared HTML layout
func emailTemplate(title, bodyContent string) string {
	return `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>` + title + `</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2 style="color: #2563eb;">` + title + `</h2>
		` + bodyContent + `
		<hr style="border: 1px solid #eee; margin: 20px 0;">
		<p style="font-size: 12px; color: #666;">This is an automated message from ` + config.AppConfig.EmailName + `.</p>
	</div>
</body>
</html>`
}
