package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"bidly-backend/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct{}

var emailService *EmailService

func GetEmailService() *EmailService {
	if emailService == nil {
		emailService = &EmailService{}
	}
	return emailService
}

func (es *EmailService) send(toEmail, toName, subject, htmlBody string) {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Printf("⚠️  SendGrid API key not set, skipping email to %s", toEmail)
		return
	}

	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.SendGridFrom)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("❌ Email send error: %v", err)
		return
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("✅ Email sent to %s", toEmail)
	} else {
		log.Printf("⚠️  SendGrid returned status: %d", resp.StatusCode)
	}
}

func renderEmail(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var projectInvitationTmpl = template.Must(template.New("projectInvitation").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #2563EB; margin-top: 0;">🏗️ You're invited to bid!</h2>
		<p><strong>{{.GCName}}</strong> invited you to bid on <strong>"{{.ProjectTitle}}"</strong> on {{.AppName}}.</p>
		<p>Review the project plans and submit your bid before the deadline.</p>
		<div style="margin: 24px 0;">
			<a href="{{.InviteURL}}" style="background: #2563EB; color: white; padding: 12px 32px; border-radius: 8px; text-decoration: none; font-weight: bold;">View Project</a>
		</div>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— {{.AppName}}</p>
	</div>
</body>
</html>`))

type projectInvitationData struct {
	GCName       string
	ProjectTitle string
	AppName      string
	InviteURL    string
}

// SendProjectInvitation emails a sub a link to view and bid on a project.
func (es *EmailService) SendProjectInvitation(toEmail, gcName, projectTitle, inviteURL string) {
	subject := fmt.Sprintf("%s invited you to bid on \"%s\"", gcName, projectTitle)

	htmlBody, err := renderEmail(projectInvitationTmpl, projectInvitationData{
		GCName:       gcName,
		ProjectTitle: projectTitle,
		AppName:      config.AppConfig.AppName,
		InviteURL:    inviteURL,
	})
	if err != nil {
		log.Printf("❌ Failed to render invitation email: %v", err)
		return
	}

	es.send(toEmail, "", subject, htmlBody)
}

var referralInviteTmpl = template.Must(template.New("referralInvite").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #2563EB; margin-top: 0;">🎉 You're invited!</h2>
		<p><strong>{{.ReferrerName}}</strong> invited you to join <strong>{{.AppName}}</strong>, the marketplace connecting general contractors with subcontractors.</p>
		<div style="margin: 24px 0;">
			<a href="{{.ReferralLink}}" style="background: #2563EB; color: white; padding: 12px 32px; border-radius: 8px; text-decoration: none; font-weight: bold;">Join Now</a>
		</div>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— {{.AppName}}</p>
	</div>
</body>
</html>`))

type referralInviteData struct {
	ReferrerName string
	AppName      string
	ReferralLink string
}

// SendReferralInvite emails a prospective user their referrer's signup link.
func (es *EmailService) SendReferralInvite(toEmail, referrerName, referralLink string) {
	subject := fmt.Sprintf("%s invited you to join %s", referrerName, config.AppConfig.AppName)

	htmlBody, err := renderEmail(referralInviteTmpl, referralInviteData{
		ReferrerName: referrerName,
		AppName:      config.AppConfig.AppName,
		ReferralLink: referralLink,
	})
	if err != nil {
		log.Printf("❌ Failed to render referral email: %v", err)
		return
	}

	es.send(toEmail, "", subject, htmlBody)
}
