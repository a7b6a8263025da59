package utils

import (
	"adhya/config"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a transactional email through the configured provider.
// Brevo (HTTP API) is the default; SendGrid is the alternate. A package-level
// var so tests can capture outbound mail without a provider account.
var SendEmail = func(to, subject, html, text string) error {
	switch config.AppConfig.EmailProvider {
	case "sendgrid":
		return sendViaSendGrid(to, subject, html, text)
	default:
		return sendViaBrevo(to, subject, html, text)
	}
}

func sendViaBrevo(to, subject, html, text string) error {
	cfg := config.AppConfig

	payload := map[string]interface{}{
		"sender":      map[string]string{"name": cfg.EmailSender, "email": cfg.EmailFrom},
		"to":          []map[string]string{{"email": to}},
		"subject":     subject,
		"htmlContent": html,
		"textContent": text,
		"headers": map[string]string{
			"X-Mailin-custom": "click_tracking_off",
		},
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("api-key", cfg.BrevoApiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(payload).
		Post("https://api.brevo.com/v3/smtp/email")

	if err != nil {
		log.Printf("Error sending email via Brevo: %v", err)
		return err
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Brevo rejected email: %d %s", resp.StatusCode(), resp.String())
		return fmt.Errorf("email delivery failed, code: %d", resp.StatusCode())
	}

	log.Println("Email sent successfully to", to)
	return nil
}

func sendViaSendGrid(to, subject, html, text string) error {
	cfg := config.AppConfig

	from := mail.NewEmail(cfg.EmailSender, cfg.EmailFrom)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), text, html)

	client := sendgrid.NewSendClient(cfg.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email via SendGrid: %v", err)
		return err
	}
	if resp.StatusCode >= 300 {
		log.Printf("SendGrid rejected email: %d %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("email delivery failed, code: %d", resp.StatusCode)
	}

	log.Println("Email sent successfully to", to)
	return nil
}

// getEmailTemplate wraps body content in the standard branded layout.
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.otp { text-align: center; color: #2E7D32; font-size: 40px; margin: 20px 0; letter-spacing: 6px; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #1A237E; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #1A237E; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>ADHYA COMPUTER</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Adhya Computer. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendEmailChangeOTP emails the 6-digit code for the email-change flow.
func SendEmailChangeOTP(email, otp string) error {
	subject := "Email Change Verification Code"
	body := fmt.Sprintf(`
		<p>Your One Time Password (OTP) for changing your account email is:</p>
		<h1 class="otp">%s</h1>
		<p>This code expires in 10 minutes. Do not share it with anyone.</p>
		<p>If you did not request this change, you can safely ignore this email.</p>
	`, otp)

	text := fmt.Sprintf("Your OTP for changing your account email is %s. It expires in 10 minutes.", otp)
	return SendEmail(email, subject, getEmailTemplate("Verify Your New Email", body), text)
}

// SendResetPasswordEmail emails the password-reset link.
func SendResetPasswordEmail(email, resetURL string) error {
	subject := "Reset Your Password"
	body := fmt.Sprintf(`
		<p>We received a request to reset the password for your account.</p>
		<p style="text-align:center;"><a class="btn" href="%s">Reset Password</a></p>
		<div class="info-box">This link is valid for 15 minutes. If the button does not work, copy this URL into your browser:<br>%s</div>
		<p>If you did not request a reset, no action is needed.</p>
	`, resetURL, resetURL)

	text := fmt.Sprintf("Reset your password using this link: %s", resetURL)
	return SendEmail(email, subject, getEmailTemplate("Password Reset", body), text)
}

// ExpiryDigestRow is one line of the daily policy expiry digest.
type ExpiryDigestRow struct {
	PolicyNumber string
	CustomerName string
	DaysLeft     int
}

// SendExpiryDigestEmail emails the owner a summary of policies expiring soon.
func SendExpiryDigestEmail(email string, rows []ExpiryDigestRow) error {
	subject := fmt.Sprintf("%d policies need attention", len(rows))

	list := ""
	for _, r := range rows {
		label := fmt.Sprintf("%d days left", r.DaysLeft)
		if r.DaysLeft == 0 {
			label = "Expiring Today"
		} else if r.DaysLeft < 0 {
			label = "Expired"
		}
		list += fmt.Sprintf("<li><strong>%s</strong> &mdash; %s (%s)</li>", r.PolicyNumber, r.CustomerName, label)
	}

	body := fmt.Sprintf(`
		<p>The following policies expire within the next %d days:</p>
		<ul>%s</ul>
		<p>Open the notification center to snooze or renew them.</p>
	`, ExpiringDays, list)

	text := fmt.Sprintf("%d policies expire within the next %d days.", len(rows), ExpiringDays)
	return SendEmail(email, subject, getEmailTemplate("Policy Expiry Digest", body), text)
}
