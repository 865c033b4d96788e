package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendTrialStarted(toEmail string, trialDays int) error
	SendSubscriptionActivated(toEmail, planName string) error
	SendSubscriptionCancelled(toEmail string, accessUntil string) error
	SendPaymentFailed(toEmail, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderEmail, clientURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		clientURL:   clientURL,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] %q sent to %s\n", subject, toEmail)
	return nil
}

func (s *emailService) SendTrialStarted(toEmail string, trialDays int) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your trial has started!</h2>
			<p>You now have full access to all premium features for <b>%d days</b>.</p>
			<p>Explore payables, receivables, reports and more at <a href="%s">%s</a>.</p>
		</div>
	`, trialDays, s.clientURL, s.clientURL)

	return s.send(toEmail, "Your trial has started", body)
}

func (s *emailService) SendSubscriptionActivated(toEmail, planName string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Subscription active</h2>
			<p>Your <b>%s</b> plan is now active. Thank you for subscribing!</p>
			<p>Manage your subscription any time at <a href="%s">%s</a>.</p>
		</div>
	`, planName, s.clientURL, s.clientURL)

	return s.send(toEmail, "Your subscription is active", body)
}

func (s *emailService) SendSubscriptionCancelled(toEmail string, accessUntil string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Subscription cancelled</h2>
			<p>Your subscription has been cancelled. You keep full access until <b>%s</b>.</p>
			<p>Changed your mind? You can resubscribe at <a href="%s">%s</a>.</p>
		</div>
	`, accessUntil, s.clientURL, s.clientURL)

	return s.send(toEmail, "Your subscription was cancelled", body)
}

func (s *emailService) SendPaymentFailed(toEmail, reason string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment failed</h2>
			<p>We could not process your payment: %s</p>
			<p>Please review your payment details at <a href="%s">%s</a>.</p>
		</div>
	`, reason, s.clientURL, s.clientURL)

	return s.send(toEmail, "Payment failed", body)
}
