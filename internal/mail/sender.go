package mail

import (
	"fmt"
	"net/smtp"

	"eventify/internal/config"
	"eventify/internal/logger"
)

// Sender delivers booking confirmation emails over SMTP.
type Sender struct {
	cfg config.MailConfig
	log *logger.Logger
}

func NewSender(cfg config.MailConfig, log *logger.Logger) *Sender {
	return &Sender{cfg: cfg, log: log}
}

// SendBookingConfirmation sends one HTML confirmation email. Errors are
// returned to the caller; whether they matter is the caller's problem (the
// queue path records them in the audit log and moves on).
func (s *Sender) SendBookingConfirmation(toEmail string, bookingID int64) error {
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("smtp configuration is missing")
	}

	message := []byte(fmt.Sprintf(
		"Subject: 🎟 Your Eventify Booking is Confirmed\r\n"+
			"MIME-version: 1.0;\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\";\r\n\r\n"+
			`<div style="font-family: Arial, sans-serif; max-width: 500px; margin: auto; border: 2px dashed #FF6600; border-radius: 10px; padding: 20px; background-color: #fff9f2;">
				<div style="text-align: center;">
					<h2 style="color: #FF6600;">🎟 Eventify Booking Confirmation</h2>
					<p style="font-size: 16px; color: #555;">Dear User,</p>
					<p style="font-size: 16px; color: #555;">Your booking is confirmed:</p>
					<div style="font-size: 32px; font-weight: bold; color: #000; background-color: #FFE0CC; padding: 10px; display: inline-block; border-radius: 8px; letter-spacing: 4px;">
						#%d
					</div>
					<p style="font-size: 14px; color: #888; margin-top: 15px;">
						See you at the event!<br>Best Regards,<br>The Eventify Team
					</p>
				</div>
			</div>`, bookingID))

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{toEmail}, message); err != nil {
		s.log.Error("MAIL", fmt.Sprintf("Failed to send confirmation for booking %d to %s: %v", bookingID, toEmail, err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.log.LogMail("SENT", fmt.Sprintf("Confirmation for booking %d sent to %s", bookingID, toEmail))
	return nil
}
