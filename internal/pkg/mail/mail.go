package mail

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/triponation/core/internal/config"
)

// Message is a single email to send.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// OTPSender delivers one-time verification codes.
type OTPSender interface {
	SendOTP(to, code string) error
}

// Sender sends emails via SMTP. When mail is disabled in config, Send is a
// no-op so signup flows keep working in development.
type Sender struct {
	cfg config.MailConfig
}

func New(cfg config.MailConfig) *Sender {
	return &Sender{cfg: cfg}
}

// Send dispatches an email over SMTP.
func (s *Sender) Send(msg Message) error {
	if !s.cfg.Enable {
		return nil
	}

	host := s.cfg.Host
	port := s.cfg.Port
	if port == 0 {
		port = 587
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}

	var body bytes.Buffer
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString(fmt.Sprintf("From: %s\r\n", from))
	body.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ", ")))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	body.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, host)
	return smtp.SendMail(addr, auth, from, msg.To, body.Bytes())
}

// SendOTP sends the signup verification code.
func (s *Sender) SendOTP(to, code string) error {
	html := fmt.Sprintf(`<h2>OTP Verification</h2>
<p>Your OTP is: <b>%s</b></p>
<p>This OTP will expire in 5 minutes.</p>`, code)

	return s.Send(Message{
		To:      []string{to},
		Subject: "Your OTP for TripONation Signup",
		HTML:    html,
	})
}
