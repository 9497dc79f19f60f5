// Package mail delivers notification messages over SMTP.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"sort"
	"strconv"
	"strings"

	"petfind/internal/core/domain"
)

// ErrNoRecipient is returned for messages without an address
var ErrNoRecipient = errors.New("message has no recipient")

// Config holds SMTP transport settings
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender renders a message as plain text and hands it to an SMTP relay
type SMTPSender struct {
	cfg  Config
	addr string
	auth smtp.Auth
	send sendFunc
}

// NewSMTPSender creates a sender for the relay in cfg
func NewSMTPSender(cfg Config) *SMTPSender {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}
	return &SMTPSender{
		cfg:  cfg,
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		auth: auth,
		send: smtp.SendMail,
	}
}

// Send delivers msg. net/smtp has no cancellation, so ctx is only checked
// before the dial.
func (s *SMTPSender) Send(ctx context.Context, msg domain.Message) error {
	to := headerSafe(msg.Email)
	if to == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.send(s.addr, s.auth, s.cfg.From, []string{to}, render(s.cfg.From, to, msg)); err != nil {
		return fmt.Errorf("smtp send %s: %w", msg.Template, err)
	}
	return nil
}

// render builds the RFC 5322 message with a plain text body listing the
// template context
func render(from, to string, msg domain.Message) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", headerSafe(from))
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", headerSafe(msg.Subject))
	fmt.Fprintf(&b, "X-PetFind-Template: %s\r\n", headerSafe(msg.Template))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")

	b.WriteString(headerSafe(msg.Subject))
	b.WriteString("\r\n\r\n")

	keys := make([]string, 0, len(msg.Context))
	for k := range msg.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\r\n", k, msg.Context[k])
	}
	return b.Bytes()
}

// headerSafe drops line breaks so values cannot inject headers
func headerSafe(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", "", "\n", "").Replace(s))
}
