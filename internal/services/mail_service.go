package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/mail"
	"net/smtp"
	"net/url"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/sirupsen/logrus"

	"runmind/pkg/config"
	"runmind/pkg/log"
)

// IMailService sends the link notifications and password reset links.
// Implementations must be safe to call from request handlers.
type IMailService interface {
	SendLinkRequested(to, athleteName string) error
	SendLinkResponded(to, coachName, status string) error
	SendPasswordReset(to, token string) error
}

type EmailData struct {
	Title     string
	Intro     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const htmlTemplate = `<!doctype html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="margin:0;padding:32px;background:#f4f6f8;font-family:Helvetica,Arial,sans-serif;color:#1f2933">
  <div style="max-width:560px;margin:0 auto;background:#fff;border-radius:12px;padding:32px">
    <div style="font-weight:700;color:#ef5b25;letter-spacing:1px">{{.AppName}}</div>
    <h1 style="font-size:22px">{{.Title}}</h1>
    <p style="line-height:1.6">{{.Intro}}</p>
    {{if .ButtonURL}}<p><a href="{{.ButtonURL}}" style="display:inline-block;padding:12px 24px;background:#ef5b25;color:#fff;border-radius:8px;text-decoration:none">{{.ButtonTxt}}</a></p>{{end}}
    <p style="color:#7b8794;font-size:12px">&copy; {{.Year}} {{.AppName}}</p>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}
{{if .ButtonURL}}
{{.ButtonTxt}}: {{.ButtonURL}}
{{end}}
-- {{.AppName}} (c) {{.Year}}
`

type smtpMailService struct {
	cfg        config.SMTPConfig
	appBaseURL string
	htmlTpl    *template.Template
	textTpl    *texttemplate.Template
}

func NewSMTPMailService(cfg config.SMTPConfig, appBaseURL string) IMailService {
	return &smtpMailService{
		cfg:        cfg,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		htmlTpl:    template.Must(template.New("html").Parse(htmlTemplate)),
		textTpl:    texttemplate.Must(texttemplate.New("text").Parse(plainTextTemplate)),
	}
}

func (s *smtpMailService) SendLinkRequested(to, athleteName string) error {
	return s.sendTemplated(to, EmailData{
		Title:     "New athlete request",
		Intro:     fmt.Sprintf("%s would like you to coach them on RunMind.", athleteName),
		ButtonURL: s.appBaseURL + "/coach/requests",
		ButtonTxt: "Review request",
	})
}

func (s *smtpMailService) SendLinkResponded(to, coachName, status string) error {
	return s.sendTemplated(to, EmailData{
		Title:     "Your coach request was " + status,
		Intro:     fmt.Sprintf("%s has %s your coaching request.", coachName, status),
		ButtonURL: s.appBaseURL + "/coaches",
		ButtonTxt: "Open RunMind",
	})
}

func (s *smtpMailService) SendPasswordReset(to, token string) error {
	return s.sendTemplated(to, EmailData{
		Title:     "Reset your password",
		Intro:     "We received a request to reset your RunMind password. If you did not ask for it, ignore this email.",
		ButtonURL: s.appBaseURL + "/reset-password?token=" + url.QueryEscape(token),
		ButtonTxt: "Reset password",
	})
}

func (s *smtpMailService) sendTemplated(to string, data EmailData) error {
	data.AppName = s.cfg.FromName
	data.Year = time.Now().Year()

	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return err
	}
	return s.send(to, data.Title, hb.String(), tb.String())
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	msg := buildMultipartMessage(
		(&mail.Address{Name: s.cfg.FromName, Address: s.cfg.From}).String(),
		to, subject, htmlBody, textBody,
	)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	var err error
	if s.cfg.UseSSL {
		conn, err = tls.Dial("tcp", addr, tlsCfg)
	} else {
		conn, err = (&net.Dialer{Timeout: 10 * time.Second}).Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		ok, _ := c.Extension("STARTTLS")
		if !ok {
			return fmt.Errorf("smtp server %s does not support STARTTLS", s.cfg.Host)
		}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func buildMultipartMessage(from, to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("runmind_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", from)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n\r\n", boundary, textBody)
	write("--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n\r\n", boundary, htmlBody)
	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

// asyncMailService sends on a goroutine so request latency does not depend on
// the SMTP server. Failures are logged and otherwise dropped.
type asyncMailService struct {
	inner IMailService
}

func NewAsyncMailService(inner IMailService) IMailService {
	return &asyncMailService{inner: inner}
}

func (a *asyncMailService) SendLinkRequested(to, athleteName string) error {
	go a.logFailure("link_requested", to, func() error { return a.inner.SendLinkRequested(to, athleteName) })
	return nil
}

func (a *asyncMailService) SendLinkResponded(to, coachName, status string) error {
	go a.logFailure("link_responded", to, func() error { return a.inner.SendLinkResponded(to, coachName, status) })
	return nil
}

func (a *asyncMailService) SendPasswordReset(to, token string) error {
	go a.logFailure("password_reset", to, func() error { return a.inner.SendPasswordReset(to, token) })
	return nil
}

func (a *asyncMailService) logFailure(kind, to string, send func() error) {
	if err := send(); err != nil {
		log.Log.WithFields(logrus.Fields{"mail": kind, "to": to}).WithError(err).Warn("failed to send email")
	}
}

// logMailService is used when SMTP is not configured.
type logMailService struct{}

func NewLogMailService() IMailService {
	return logMailService{}
}

func (logMailService) SendLinkRequested(to, athleteName string) error {
	log.Log.WithFields(logrus.Fields{"to": to, "athlete": athleteName}).Info("smtp disabled, skipping link request email")
	return nil
}

func (logMailService) SendLinkResponded(to, coachName, status string) error {
	log.Log.WithFields(logrus.Fields{"to": to, "coach": coachName, "status": status}).Info("smtp disabled, skipping link response email")
	return nil
}

func (logMailService) SendPasswordReset(to, _ string) error {
	log.Log.WithField("to", to).Info("smtp disabled, skipping password reset email")
	return nil
}
