package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/config"
	"github.com/city-tourism-backend/internal/pkg/errors"
)

// Client отправляет транзакционные письма через SMTP, рендеря
// HTML-шаблоны из настроенных директорий.
type Client struct {
	cfg    *config.SMTPConfig
	logger *zap.Logger
}

func NewClient(cfg *config.SMTPConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
	}
}

// Send renders the named template against data and dispatches it.
// Template-not-found and transport failures surface as 400-class
// AppErrors per the error taxonomy.
func (c *Client) Send(ctx context.Context, to, templateName string, data map[string]interface{}, subject string) error {
	if subject == "" {
		subject = "Notification"
	}

	html, err := c.render(templateName, data)
	if err != nil {
		return err
	}

	if err := c.dispatch(to, subject, html); err != nil {
		c.logger.Error("Failed to send email",
			zap.String("to", to),
			zap.String("template", templateName),
			zap.Error(err),
		)
		return errors.ErrEmailSendFailed.WithMessage("Failed to send email: %v", err)
	}

	c.logger.Info("Email sent",
		zap.String("to", to),
		zap.String("template", templateName),
	)
	return nil
}

// render resolves templateName against the candidate directories in
// order and executes the first match.
func (c *Client) render(templateName string, data map[string]interface{}) (string, error) {
	// Template names are caller-supplied; never let them escape the
	// configured directories.
	if templateName == "" || strings.ContainsAny(templateName, `/\`) || strings.Contains(templateName, "..") {
		return "", errors.ErrTemplateNotFound.WithMessage("Invalid template name %q", templateName)
	}

	var tmplPath string
	for _, dir := range c.cfg.TemplateDirs {
		candidate := filepath.Join(dir, templateName+".html")
		if _, err := os.Stat(candidate); err == nil {
			tmplPath = candidate
			break
		}
	}
	if tmplPath == "" {
		return "", errors.ErrTemplateNotFound.WithMessage("Template %q not found", templateName)
	}

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return "", errors.ErrTemplateNotFound.WithMessage("Failed to parse template %q: %v", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.ErrTemplateNotFound.WithMessage("Failed to render template %q: %v", templateName, err)
	}

	return buf.String(), nil
}

func (c *Client) dispatch(to, subject, html string) error {
	from := c.cfg.From
	if from == "" {
		from = c.cfg.User
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(html)

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)

	var auth smtp.Auth
	if c.cfg.User != "" {
		auth = smtp.PlainAuth("", c.cfg.User, c.cfg.Password, c.cfg.Host)
	}

	if c.cfg.StartTLS {
		return c.dispatchStartTLS(addr, auth, from, to, msg.Bytes())
	}

	// net/smtp upgrades to STARTTLS automatically when the server
	// advertises it.
	return smtp.SendMail(addr, auth, from, []string{to}, msg.Bytes())
}

// dispatchStartTLS requires the TLS upgrade instead of treating it as
// optional: delivery fails when the server does not advertise STARTTLS.
func (c *Client) dispatchStartTLS(addr string, auth smtp.Auth, from, to string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); !ok {
		return fmt.Errorf("smtp server %s does not support STARTTLS", addr)
	}
	if err := client.StartTLS(&tls.Config{ServerName: c.cfg.Host}); err != nil {
		return err
	}
	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}
