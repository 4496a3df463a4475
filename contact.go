package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/gamedev-portfolio/internal/config"
)

var errSMTPNotConfigured = errors.New("SMTP credentials not configured")

// contactMessage is a validated contact form submission.
type contactMessage struct {
	Name    string
	Email   string
	Message string
}

type mailer interface {
	Send(msg contactMessage) error
}

type smtpMailer struct {
	cfg config.SMTP
	to  string
	// send is smtp.SendMail outside tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newSMTPMailer(cfg config.SMTP, to string) *smtpMailer {
	return &smtpMailer{cfg: cfg, to: to, send: smtp.SendMail}
}

func (m *smtpMailer) Send(msg contactMessage) error {
	if !m.cfg.Configured() {
		return errSMTPNotConfigured
	}

	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Message)

	raw := []byte("To: " + m.to + "\r\n" +
		"Subject: " + fmt.Sprintf("Portfolio Contact: %s", msg.Name) + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + msg.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.to}, raw); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// parseContact trims and validates the form. Header fields must be single
// line so a submission cannot inject extra headers.
func parseContact(name, email, message string) (contactMessage, error) {
	msg := contactMessage{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return contactMessage{}, errors.New("please fill in your name, email and message")
	}
	if strings.ContainsAny(msg.Name+msg.Email, "\r\n") {
		return contactMessage{}, errors.New("name and email must be a single line")
	}
	addr, err := mail.ParseAddress(msg.Email)
	if err != nil || addr.Address != msg.Email {
		return contactMessage{}, errors.New("please enter a valid email address")
	}
	return msg, nil
}

// HTMX contact form fragment
func (a *app) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{"title": "Contact Me"})
}

func (a *app) submitContact(c *gin.Context) {
	msg, err := parseContact(c.PostForm("fullName"), c.PostForm("email"), c.PostForm("message"))
	if err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": err.Error()})
		return
	}

	if err := a.mailer.Send(msg); err != nil {
		log.Printf("Error sending contact email: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	log.Printf("Contact email sent from %s", msg.Name)
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
