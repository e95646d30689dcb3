package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const baseLayout = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #222; max-width: 600px; margin: 0 auto;">
  <div style="padding: 24px; border: 1px solid #eee; border-radius: 8px;">
    <h2 style="margin-top: 0;">{{.Heading}}</h2>
    {{.Body}}
    <p style="color: #888; font-size: 12px; margin-top: 32px;">This email was sent by the portfolio website.</p>
  </div>
</body>
</html>`

var layoutTmpl = template.Must(template.New("base").Parse(baseLayout))

type layoutData struct {
	Heading string
	Body    template.HTML
}

func renderLayout(heading string, body template.HTML) (string, error) {
	var buf bytes.Buffer
	if err := layoutTmpl.Execute(&buf, layoutData{Heading: heading, Body: body}); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}

// ContactNotification is the admin-facing alert for a new contact submission
func ContactNotification(name, email, subject, message string) (string, error) {
	body := template.HTML(fmt.Sprintf(
		`<p><b>From:</b> %s (%s)</p><p><b>Subject:</b> %s</p><p>%s</p>`,
		template.HTMLEscapeString(name),
		template.HTMLEscapeString(email),
		template.HTMLEscapeString(subject),
		template.HTMLEscapeString(message),
	))
	return renderLayout("New contact form submission", body)
}

// ContactConfirmation thanks the submitter and echoes their subject
func ContactConfirmation(name, subject string) (string, error) {
	body := template.HTML(fmt.Sprintf(
		`<p>Hi %s,</p><p>Thanks for reaching out about <b>%s</b>. I read every message and will get back to you soon.</p>`,
		template.HTMLEscapeString(name),
		template.HTMLEscapeString(subject),
	))
	return renderLayout("Thanks for getting in touch", body)
}

// WelcomeSubscriber greets a new (or returning) newsletter subscriber
func WelcomeSubscriber(firstName, unsubscribeURL string) (string, error) {
	greeting := "Hi there,"
	if firstName != "" {
		greeting = fmt.Sprintf("Hi %s,", template.HTMLEscapeString(firstName))
	}
	body := template.HTML(fmt.Sprintf(
		`<p>%s</p><p>You're subscribed to the newsletter. Expect occasional updates on new projects and articles.</p>
<p style="font-size: 12px; color: #888;">Not you? <a href="%s">Unsubscribe</a>.</p>`,
		greeting,
		template.HTMLEscapeString(unsubscribeURL),
	))
	return renderLayout("Welcome aboard", body)
}

// RegistrationConfirmation confirms an event registration
func RegistrationConfirmation(fullName, eventTitle, eventDate, confirmationCode string) (string, error) {
	body := template.HTML(fmt.Sprintf(
		`<p>Hi %s,</p><p>You're registered for <b>%s</b> on %s.</p><p>Confirmation code: <code>%s</code></p>`,
		template.HTMLEscapeString(fullName),
		template.HTMLEscapeString(eventTitle),
		template.HTMLEscapeString(eventDate),
		template.HTMLEscapeString(confirmationCode),
	))
	return renderLayout("Registration confirmed", body)
}
