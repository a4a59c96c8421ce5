package email

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"net/url"
	texttemplate "text/template"
	"time"
)

const (
	Brand                = "yeonghwa"
	SenderName           = "yeonghwa Support"
	PasswordResetSubject = "Reset Your yeonghwa Password"
)

//go:embed templates
var templates embed.FS

var (
	passwordResetHTML = htmltemplate.Must(htmltemplate.ParseFS(templates, "templates/password_reset.html"))
	passwordResetText = texttemplate.Must(texttemplate.ParseFS(templates, "templates/password_reset.txt"))
)

type Message struct {
	Subject string
	Text    string
	HTML    string
}

type passwordResetParams struct {
	Brand    string
	ResetURL string
	Year     int
}

// RenderPasswordReset builds the password reset e-mail pointing to resetURL.
func RenderPasswordReset(resetURL url.URL, now time.Time) (msg Message, err error) {
	params := passwordResetParams{
		Brand:    Brand,
		ResetURL: resetURL.String(),
		Year:     now.Year(),
	}
	var text, html bytes.Buffer
	if err := passwordResetText.Execute(&text, params); err != nil {
		return msg, err
	}
	if err := passwordResetHTML.Execute(&html, params); err != nil {
		return msg, err
	}
	return Message{
		Subject: PasswordResetSubject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
