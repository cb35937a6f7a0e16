package mail

import (
	"fmt"
	"html/template"
	"strings"
)

var resetEmailTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
body { font-family: -apple-system, 'Segoe UI', sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 24px; }
.button { display: inline-block; padding: 12px 24px; background-color: #e8590c; color: #ffffff; text-decoration: none; border-radius: 4px; font-weight: bold; }
.footer { margin-top: 24px; font-size: 0.8em; color: #777; }
</style>
</head>
<body>
<div class="container">
<h2>Reset your {{.AppName}} password</h2>
<p>Hi {{.Name}},</p>
<p>We received a request to reset the password for your account. If this wasn't you, you can safely ignore this email.</p>
<p><a href="{{.ResetURL}}" class="button">Reset password</a></p>
<p>Or paste this link into your browser:</p>
<p>{{.ResetURL}}</p>
<p>This link expires in one hour and can only be used once.</p>
<div class="footer">
<p>This message was sent automatically. Please don't reply.</p>
</div>
</div>
</body>
</html>
`))

// ResetEmailData carries the values rendered into the reset email.
type ResetEmailData struct {
	AppName  string
	Name     string
	ResetURL string
}

// BuildResetMessage renders the password reset email for a recipient.
func BuildResetMessage(to string, data ResetEmailData) (Message, error) {
	var html strings.Builder
	if err := resetEmailTemplate.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render reset email: %w", err)
	}

	text := fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your %s password. "+
			"Open the link below to choose a new one:\n\n%s\n\n"+
			"This link expires in one hour and can only be used once. "+
			"If you didn't request this, ignore this email.\n",
		data.Name, data.AppName, data.ResetURL,
	)

	return Message{
		To:       to,
		Subject:  fmt.Sprintf("Reset your %s password", data.AppName),
		HTMLBody: html.String(),
		TextBody: text,
	}, nil
}
