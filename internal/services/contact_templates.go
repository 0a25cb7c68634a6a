package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// brasilia is UTC-3; Brazil dropped daylight saving in 2019.
var brasilia = time.FixedZone("BRT", -3*60*60)

// ContactNotice is the data rendered into contact notifications.
type ContactNotice struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Date    time.Time
}

func (n ContactNotice) formattedDate() string {
	return n.Date.In(brasilia).Format("02/01/2006 15:04:05")
}

var contactEmailTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Novo contato no site</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 8px 8px 0 0;">
        <h1 style="margin: 0;">Novo Contato no Site</h1>
    </div>
    <div style="background: #f9f9f9; padding: 20px; border-radius: 0 0 8px 8px;">
        <p><strong>Nome:</strong><br>{{.Name}}</p>
        <p><strong>E-mail:</strong><br>{{.Email}}</p>
        {{- if .Phone}}
        <p><strong>Telefone:</strong><br>{{.Phone}}</p>
        {{- end}}
        <p><strong>Mensagem:</strong></p>
        <div style="padding: 15px; background: white; border-left: 4px solid #667eea;">{{range $i, $line := .Lines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</div>
        <p><strong>Data/Hora:</strong><br>{{.Date}}</p>
    </div>
</body>
</html>
`))

// FormatContactEmail renders the owner notification. Every field is HTML
// escaped; message newlines become <br>.
func FormatContactEmail(n ContactNotice) (subject, body string, err error) {
	var buf bytes.Buffer
	data := map[string]interface{}{
		"Name":  n.Name,
		"Email": n.Email,
		"Phone": n.Phone,
		"Lines": strings.Split(n.Message, "\n"),
		"Date":  n.formattedDate(),
	}
	if err := contactEmailTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return "Novo contato no site - " + n.Name, buf.String(), nil
}

// FormatContactMessage renders the chat-app notification.
func FormatContactMessage(n ContactNotice) string {
	var b strings.Builder
	b.WriteString("🔔 *Novo contato no site*\n\n")
	fmt.Fprintf(&b, "*Nome:* %s\n", n.Name)
	fmt.Fprintf(&b, "*Email:* %s\n", n.Email)
	if n.Phone != "" {
		fmt.Fprintf(&b, "*Telefone:* %s\n", n.Phone)
	}
	fmt.Fprintf(&b, "*Data/Hora:* %s\n\n", n.Date.In(brasilia).Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "*Mensagem:*\n%s", n.Message)
	return b.String()
}
