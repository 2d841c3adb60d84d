package email

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/barakadvert/storefront/internal/domain"
)

// Business is the fixed contact block printed in customer-facing mail.
type Business struct {
	Name     string
	Email    string
	Phone    string
	WhatsApp string
}

func DefaultBusiness() Business {
	return Business{Name: "Barak Advert", Email: "info@barakadvert.com", Phone: "+251 911 234 567", WhatsApp: "Available"}
}

type Message struct {
	// IdempotencyKey is forwarded to mailers that support it.
	IdempotencyKey string
	To             []string
	ReplyTo        string
	Subject        string
	HTML           string
	Attachments    []domain.Attachment
}

var tmpl = template.Must(template.New("mail").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
}).Parse(`
{{define "quote_notification"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h1 style="color: #FF6A00;">New Quote Request{{if .Q.Urgent}} - URGENT{{end}}</h1>
<h2>Customer Information</h2>
<table>
<tr><td><b>Name:</b></td><td>{{.Q.Name}}</td></tr>
<tr><td><b>Email:</b></td><td><a href="mailto:{{.Q.Email}}">{{.Q.Email}}</a></td></tr>
<tr><td><b>Phone:</b></td><td><a href="tel:{{.Q.Phone}}">{{.Q.Phone}}</a></td></tr>
{{if .Q.Company}}<tr><td><b>Company:</b></td><td>{{.Q.Company}}</td></tr>{{end}}
</table>
<h2>Project Details</h2>
<table>
<tr><td><b>Service:</b></td><td>{{.Q.Service}}</td></tr>
<tr><td><b>Details:</b></td><td>{{.Q.ProjectDetails}}</td></tr>
{{if .Q.Deadline}}<tr><td><b>Deadline:</b></td><td>{{.Q.Deadline}}</td></tr>{{end}}
<tr><td><b>Urgent:</b></td><td>{{if .Q.Urgent}}Yes{{else}}No{{end}}</td></tr>
<tr><td><b>Estimated Cost:</b></td><td style="color: #FF6A00;">{{money .Q.EstimatedCost}}</td></tr>
</table>
<p style="font-size: 12px; color: #666;">This is an automated message from your {{.B.Name}} website quote form. Reply directly to this email to contact the customer.</p>
</div>{{end}}
{{define "quote_confirmation"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h1 style="color: #FF6A00;">Thank You for Your Quote Request!</h1>
<p>Dear {{.Q.Name}},</p>
<p>We have received your quote request for <strong>{{.Q.Service}}</strong>. Our team will review your requirements and get back to you shortly.</p>
{{if .Q.Urgent}}<div style="border-left: 4px solid #FF6A00; padding: 15px;"><p><b>Urgent Request Noted</b></p><p>We understand your request is urgent and will prioritize it accordingly.</p></div>{{end}}
<h2>Your Request Summary</h2>
<table>
<tr><td><b>Service:</b></td><td>{{.Q.Service}}</td></tr>
<tr><td><b>Estimated Cost:</b></td><td style="color: #FF6A00;">{{money .Q.EstimatedCost}}</td></tr>
</table>
<p style="font-size: 12px; color: #666;">{{.Disclaimer}}</p>
{{template "contact_block" .B}}
</div>{{end}}
{{define "generic_notification"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h1 style="color: #FF6A00;">{{.Title}}</h1>
<table>
{{range .Rows}}<tr><td><b>{{.Key}}:</b></td><td>{{.Value}}</td></tr>
{{end}}</table>
</div>{{end}}
{{define "generic_confirmation"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h1 style="color: #FF6A00;">We received your {{.Title}}</h1>
<p>Thank you for contacting {{.B.Name}}. Our team will get back to you shortly.</p>
{{template "contact_block" .B}}
</div>{{end}}
{{define "contact_block"}}<div style="margin-top: 30px; padding: 20px; background-color: #FF6A00; color: white; text-align: center;">
<h3>Contact Us</h3>
<p>Email: {{.Email}}</p>
<p>Phone: {{.Phone}}</p>
<p>WhatsApp: {{.WhatsApp}}</p>
</div>
<p style="text-align: center;">Best regards,<br><strong>{{.Name}} Team</strong></p>{{end}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func QuoteNotificationSubject(q domain.QuoteRequest) string {
	s := "New Quote Request - " + q.Service
	if q.Urgent {
		s += " (URGENT)"
	}
	return s
}

func QuoteConfirmationSubject(b Business) string {
	return "Quote Request Received - " + b.Name
}

// QuoteMessages renders the business notification and the customer confirmation.
func QuoteMessages(q domain.QuoteRequest, b Business, inbox string) (notification, confirmation Message, err error) {
	data := map[string]any{"Q": q, "B": b, "Disclaimer": domain.EstimateDisclaimer}
	html, err := render("quote_notification", data)
	if err != nil {
		return Message{}, Message{}, err
	}
	notification = Message{To: []string{inbox}, ReplyTo: q.Email, Subject: QuoteNotificationSubject(q), HTML: html}
	html, err = render("quote_confirmation", data)
	if err != nil {
		return Message{}, Message{}, err
	}
	confirmation = Message{To: []string{q.Email}, Subject: QuoteConfirmationSubject(b), HTML: html}
	return notification, confirmation, nil
}

type row struct {
	Key   string
	Value any
}

// GenericNotification renders any body as a key/value table, keys sorted.
func GenericNotification(p domain.EmailPayload, to string) (Message, error) {
	keys := make([]string, 0, len(p.Body))
	for k := range p.Body {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([]row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, row{Key: k, Value: p.Body[k]})
	}
	title := p.Subject
	if title == "" {
		title = TypeTag(p.Category)
	}
	html, err := render("generic_notification", map[string]any{"Title": title, "Rows": rows})
	if err != nil {
		return Message{}, err
	}
	return Message{To: []string{to}, Subject: title, HTML: html, Attachments: p.Attachments}, nil
}

func GenericConfirmation(p domain.EmailPayload, b Business, to string) (Message, error) {
	title := TypeTag(p.Category)
	html, err := render("generic_confirmation", map[string]any{"Title": title, "B": b})
	if err != nil {
		return Message{}, err
	}
	return Message{To: []string{to}, Subject: title + " Received - " + b.Name, HTML: html}, nil
}
