package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strconv"

	"event_ticketing/config"
	"event_ticketing/model"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

const confirmationTemplate = `
<h2>Booking Confirmation</h2>
<p>Dear {{.Name}},</p>
<p>Your booking has been confirmed!</p>
<h3>Event Details:</h3>
<ul>
  <li><strong>Booking Code:</strong> {{.Code}}</li>
  <li><strong>Event:</strong> {{.Title}}</li>
  <li><strong>Date:</strong> {{.Date}}</li>
  <li><strong>Time:</strong> {{.Time}}</li>
  <li><strong>Venue:</strong> {{.Venue}}</li>
  <li><strong>Tickets:</strong> {{.Tickets}}</li>
  <li><strong>Total Amount:</strong> ${{.Total}}</li>
</ul>
<p>Thank you for your booking!</p>
`

const reminderTemplate = `
<h2>Event Reminder</h2>
<p>Dear {{.Name}},</p>
<p>This is a reminder about your upcoming event!</p>
<h3>Event Details:</h3>
<ul>
  <li><strong>Event:</strong> {{.Title}}</li>
  <li><strong>Date:</strong> {{.Date}}</li>
  <li><strong>Time:</strong> {{.Time}}</li>
  <li><strong>Venue:</strong> {{.Venue}}</li>
  <li><strong>Tickets:</strong> {{.Tickets}}</li>
</ul>
<p>We look forward to seeing you there!</p>
`

var (
	confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationTemplate))
	reminderTmpl     = template.Must(template.New("reminder").Parse(reminderTemplate))
)

type bookingEmailData struct {
	Name    string
	Code    string
	Title   string
	Date    string
	Time    string
	Venue   string
	Tickets int
	Total   string
}

// Mailer sends all outbound mail. Booking emails go out asynchronously and
// never propagate failures into the calling state transition.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer() *Mailer {
	port, _ := strconv.Atoi(config.ConfigDefault("SMTP_PORT", "587"))
	return &Mailer{
		host:     config.Config("SMTP_HOST"),
		port:     port,
		username: config.Config("SMTP_USERNAME"),
		password: config.Config("SMTP_PASSWORD"),
		from:     config.Config("SMTP_FROM"),
	}
}

func (m *Mailer) sendHTML(to, subject, body string) {
	go func() {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/html", body)

		d := gomail.NewDialer(m.host, m.port, m.username, m.password)
		if err := d.DialAndSend(msg); err != nil {
			log.Printf("failed to send email %q to %s: %v", subject, to, err)
		}
	}()
}

func bookingData(booking *model.Booking) (bookingEmailData, bool) {
	if booking == nil || booking.User == nil || booking.Event == nil {
		return bookingEmailData{}, false
	}
	return bookingEmailData{
		Name:    booking.User.Name,
		Code:    booking.PublicCode,
		Title:   booking.Event.Title,
		Date:    booking.Event.Date.Format("January 2, 2006"),
		Time:    booking.Event.Time,
		Venue:   fmt.Sprintf("%s, %s", booking.Event.Venue.Name, booking.Event.Venue.City),
		Tickets: booking.Tickets,
		Total:   strconv.FormatFloat(booking.TotalAmount, 'f', 2, 64),
	}, true
}

func (m *Mailer) SendBookingConfirmation(booking *model.Booking) {
	data, ok := bookingData(booking)
	if !ok {
		log.Printf("confirmation email skipped: booking %v missing user or event", bookingID(booking))
		return
	}
	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, data); err != nil {
		log.Printf("failed to render confirmation email: %v", err)
		return
	}
	m.sendHTML(booking.User.Email, "Booking Confirmation - "+data.Title, body.String())
}

func (m *Mailer) SendEventReminder(booking *model.Booking) {
	data, ok := bookingData(booking)
	if !ok {
		log.Printf("reminder email skipped: booking %v missing user or event", bookingID(booking))
		return
	}
	var body bytes.Buffer
	if err := reminderTmpl.Execute(&body, data); err != nil {
		log.Printf("failed to render reminder email: %v", err)
		return
	}
	m.sendHTML(booking.User.Email, "Event Reminder - "+data.Title, body.String())
}

// SendPasswordReset mails the reset link as plain text.
func (m *Mailer) SendPasswordReset(to, link string) {
	go func() {
		e := email.NewEmail()
		e.From = m.from
		e.To = []string{to}
		e.Subject = "Password Reset"
		e.Text = []byte("Click the link to reset your password: " + link)

		addr := fmt.Sprintf("%s:%d", m.host, m.port)
		if err := e.Send(addr, smtp.PlainAuth("", m.username, m.password, m.host)); err != nil {
			log.Printf("failed to send password reset email to %s: %v", to, err)
		}
	}()
}

func bookingID(booking *model.Booking) uint {
	if booking == nil {
		return 0
	}
	return booking.ID
}
