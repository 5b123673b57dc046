package notify

import (
	"bytes"
	"context"
	"log/slog"
	"text/template"

	"court-reservations/internal/usecase/shared"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes rendered messages to the log instead of sending them.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "mail", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}

const (
	SubjectReservationCreated   = "New Reservation Confirmation"
	SubjectReservationCancelled = "Reservation Cancelled"
	SubjectCodeIssued           = "Email Verification"
	SubjectCodeResent           = "Email Verification - New Code"
)

var (
	reservationCreatedTmpl = template.Must(template.New("created").Parse(
		`Hi {{.Username}},

Your reservation is confirmed.

Court: {{.CourtName}}{{if .LocationName}} ({{.LocationName}}){{end}}
Date: {{.Date}}
Time: {{.StartTime}} - {{.EndTime}}
`))

	reservationCancelledTmpl = template.Must(template.New("cancelled").Parse(
		`Hi {{.Username}},

Your reservation has been cancelled.

Court: {{.CourtName}}{{if .LocationName}} ({{.LocationName}}){{end}}
Date: {{.Date}}
Time: {{.StartTime}} - {{.EndTime}}
`))

	codeIssuedTmpl = template.Must(template.New("issued").Parse(
		`Your verification code is {{.Code}}.
It expires at {{.ExpiresAt.Format "15:04"}}.
`))

	codeResentTmpl = template.Must(template.New("resent").Parse(
		`Here is your new verification code: {{.Code}}.
It expires at {{.ExpiresAt.Format "15:04"}}. Earlier codes no longer work.
`))
)

func RenderReservation(subject string, ev shared.ReservationEvent) (Message, error) {
	tmpl := reservationCreatedTmpl
	if subject == SubjectReservationCancelled {
		tmpl = reservationCancelledTmpl
	}
	return render(ev.Email, subject, tmpl, ev)
}

func RenderCode(subject string, ev shared.CodeEvent) (Message, error) {
	tmpl := codeIssuedTmpl
	if subject == SubjectCodeResent {
		tmpl = codeResentTmpl
	}
	return render(ev.Email, subject, tmpl, ev)
}

func render(to, subject string, tmpl *template.Template, data any) (Message, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: subject, Body: buf.String()}, nil
}
