package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"log"
	"strings"
	texttemplate "text/template"
	"time"

	"payproof/internal/models"
)

// Message is a rendered notification, independent of how it is delivered.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// LoadLocation resolves an IANA zone name, falling back to UTC.
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("WARN: unknown time zone %q, using UTC", name)
		return time.UTC
	}
	return loc
}

// FormatTime renders t in Indonesian long form, e.g. "14 Oktober 2026 09:30 WIB".
func FormatTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	zone, _ := t.Zone()
	return fmt.Sprintf("%d %s %d %02d:%02d %s", t.Day(), months[t.Month()-1], t.Year(), t.Hour(), t.Minute(), zoneName(zone))
}

// Go reports Indonesian zones by offset abbreviation on some tzdata builds.
func zoneName(zone string) string {
	switch zone {
	case "+07":
		return "WIB"
	case "+08":
		return "WITA"
	case "+09":
		return "WIT"
	}
	return zone
}

type view struct {
	ID            uint
	Name          string
	PhoneNumber   string
	PaymentMethod string
	Reason        string
	ProofURL      string
	SubmittedAt   string
}

var htmlTmpl = htmltemplate.Must(htmltemplate.New("payment").Parse(`<h2>Bukti Pembayaran Baru #{{.ID}}</h2>
<table>
<tr><td>ID</td><td class="id">{{.ID}}</td></tr>
<tr><td>Nama</td><td class="name">{{.Name}}</td></tr>
<tr><td>No. HP</td><td class="phone">{{.PhoneNumber}}</td></tr>
<tr><td>Metode</td><td class="method">{{.PaymentMethod}}</td></tr>
<tr><td>Keterangan</td><td class="reason">{{.Reason}}</td></tr>
<tr><td>Waktu</td><td class="time">{{.SubmittedAt}}</td></tr>
</table>
<p><a class="proof" href="{{.ProofURL}}">Lihat bukti pembayaran</a></p>
`))

var textTmpl = texttemplate.Must(texttemplate.New("payment").Parse(`Bukti Pembayaran Baru #{{.ID}}
Nama: {{.Name}}
No. HP: {{.PhoneNumber}}
Metode: {{.PaymentMethod}}
Keterangan: {{.Reason}}
Waktu: {{.SubmittedAt}}
Bukti: {{.ProofURL}}
`))

// Render builds the notification for p. It performs no I/O.
func Render(p models.Payment, loc *time.Location) (Message, error) {
	v := view{
		ID:            p.ID,
		Name:          p.Name,
		PhoneNumber:   p.PhoneNumber,
		PaymentMethod: p.PaymentMethod,
		Reason:        p.Reason,
		ProofURL:      p.ProofURL,
		SubmittedAt:   FormatTime(p.CreatedAt, loc),
	}

	var htmlBuf, textBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, v); err != nil {
		return Message{}, fmt.Errorf("failed to render html: %w", err)
	}
	if err := textTmpl.Execute(&textBuf, v); err != nil {
		return Message{}, fmt.Errorf("failed to render text: %w", err)
	}

	return Message{
		Subject: fmt.Sprintf("Pembayaran baru #%d dari %s", p.ID, strings.TrimSpace(p.Name)),
		HTML:    htmlBuf.String(),
		Text:    textBuf.String(),
	}, nil
}
