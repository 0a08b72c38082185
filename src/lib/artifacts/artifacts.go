package artifacts

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cems/src/config"

	"github.com/go-pdf/fpdf"
	"github.com/yeqown/go-qrcode"
)

// Every generator here is best-effort: a nil return means the artifact
// could not be produced and the caller proceeds without it.

func ticketDir() (string, error) {
	dir := config.TicketDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// MakeCode renders the ticket token as a scannable code image.
func MakeCode(token string) *string {
	dir, err := ticketDir()
	if err != nil {
		log.Printf("[artifacts] Error preparing ticket dir: %s\n", err.Error())
		return nil
	}
	qrc, err := qrcode.New(token)
	if err != nil {
		log.Printf("[artifacts] Error generating code for %s: %s\n", token, err.Error())
		return nil
	}
	fpath := filepath.Join(dir, fmt.Sprintf("ticket_%s.jpeg", token))
	if err := qrc.Save(fpath); err != nil {
		log.Printf("[artifacts] Error saving code for %s: %s\n", token, err.Error())
		return nil
	}
	return &fpath
}

type DocumentInfo struct {
	EventTitle    string
	VenueName     string
	VenueLocation string
	Schedule      string
	Organizer     string
	Attendee      string
}

// MakeDocument renders a printable ticket. The code image is embedded
// when available and skipped when codePath is nil.
func MakeDocument(token string, info DocumentInfo, codePath *string) *string {
	dir, err := ticketDir()
	if err != nil {
		log.Printf("[artifacts] Error preparing ticket dir: %s\n", err.Error())
		return nil
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Event Ticket", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, info.EventTitle, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Venue", info.VenueName},
		{"Location", info.VenueLocation},
		{"Schedule", info.Schedule},
		{"Organizer", info.Organizer},
		{"Attendee", info.Attendee},
		{"Ticket ID", token},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.CellFormat(35, 8, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}
	if codePath != nil {
		pdf.Ln(6)
		opts := fpdf.ImageOptions{ImageType: "JPEG"}
		pdf.ImageOptions(*codePath, 75, pdf.GetY(), 60, 60, false, opts, 0, "")
	}
	fpath := filepath.Join(dir, fmt.Sprintf("ticket_%s.pdf", token))
	if err := pdf.OutputFileAndClose(fpath); err != nil {
		log.Printf("[artifacts] Error saving document for %s: %s\n", token, err.Error())
		return nil
	}
	return &fpath
}
