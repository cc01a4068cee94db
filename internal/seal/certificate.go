package seal

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

const (
	certMargin = 48.0
	labelWidth = 130.0
	rowHeight  = 18.0
	qrSize     = 120.0
)

// certificatePage appends the signing certificate after the document pages.
func (s *Sealer) certificatePage(surf *surface, in Input, pageCount int) error {
	pdf := surf.pdf
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: a4Width, Ht: a4Height})
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(certMargin, certMargin)
	pdf.CellFormat(a4Width-2*certMargin, 24, "Signing certificate", "B", 1, "L", false, 0, "")
	pdf.Ln(12)

	env := in.Envelope
	rows := [][2]string{
		{"Document", env.Title},
		{"Envelope", env.Key().String()},
		{"Recipient", fmt.Sprintf("%s <%s>", env.RecipientName, env.RecipientEmail)},
		{"Signed at (UTC)", in.ReceivedAt.UTC().Format(time.RFC3339)},
		{"IP address", orDash(in.IP)},
		{"User agent", orDash(in.UserAgent)},
		{"Document pages", strconv.Itoa(pageCount)},
		{"Template SHA-256", Digest(in.Template)},
	}

	for _, row := range rows {
		pdf.SetX(certMargin)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelWidth, rowHeight, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(a4Width-2*certMargin-labelWidth, rowHeight, surf.tr(row[1]), "", "L", false)
	}

	if in.VerifyURL != "" {
		png, err := qrcode.Encode(in.VerifyURL, qrcode.Medium, 256)
		if err != nil {
			return fmt.Errorf("seal: encode qr: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		name := "certificate-qr-" + strconv.FormatUint(imageSeq.Add(1), 10)
		_ = pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))

		y := pdf.GetY() + 16
		pdf.ImageOptions(name, certMargin, y, qrSize, qrSize, false, opts, 0, "")
		pdf.SetXY(certMargin+qrSize+12, y+qrSize/2-rowHeight/2)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(a4Width-3*certMargin-qrSize, 12, surf.tr(in.VerifyURL), "", "L", false)
	}

	if !pdf.Ok() {
		return fmt.Errorf("seal: certificate page: %w", pdf.Error())
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
