package invoice

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// LineItem is one billed row of the invoice table.
type LineItem struct {
	Description string
	Quantity    int64
	UnitPrice   float64
	Total       float64
}

// Data is everything the renderer needs for one invoice. Total must equal
// the sum of the item totals; the renderer prints the figures it is given.
type Data struct {
	Number          string
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string // newline-separated
	Items           []LineItem
	Total           float64
	Date            string // dd/mm/yyyy
}

// Company is the issuer block printed on every invoice.
type Company struct {
	Name       string
	Address    string
	PostalCode string
	City       string
	SIRET      string
	Email      string
	Phone      string
	VATNotice  string
}

type Renderer struct {
	dir     string
	company Company
	logger  *zap.Logger
}

func NewRenderer(dir string, company Company, logger *zap.Logger) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create invoice dir: %v", ErrRenderIO, err)
	}
	return &Renderer{
		dir:     dir,
		company: company,
		logger:  logger,
	}, nil
}

// Page layout colors (from the site's palette).
var (
	colorCream  = [3]int{255, 251, 235}
	colorGold   = [3]int{202, 138, 4}
	colorOrange = [3]int{234, 88, 12}
	colorStripe = [3]int{254, 252, 232}
	colorBrown  = [3]int{146, 64, 14}
	colorText   = [3]int{75, 85, 99}
	colorDark   = [3]int{55, 65, 81}
)

// Generate renders the invoice to a PDF file inside the renderer directory
// and returns its path and file name. The file is the caller's to stream
// and delete.
func (r *Renderer) Generate(d Data) (string, string, error) {
	fileName := "facture_" + d.Number + ".pdf"
	filePath := filepath.Join(r.dir, fileName)

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	r.drawHeader(pdf, tr, d.Number)
	r.drawParties(pdf, tr, d)
	bottom := r.drawItems(pdf, tr, d.Items)
	r.drawTotals(pdf, tr, bottom, d.Total)
	r.drawLegalNotice(pdf, tr)
	r.drawPageFooter(pdf, tr)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrRenderIO, err)
	}

	r.logger.Info("invoice rendered",
		zap.String("number", d.Number),
		zap.String("file", filePath),
		zap.Float64("total", d.Total),
	)
	return filePath, fileName, nil
}

func (r *Renderer) drawHeader(pdf *fpdf.Fpdf, tr func(string) string, number string) {
	// Cream band with thin gold rules above and below.
	fill(pdf, colorCream)
	pdf.Rect(0, 0, 595, 140, "F")
	fill(pdf, colorGold)
	pdf.Rect(0, 0, 595, 4, "F")
	pdf.Rect(0, 130, 595, 10, "F")

	text(pdf, colorGold)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(60, 72, tr(r.company.Name))
	text(pdf, colorText)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(60, 90, "Assistante Digitale")

	// FACTURE badge.
	fill(pdf, colorOrange)
	pdf.RoundedRect(430, 35, 120, 60, 6, "1234", "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(435, 44)
	pdf.CellFormat(110, 20, "FACTURE", "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(435, 68)
	pdf.CellFormat(110, 12, tr("N° "+number), "", 0, "C", false, 0, "")
}

func (r *Renderer) drawParties(pdf *fpdf.Fpdf, tr func(string) string, d Data) {
	// Issuer box.
	pdf.SetFillColor(255, 255, 255)
	draw(pdf, colorGold)
	pdf.RoundedRect(50, 160, 240, 115, 6, "1234", "FD")
	text(pdf, colorGold)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(65, 182, tr("ÉMETTEUR"))

	text(pdf, colorText)
	pdf.SetFont("Helvetica", "", 9)
	issuer := []string{
		r.company.Name,
		r.company.Address,
		r.company.PostalCode + " " + r.company.City,
		"SIRET: " + r.company.SIRET,
		"Email: " + r.company.Email,
		tr("Tél: " + r.company.Phone),
	}
	y := 198.0
	for _, line := range issuer {
		pdf.Text(65, y, tr(line))
		y += 14
	}

	// Recipient box.
	pdf.SetFillColor(249, 250, 251)
	pdf.SetDrawColor(209, 213, 219)
	pdf.RoundedRect(310, 160, 235, 115, 6, "1234", "FD")
	text(pdf, colorDark)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(325, 182, "DESTINATAIRE")

	text(pdf, colorText)
	pdf.SetFont("Helvetica", "", 9)
	name := d.CustomerName
	if name == "" {
		name = "Client"
	}
	pdf.Text(325, 198, tr(name))
	pdf.Text(325, 212, tr(d.CustomerEmail))

	y = 226.0
	for _, line := range strings.Split(d.CustomerAddress, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pdf.Text(325, y, tr(line))
		y += 14
	}

	text(pdf, colorGold)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(325, 268, "Date:")
	text(pdf, colorText)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(360, 268, tr(d.Date))
}

// drawItems renders the table and returns the y coordinate just below it.
func (r *Renderer) drawItems(pdf *fpdf.Fpdf, tr func(string) string, items []LineItem) float64 {
	const tableTop = 295.0

	fill(pdf, colorGold)
	pdf.Rect(50, tableTop, 495, 32, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(60, tableTop+20, "DESCRIPTION")
	pdf.SetXY(320, tableTop+8)
	pdf.CellFormat(50, 16, tr("QTÉ"), "", 0, "C", false, 0, "")
	pdf.SetXY(370, tableTop+8)
	pdf.CellFormat(70, 16, "PRIX UNIT.", "", 0, "C", false, 0, "")
	pdf.SetXY(450, tableTop+8)
	pdf.CellFormat(85, 16, "TOTAL", "", 0, "R", false, 0, "")

	y := tableTop + 44
	for i, item := range items {
		if i%2 == 0 {
			fill(pdf, colorStripe)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.Rect(50, y-6, 495, 28, "F")

		text(pdf, colorDark)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(60, y+10, tr(item.Description))
		pdf.SetXY(320, y)
		pdf.CellFormat(50, 16, strconv.FormatInt(item.Quantity, 10), "", 0, "C", false, 0, "")
		pdf.SetXY(370, y)
		pdf.CellFormat(70, 16, tr(fmt.Sprintf("%.2f €", item.UnitPrice)), "", 0, "C", false, 0, "")

		text(pdf, colorBrown)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetXY(450, y)
		pdf.CellFormat(85, 16, tr(fmt.Sprintf("%.2f €", item.Total)), "", 0, "R", false, 0, "")

		y += 28
	}

	pdf.SetDrawColor(229, 231, 235)
	pdf.Rect(50, tableTop, 495, y-tableTop+5, "D")

	return y
}

func (r *Renderer) drawTotals(pdf *fpdf.Fpdf, tr func(string) string, tableBottom, total float64) {
	y := tableBottom + 25
	amount := tr(fmt.Sprintf("%.2f €", total))

	fill(pdf, colorStripe)
	draw(pdf, colorGold)
	pdf.RoundedRect(350, y-5, 195, 100, 6, "1234", "FD")

	text(pdf, colorText)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(365, y+22, "Total HT")
	pdf.SetXY(365, y+12)
	pdf.CellFormat(165, 14, amount, "", 0, "R", false, 0, "")
	pdf.Text(365, y+45, "TVA")
	pdf.SetXY(365, y+35)
	pdf.CellFormat(165, 14, "Non applicable", "", 0, "R", false, 0, "")

	draw(pdf, colorGold)
	pdf.Line(360, y+55, 535, y+55)

	fill(pdf, colorGold)
	pdf.RoundedRect(355, y+62, 185, 30, 4, "1234", "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(365, y+82, "TOTAL TTC")
	pdf.SetXY(365, y+70)
	pdf.CellFormat(165, 16, amount, "", 0, "R", false, 0, "")
}

func (r *Renderer) drawLegalNotice(pdf *fpdf.Fpdf, tr func(string) string) {
	const footerY = 700.0

	fill(pdf, colorStripe)
	pdf.SetDrawColor(234, 179, 8)
	pdf.RoundedRect(50, footerY, 495, 75, 4, "1234", "FD")

	text(pdf, colorBrown)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(65, footerY+21, tr("MENTIONS LÉGALES"))

	text(pdf, colorText)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(65, footerY+36, tr(r.company.VATNotice))
	pdf.Text(65, footerY+50, tr("Conditions de paiement : Paiement à réception"))
	pdf.Text(65, footerY+62, tr("En cas de retard de paiement, une pénalité de 3 fois le taux d'intérêt légal sera appliquée,"))
	pdf.Text(65, footerY+72, tr("ainsi qu'une indemnité forfaitaire de 40 € pour frais de recouvrement."))
}

func (r *Renderer) drawPageFooter(pdf *fpdf.Fpdf, tr func(string) string) {
	fill(pdf, colorGold)
	pdf.Rect(0, 790, 595, 52, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(50, 798)
	pdf.CellFormat(495, 12, tr("Merci pour votre confiance !"), "", 0, "C", false, 0, "")

	pdf.SetTextColor(254, 243, 199)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(50, 813)
	pdf.CellFormat(495, 10, tr(r.company.Name+" • Micro-entreprise (EI) • SIRET: "+r.company.SIRET), "", 0, "C", false, 0, "")
}

func fill(pdf *fpdf.Fpdf, c [3]int) {
	pdf.SetFillColor(c[0], c[1], c[2])
}

func draw(pdf *fpdf.Fpdf, c [3]int) {
	pdf.SetDrawColor(c[0], c[1], c[2])
}

func text(pdf *fpdf.Fpdf, c [3]int) {
	pdf.SetTextColor(c[0], c[1], c[2])
}
