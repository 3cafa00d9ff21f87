package receipt

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rl1809/warung-pos/internal/core/domain"
)

// 80mm thermal paper. Height grows with the item count so the listing is
// never truncated.
const (
	pageWidth       = 80.0
	baseHeight      = 150.0
	heightPerItem   = 5.0
	leftMargin      = 5.0
	rightEdge       = 75.0
	centerX         = 40.0
	dashedRule      = "-------------------------------------------"
	timestampLayout = "02/01/2006, 15.04.05"
)

// Header holds the shop identity printed at the top of every receipt.
type Header struct {
	Name       string
	Tagline    string
	Address    string
	FooterNote string
}

// Document is a rendered receipt ready for delivery.
type Document struct {
	Filename string
	Data     []byte
}

type Formatter struct {
	header  Header
	slug    string
	printer *message.Printer
	now     func() time.Time
}

func NewFormatter(header Header) *Formatter {
	return &Formatter{
		header:  header,
		slug:    slugify(header.Name),
		printer: message.NewPrinter(language.Indonesian),
		now:     time.Now,
	}
}

// Render lays out the order as a single-column receipt. The timestamp is
// stamped at render time, immediately after payment confirmation, not at
// order creation.
func (f *Formatter) Render(order domain.Order) (*Document, error) {
	now := f.now()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight(len(order.Items))},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	y := 10.0

	// Header
	pdf.SetFont("Helvetica", "B", 14)
	f.textCenter(pdf, y, f.header.Name)
	y += 5
	pdf.SetFontSize(10)
	f.textCenter(pdf, y, f.header.Tagline)
	y += 5
	pdf.SetFont("Helvetica", "", 8)
	f.textCenter(pdf, y, f.header.Address)
	y += 5
	f.textCenter(pdf, y, dashedRule)
	y += 5

	pdf.Text(leftMargin, y, now.Format(timestampLayout))
	y += 5
	f.textCenter(pdf, y, dashedRule)
	y += 5

	// Items: name line, then right-aligned qty x price = line total.
	for _, item := range order.Items {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.Text(leftMargin, y, item.Name)
		y += 4

		pdf.SetFont("Helvetica", "", 8)
		line := fmt.Sprintf("%d x %s = Rp %s",
			item.Quantity, f.formatAmount(item.Price), f.formatAmount(item.LineTotal()))
		f.textRight(pdf, y, line)
		y += 5
	}

	f.textCenter(pdf, y, dashedRule)
	y += 5

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(leftMargin, y, "TOTAL")
	f.textRight(pdf, y, "Rp "+f.formatAmount(order.Total))
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(leftMargin, y, "TUNAI")
	f.textRight(pdf, y, "Rp "+f.formatAmount(order.Cash))
	y += 5

	pdf.Text(leftMargin, y, "KEMBALI")
	f.textRight(pdf, y, "Rp "+f.formatAmount(order.Change))
	y += 10

	pdf.SetFont("Helvetica", "B", 9)
	f.textCenter(pdf, y, "TERIMA KASIH")
	y += 4
	pdf.SetFont("Helvetica", "I", 8)
	f.textCenter(pdf, y, f.header.FooterNote)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}

	return &Document{
		Filename: fmt.Sprintf("struk-%s-%d.pdf", f.slug, now.UnixMilli()),
		Data:     buf.Bytes(),
	}, nil
}

func (f *Formatter) formatAmount(amount int) string {
	return f.printer.Sprintf("%d", amount)
}

func (f *Formatter) textCenter(pdf *gofpdf.Fpdf, y float64, s string) {
	pdf.Text(centerX-pdf.GetStringWidth(s)/2, y, s)
}

func (f *Formatter) textRight(pdf *gofpdf.Fpdf, y float64, s string) {
	pdf.Text(rightEdge-pdf.GetStringWidth(s), y, s)
}

func pageHeight(itemCount int) float64 {
	return baseHeight + float64(itemCount)*heightPerItem
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
