package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/example/purchase-analyzer/pkg/purchase"
)

// TopCount is the number of purchases listed in the top block
const TopCount = 3

var (
	rule   = strings.Repeat("=", 40)
	dashes = strings.Repeat("-", 40)
	short  = strings.Repeat("-", 30)
)

// Write renders the report for records into path, creating or truncating it.
// Failures are returned as *purchase.FileAccessError.
func Write(path string, records []purchase.Record, errorCount int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &purchase.FileAccessError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &purchase.FileAccessError{Op: "close", Path: path, Err: closeErr}
		}
	}()

	w := bufio.NewWriter(f)
	if err := Render(w, records, errorCount); err != nil {
		return &purchase.FileAccessError{Op: "write", Path: path, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &purchase.FileAccessError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Render writes the report text to w. Sections: summary, spend per category,
// top purchases and, when there are records, the full listing.
func Render(w io.Writer, records []purchase.Record, errorCount int) error {
	p := &printer{w: w}

	p.line("отчёт по покупкам")
	p.line(rule)
	p.line("")

	p.linef("валидных покупок: %d", len(records))
	p.linef("строк с ошибками: %d", errorCount)
	p.linef("общая сумма: %.2f", purchase.TotalSpent(records))
	p.line("")

	p.line("траты по категориям:")
	p.line(short)
	byCategory := purchase.SpentByCategory(records)
	for _, category := range purchase.SortedCategories(byCategory) {
		p.linef("%s %s", category, number(byCategory[category]))
	}
	p.line("")

	p.linef("топ-%d самых дорогих покупок:", TopCount)
	p.line(dashes)
	for i, r := range purchase.TopNExpensive(records, TopCount) {
		p.linef("%d. %s %s (%s)", i+1, r.Name(), number(r.Total()), r.Category())
	}

	if len(records) > 0 {
		p.line("")
		p.line(rule)
		p.line("все валидные покупки:")
		p.line(rule)
		for _, r := range records {
			p.linef("%s | %s | %s | %s x %s = %s",
				r.Date(), r.Category(), r.Name(),
				number(r.Price()), number(r.Qty()), number(r.Total()))
		}
	}

	return p.err
}

// number renders a float with the fewest digits that round-trip
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// printer keeps the first write error and drops everything after it
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s+"\n")
}

func (p *printer) linef(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}
