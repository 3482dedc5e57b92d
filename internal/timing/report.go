// SPDX-License-Identifier: MIT

package timing

import (
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Row is one measured kernel at one size.
type Row struct {
	Size   int
	Kernel string
	Result Result
	// MaxDiff is the largest cell deviation from the reference product.
	MaxDiff float32
}

// Report is a full run: header fields plus rows in insertion order.
type Report struct {
	RunID      string
	Host       Host
	Cutover    int
	Iterations int
	Rows       []Row
}

// Add appends a row.
func (r *Report) Add(size int, kernel string, res Result, maxDiff float32) {
	r.Rows = append(r.Rows, Row{Size: size, Kernel: kernel, Result: res, MaxDiff: maxDiff})
}

// Render writes the report to w. Numbers are grouped per tag
// (language.English: 1,234,567).
func (r *Report) Render(w io.Writer, tag language.Tag) error {
	p := message.NewPrinter(tag)

	if _, err := p.Fprintf(w, "run %s  arch=%s simd=%s  cutover=%d  iterations=%d\n",
		r.RunID, r.Host.Arch, r.Host.SIMD, r.Cutover, r.Iterations); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := p.Fprintf(tw, "size\tkernel\tcells\tns/op\tmin\tmax\tmax|diff|\t\n"); err != nil {
		return err
	}
	for _, row := range r.Rows {
		if _, err := p.Fprintf(tw, "%d\t%s\t%d\t%.0f\t%v\t%v\t%.2e\t\n",
			row.Size, row.Kernel, row.Size*row.Size,
			row.Result.NsPerOp(), row.Result.Min, row.Result.Max,
			row.MaxDiff,
		); err != nil {
			return err
		}
	}

	return tw.Flush()
}
