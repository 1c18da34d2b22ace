package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/reoring/yamltree"
)

type palette struct {
	err   *color.Color
	ok    *color.Color
	loc   *color.Color
	dim   *color.Color
	caret *color.Color
	added *color.Color
	gone  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		ok:    color.New(color.FgGreen),
		loc:   color.New(color.Bold),
		dim:   color.New(color.FgHiBlack),
		caret: color.New(color.FgRed, color.Bold),
		added: color.New(color.FgGreen),
		gone:  color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.ok, p.loc, p.dim, p.caret, p.added, p.gone} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// report writes a diagnostic for err found in file. Document errors get the
// offending source line and a caret under the column.
//
//	config.yaml:3:1: error[duplicate_key]: Duplicate key 'a'. ...
//	  at a
//	   3 | a: 2
//	     | ^
func (p palette) report(w io.Writer, file string, src []byte, err error) {
	ye, ok := yamltree.AsError(err)
	if !ok {
		fmt.Fprintf(w, "%s: %s %s\n", p.loc.Sprint(file), p.err.Sprint("error:"), err)
		return
	}
	loc := ye.Location()
	fmt.Fprintf(w, "%s %s %s\n",
		p.loc.Sprintf("%s:%d:%d:", file, loc.Line, loc.Column),
		p.err.Sprintf("error[%s]:", ye.Code),
		ye.Message)
	if !ye.Path.IsRoot() {
		fmt.Fprintf(w, "  %s %s\n", p.dim.Sprint("at"), ye.Path)
	}
	if ye.Original != nil {
		fmt.Fprintf(w, "  %s %s (%s)\n", p.dim.Sprint("first defined at"), *ye.Original, ye.Original.EndLocation())
	}
	line, ok := sourceLine(src, loc.Line)
	if !ok {
		return
	}
	gutter := fmt.Sprintf("%4d | ", loc.Line)
	fmt.Fprintf(w, "%s%s\n", p.dim.Sprint(gutter), line)
	fmt.Fprintf(w, "%s%s%s\n", p.dim.Sprint(strings.Repeat(" ", len(gutter)-2)+"| "), caretPad(line, loc.Column), p.caret.Sprint("^"))
}

func sourceLine(src []byte, line int) (string, bool) {
	if line < 1 {
		return "", false
	}
	lines := bytes.Split(src, []byte("\n"))
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(string(lines[line-1]), "\r"), true
}

// caretPad returns the padding that places a caret under the column'th
// character of line. Tabs are kept so the caret lines up with the source as
// the terminal renders it, and wide characters take two cells.
func caretPad(line string, column int) string {
	var b strings.Builder
	i := 1
	for _, r := range line {
		if i >= column {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
		i++
	}
	if i < column {
		b.WriteString(strings.Repeat(" ", column-i))
	}
	return b.String()
}
