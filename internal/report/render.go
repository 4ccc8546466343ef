package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Format selects a report encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// ErrUnknownFormat is returned for a format name Render doesn't support.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat converts a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML, FormatCBOR:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// cborEncMode uses Core Deterministic Encoding so equal reports encode
// to identical bytes.
var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	var err error
	encOptions := cbor.CoreDetEncOptions()
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	cborEncMode, err = encOptions.EncMode()
	if err != nil {
		panic("report: CBOR encoder initialization failed: " + err.Error())
	}
	cborDecMode, err = cbor.DecOptions{
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("report: CBOR decoder initialization failed: " + err.Error())
	}
}

type renderOptions struct {
	color bool
}

// RenderOption configures Render.
type RenderOption func(*renderOptions)

// WithColor enables ANSI colours in text output.
func WithColor(color bool) RenderOption {
	return func(o *renderOptions) {
		o.color = color
	}
}

// Render writes the report to w in the given format.
func (r *Report) Render(w io.Writer, format Format, opts ...RenderOption) error {
	var o renderOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch format {
	case FormatText:
		return r.renderText(w, o.color)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatCBOR:
		return cborEncMode.NewEncoder(w).Encode(r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

// Decode reads a report previously written by Render. Text reports
// can't be decoded.
func Decode(rd io.Reader, format Format) (*Report, error) {
	var r Report
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(rd).Decode(&r)
	case FormatYAML:
		err = yaml.NewDecoder(rd).Decode(&r)
	case FormatCBOR:
		err = cborDecMode.NewDecoder(rd).Decode(&r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s report: %w", format, err)
	}
	return &r, nil
}

// ANSI colours, applied only when colour output is enabled.
const (
	reset    = "\x1b[0m"
	red      = "\x1b[31m"
	green    = "\x1b[32m"
	cyanBold = "\x1b[1;36m"
	dim      = "\x1b[2m"
)

func (r *Report) renderText(w io.Writer, color bool) error {
	colorize := func(s, code string) string {
		if !color {
			return s
		}
		return code + s + reset
	}

	bw := bufio.NewWriter(w)
	header := func(mark string, in Input) {
		line := fmt.Sprintf("%s %s\tblake3:%s  %d bytes, %d characters, %d chunks",
			mark, in.Name, in.Digest.Short(), in.Counts.Bytes, in.Counts.Characters, in.Chunks)
		fmt.Fprintln(bw, colorize(line, cyanBold))
	}
	header("---", r.Old)
	header("+++", r.New)

	for _, c := range r.Changes {
		mark, code, other := "+", green, "old"
		if c.Op == "delete" {
			mark, code, other = "-", red, "new"
		}
		pos := colorize(fmt.Sprintf("@ %d..<%d (%s %d)", c.Start, c.End, other, c.At), dim)
		fmt.Fprintf(bw, "%s %s %s\n", colorize(mark, code), pos, colorize(strconv.Quote(c.Text), code))
	}

	if !r.HasChanges() {
		fmt.Fprintln(bw, "no differences")
	} else {
		fmt.Fprintf(bw, "%d changes: %d bytes deleted, %d bytes inserted\n",
			r.Totals.Changes, r.Totals.Deleted, r.Totals.Inserted)
	}
	return bw.Flush()
}

// ColorEnabled resolves a colour mode ("auto", "always" or "never")
// for w. Auto enables colour only when w is a terminal.
func ColorEnabled(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if f, ok := w.(*os.File); ok && f != nil {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
