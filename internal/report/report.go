// Package report turns an edit script into a self-describing document.
//
// A Report names both inputs, carries a keyed BLAKE3 digest and the
// text counts of each, and lists every change with the affected text.
// Reports render as coloured text for terminals or as JSON, YAML or
// CBOR for tools:
//
//	res, _ := eng.Diff(oldText, newText)
//	rep := report.New(res, report.WithNames("a.txt", "b.txt"))
//	rep.Render(os.Stdout, report.FormatJSON)
package report

import (
	"github.com/dshills/ropekit/internal/engine"
	"github.com/dshills/ropekit/internal/engine/rope"
)

// Version is the report schema version.
const Version = 1

// Counts holds the text measures of one input.
type Counts struct {
	Bytes      int `json:"bytes" yaml:"bytes" cbor:"bytes"`
	UTF16      int `json:"utf16" yaml:"utf16" cbor:"utf16"`
	Scalars    int `json:"scalars" yaml:"scalars" cbor:"scalars"`
	Characters int `json:"characters" yaml:"characters" cbor:"characters"`
}

// Input describes one side of the comparison.
type Input struct {
	Name   string `json:"name" yaml:"name" cbor:"name"`
	Digest Digest `json:"digest" yaml:"digest" cbor:"digest"`
	Chunks int    `json:"chunks" yaml:"chunks" cbor:"chunks"`
	Counts Counts `json:"counts" yaml:"counts" cbor:"counts"`
}

// Change is one edit with its text.
//
// Start and End address the old text for deletes and the new text for
// inserts. At is the matching offset in the other text.
type Change struct {
	Op    string `json:"op" yaml:"op" cbor:"op"`
	Start int    `json:"start" yaml:"start" cbor:"start"`
	End   int    `json:"end" yaml:"end" cbor:"end"`
	At    int    `json:"at" yaml:"at" cbor:"at"`
	Text  string `json:"text" yaml:"text" cbor:"text"`
}

// Totals summarises the changes.
type Totals struct {
	Changes  int `json:"changes" yaml:"changes" cbor:"changes"`
	Deleted  int `json:"deleted" yaml:"deleted" cbor:"deleted"`
	Inserted int `json:"inserted" yaml:"inserted" cbor:"inserted"`
}

// Report is the rendered form of a diff result.
type Report struct {
	Version int      `json:"version" yaml:"version" cbor:"version"`
	Old     Input    `json:"old" yaml:"old" cbor:"old"`
	New     Input    `json:"new" yaml:"new" cbor:"new"`
	Changes []Change `json:"changes" yaml:"changes" cbor:"changes"`
	Totals  Totals   `json:"totals" yaml:"totals" cbor:"totals"`
}

type options struct {
	oldName, newName string
	keyMaterial      string
}

// Option configures New.
type Option func(*options)

// WithNames sets the input names shown in the report.
func WithNames(oldName, newName string) Option {
	return func(o *options) {
		o.oldName, o.newName = oldName, newName
	}
}

// WithDigestKey derives the digest key from material. Reports built
// with different material have unrelated digests.
func WithDigestKey(material string) Option {
	return func(o *options) {
		o.keyMaterial = material
	}
}

// New builds a report from a diff result.
func New(res *engine.Result, opts ...Option) *Report {
	o := options{oldName: "old", newName: "new"}
	for _, opt := range opts {
		opt(&o)
	}
	key := digestKey(o.keyMaterial)

	r := &Report{
		Version: Version,
		Old:     describe(o.oldName, key, res.Old),
		New:     describe(o.newName, key, res.New),
		Changes: changes(res),
		Totals: Totals{
			Changes:  len(res.Edits),
			Deleted:  res.Deleted(),
			Inserted: res.Inserted(),
		},
	}
	return r
}

// HasChanges returns true if the report lists any change.
func (r *Report) HasChanges() bool {
	return len(r.Changes) > 0
}

func describe(name string, key [32]byte, seq *rope.Sequence) Input {
	s := seq.Summary()
	return Input{
		Name:   name,
		Digest: hashSequence(key, seq),
		Chunks: seq.Count(),
		Counts: Counts{
			Bytes:      s.Bytes,
			UTF16:      s.UTF16,
			Scalars:    s.Scalars,
			Characters: s.Characters,
		},
	}
}

// changes replays the edit script to find the offset each edit maps to
// in the other text.
func changes(res *engine.Result) []Change {
	if len(res.Edits) == 0 {
		return []Change{}
	}
	oldText, newText := res.Old.String(), res.New.String()
	out := make([]Change, 0, len(res.Edits))
	oc, nc := 0, 0
	for _, e := range res.Edits {
		c := Change{Op: e.Op.String(), Start: e.Range.Start, End: e.Range.End}
		switch e.Op {
		case engine.OpDelete:
			nc += e.Range.Start - oc
			c.At = nc
			c.Text = oldText[e.Range.Start:e.Range.End]
			oc = e.Range.End
		case engine.OpInsert:
			oc += e.Range.Start - nc
			c.At = oc
			c.Text = newText[e.Range.Start:e.Range.End]
			nc = e.Range.End
		}
		out = append(out, c)
	}
	return out
}
