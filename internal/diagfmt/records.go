package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cppdoc/internal/decl"
)

// RecordOutput is the JSON form of one extracted declaration.
type RecordOutput struct {
	Kind          string   `json:"kind"`
	Name          string   `json:"name"`
	QualifiedName string   `json:"qualified_name"`
	Line          uint32   `json:"line"`
	Col           uint32   `json:"col"`
	Definition    string   `json:"definition"`
	Signature     []string `json:"signature,omitempty"`
	Template      []string `json:"template,omitempty"`
	Flags         []string `json:"flags,omitempty"`
	Access        string   `json:"access,omitempty"`
	Parent        int      `json:"parent"`
}

// FormatRecordsPretty печатает записи деклараций по одной на строку,
// с отступом по вложенности.
func FormatRecordsPretty(w io.Writer, records []decl.Record) error {
	depth := make([]int, len(records))
	for i := range records {
		r := &records[i]
		if r.Parent >= 0 && r.Parent < i {
			depth[i] = depth[r.Parent] + 1
		}
		fmt.Fprintf(w, "%4d:%-3d %s%-10s %s", r.Pos.Line, r.Pos.Col, strings.Repeat("  ", depth[i]), r.Kind, r.QualifiedName())
		if r.Kind.IsCallable() {
			fmt.Fprint(w, r.SignatureString())
		}
		if r.Access != decl.AccessNone {
			fmt.Fprintf(w, " [%s]", r.Access)
		}
		if r.Flags != 0 {
			fmt.Fprintf(w, " {%s}", r.Flags)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatRecordsJSON выводит записи в JSON формате
func FormatRecordsJSON(w io.Writer, records []decl.Record) error {
	output := make([]RecordOutput, 0, len(records))
	for i := range records {
		r := &records[i]
		output = append(output, RecordOutput{
			Kind:          r.Kind.String(),
			Name:          r.Name,
			QualifiedName: r.QualifiedName(),
			Line:          r.Pos.Line,
			Col:           r.Pos.Col,
			Definition:    r.Definition,
			Signature:     r.Signature,
			Template:      r.Template,
			Flags:         r.Flags.Names(),
			Access:        r.Access.String(),
			Parent:        r.Parent,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
