package diagfmt

import (
	"fmt"
	"io"

	"cppdoc/internal/diag"
	"cppdoc/internal/source"
)

// Short печатает диагностики по одной на строку:
//
//	<sev> <CODE> <path>:<line>:<col> <message>
//
// Диагностики без местоположения (I/O, тайминги) идут в конце без path.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	var located, rest []*diag.Diagnostic
	for _, d := range bag.Items() {
		if d.Code.Located() && fs != nil && int(d.Primary.File) < fs.Len() {
			located = append(located, d)
		} else {
			rest = append(rest, d)
		}
	}
	if text := diag.FormatShortDiagnostics(located, fs, opts.ShowNotes, opts.PathMode.String()); text != "" {
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	for _, d := range rest {
		if _, err := fmt.Fprintf(w, "%s %s %s\n", diag.SeverityLabel(d.Severity), d.Code.ID(), d.Message); err != nil {
			return err
		}
	}
	return nil
}
