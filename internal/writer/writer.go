// Package writer renders the unified table as delimited text or XLSX.
package writer

import (
	"bufio"
	"io"
	"strings"
)

// WriteTable writes the record matrix to w, fields joined by delimiter, one
// record per line with a trailing newline.
func WriteTable(w io.Writer, table [][]string, delimiter string) error {
	bw := bufio.NewWriter(w)
	for _, rec := range table {
		if _, err := bw.WriteString(strings.Join(rec, delimiter)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
