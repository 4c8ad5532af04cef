package combiner

import (
	"bufio"
	"io"
	"log/slog"
	"strings"
)

const maxLineSize = 4 * 1024 * 1024

// FileData holds one report's rows keyed by that report's own header.
type FileData struct {
	path   string
	header []string
	rows   []map[string]string
}

// readFileData parses one report. The first non-blank, non-comment line is
// the header; every following data line is split on the delimiter and zipped
// against the header. Lines whose field count disagrees with the header are
// skipped with a diagnostic. A nil FileData (and nil error) means no header
// line was found.
func readFileData(r io.Reader, path, delimiter string, log *slog.Logger) (*FileData, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	var header []string
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if skippable(line) {
			continue
		}
		header = strings.Split(line, delimiter)
		break
	}
	if header == nil {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		log.Warn("no header found, skipping file", "file", path)
		return nil, nil
	}

	fd := &FileData{path: path, header: header}
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if skippable(line) {
			continue
		}

		fields := strings.Split(line, delimiter)
		if len(fields) != len(header) {
			log.Error("skipping row with inconsistent column count",
				"file", path, "row", lineNum, "columns", len(fields), "expected", len(header))
			continue
		}

		// Duplicate column names in the header: the later position wins.
		row := make(map[string]string, len(header))
		for i, name := range header {
			row[name] = fields[i]
		}
		fd.rows = append(fd.rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return fd, nil
}

// skippable reports whether a line is blank or a # comment.
func skippable(line string) bool {
	return strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#")
}

// Header returns the file's own column ordering.
func (fd *FileData) Header() []string {
	return fd.header
}

// Rows returns the number of stored data rows.
func (fd *FileData) Rows() int {
	return len(fd.rows)
}

// Project maps every stored row onto the canonical column ordering, filling
// columns absent from a row with nullValue. When withPath is set, the source
// file path is prepended to each record.
func (fd *FileData) Project(canonical []string, nullValue string, withPath bool) [][]string {
	out := make([][]string, 0, len(fd.rows))
	for _, row := range fd.rows {
		rec := make([]string, 0, len(canonical)+1)
		if withPath {
			rec = append(rec, fd.path)
		}
		for _, name := range canonical {
			if v, ok := row[name]; ok {
				rec = append(rec, v)
			} else {
				rec = append(rec, nullValue)
			}
		}
		out = append(out, rec)
	}
	return out
}
