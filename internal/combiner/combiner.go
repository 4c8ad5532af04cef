package combiner

import (
	"fmt"
	"log/slog"

	"github.com/ryabkov82/report-combiner/internal/config"
	"github.com/ryabkov82/report-combiner/internal/reader"
)

// PathColumn labels the prepended source-path column in the output header.
const PathColumn = "file_path"

// Combiner ingests delimited reports and assembles the unified table.
type Combiner struct {
	cfg     *config.Config
	log     *slog.Logger
	headers *HeaderMapper
	files   []*FileData
}

func New(cfg *config.Config, log *slog.Logger) *Combiner {
	if log == nil {
		log = slog.Default()
	}
	return &Combiner{
		cfg:     cfg,
		log:     log,
		headers: NewHeaderMapper(),
	}
}

// AddFile opens one report, parses it fully and closes it before returning.
// A file with no detectable header is logged and contributes nothing; read
// and open failures are returned to the caller.
func (c *Combiner) AddFile(path string) error {
	c.log.Debug("adding file", "file", path)

	f, err := reader.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fd, err := readFileData(f, path, c.cfg.Delimiter, c.log)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if fd == nil {
		return nil
	}

	if err := c.headers.AddHeader(fd.Header()); err != nil {
		return err
	}
	c.files = append(c.files, fd)
	c.log.Debug("file parsed", "file", path, "columns", len(fd.Header()), "rows", fd.Rows())
	return nil
}

// BuildTable assembles the unified matrix: the canonical header record
// first, then every file's projected rows in ingestion order.
func (c *Combiner) BuildTable() [][]string {
	canonical := c.headers.Canonical()

	headerRec := canonical
	if c.cfg.WithFileName {
		headerRec = append([]string{PathColumn}, canonical...)
	}

	table := [][]string{headerRec}
	for _, fd := range c.files {
		table = append(table, fd.Project(canonical, c.cfg.NullValue, c.cfg.WithFileName)...)
	}
	return table
}

// BuildTableTransposed returns the unified matrix with rows and columns
// swapped. Every record has the same length by construction, so the matrix
// is rectangular.
func (c *Combiner) BuildTableTransposed() [][]string {
	return Transpose(c.BuildTable())
}

// Transpose swaps rows and columns of a rectangular matrix.
func Transpose(table [][]string) [][]string {
	if len(table) == 0 || len(table[0]) == 0 {
		return nil
	}

	out := make([][]string, len(table[0]))
	for j := range out {
		out[j] = make([]string, len(table))
		for i := range table {
			out[j][i] = table[i][j]
		}
	}
	return out
}
