package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	DefaultDelimiter       = "\t"
	DefaultOutputDelimiter = "\t"
	DefaultNullValue       = "None"
)

// Config holds the combiner options resolved from command-line flags and,
// optionally, a YAML defaults file.
type Config struct {
	Delimiter       string // splits input lines into fields
	OutputDelimiter string // joins output fields
	NullValue       string // placeholder for cells absent from a source row
	WithFileName    bool   // prepend the source file path to every record
	Transpose       bool   // swap rows and columns of the final table
	Verbose         bool   // debug-level diagnostics
	XLSXPath        string // when set, write the table to this workbook instead of stdout
	ConfigPath      string // optional YAML file with flag defaults

	Files []string // input reports, in combining order
}

// ParseFlags parses args (excluding the program name) into a Config and
// validates it: at least one input file must be named, and every named file
// must exist. Short and long spellings share one variable.
func ParseFlags(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("report-combiner", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), "Usage: report-combiner [options] file1.txt [file2.txt... *.txt]\n\n")
		fmt.Fprint(fs.Output(), "Combines generic delimited reports. If reports have different column\nheaders, attempts to recombine in roughly the same order.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.Delimiter, "delimiter", DefaultDelimiter, "input field delimiter")
	fs.StringVar(&cfg.Delimiter, "d", DefaultDelimiter, "shorthand for -delimiter")
	fs.StringVar(&cfg.OutputDelimiter, "output-delimiter", DefaultOutputDelimiter, "output field delimiter")
	fs.StringVar(&cfg.OutputDelimiter, "o", DefaultOutputDelimiter, "shorthand for -output-delimiter")
	fs.StringVar(&cfg.NullValue, "na-value", DefaultNullValue, "value used for empty fields")
	fs.StringVar(&cfg.NullValue, "n", DefaultNullValue, "shorthand for -na-value")
	fs.BoolVar(&cfg.WithFileName, "file-name", false, "add the source file path as the first column")
	fs.BoolVar(&cfg.WithFileName, "f", false, "shorthand for -file-name")
	fs.BoolVar(&cfg.Transpose, "transpose", false, "transpose the output")
	fs.BoolVar(&cfg.Transpose, "t", false, "shorthand for -transpose")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "print extra diagnostic information")
	fs.BoolVar(&cfg.Verbose, "v", false, "shorthand for -verbose")
	fs.StringVar(&cfg.XLSXPath, "xlsx", "", "write the table to this XLSX file instead of stdout")
	fs.StringVar(&cfg.ConfigPath, "config", "", "YAML file with option defaults")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.ConfigPath != "" {
		if err := applyFileDefaults(cfg, fs); err != nil {
			return nil, err
		}
	}

	cfg.Files = fs.Args()
	if len(cfg.Files) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("must provide files to operate on")
	}

	for i, path := range cfg.Files {
		cfg.Files[i] = filepath.Clean(path)
		info, err := os.Stat(cfg.Files[i])
		if err != nil {
			return nil, fmt.Errorf("unable to find file %s", path)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory, not a report file", path)
		}
	}

	return cfg, nil
}

// applyFileDefaults overlays values from the YAML defaults file onto options
// the command line did not set explicitly. Flags always win over the file.
func applyFileDefaults(cfg *Config, fs *flag.FlagSet) error {
	v := viper.New()
	v.SetConfigFile(cfg.ConfigPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", cfg.ConfigPath, err)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if v.IsSet("delimiter") && !set["delimiter"] && !set["d"] {
		cfg.Delimiter = v.GetString("delimiter")
	}
	if v.IsSet("output_delimiter") && !set["output-delimiter"] && !set["o"] {
		cfg.OutputDelimiter = v.GetString("output_delimiter")
	}
	if v.IsSet("na_value") && !set["na-value"] && !set["n"] {
		cfg.NullValue = v.GetString("na_value")
	}
	if v.IsSet("file_name") && !set["file-name"] && !set["f"] {
		cfg.WithFileName = v.GetBool("file_name")
	}
	if v.IsSet("transpose") && !set["transpose"] && !set["t"] {
		cfg.Transpose = v.GetBool("transpose")
	}
	if v.IsSet("verbose") && !set["verbose"] && !set["v"] {
		cfg.Verbose = v.GetBool("verbose")
	}
	if v.IsSet("xlsx") && !set["xlsx"] {
		cfg.XLSXPath = v.GetString("xlsx")
	}
	return nil
}
