package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix namespaces every environment override, e.g. INVOICE_BATCH_WORKERS.
	EnvPrefix = "INVOICE"

	TextMethodNative    = "native"
	TextMethodPDFToText = "pdftotext"
)

// Config holds all application configuration
type Config struct {
	PDF    PDFConfig
	Ingest IngestConfig
	Batch  BatchConfig
	Export ExportConfig
	Log    LogConfig
}

// PDFConfig holds text and layout extraction settings
type PDFConfig struct {
	TextMethod    string
	PDFToTextPath string
	// BandMinX and BandMaxX bound the horizontal band, in points from the
	// left page edge, scanned by the positional quantity fallback.
	BandMinX      float64
	BandMaxX      float64
	LineTolerance float64
}

// IngestConfig holds document collection settings
type IngestConfig struct {
	SkipHidden     bool
	CheckStructure bool
}

// BatchConfig holds batch runner settings
type BatchConfig struct {
	Workers         int
	DocumentTimeout time.Duration
}

// ExportConfig holds output settings
type ExportConfig struct {
	SheetName  string
	OutputPath string
	JSONPath   string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

var defaults = map[string]any{
	"pdf.text_method":        TextMethodNative,
	"pdf.pdftotext":          "pdftotext",
	"pdf.band_min_x":         250.0,
	"pdf.band_max_x":         290.0,
	"pdf.line_tolerance":     3.0,
	"ingest.skip_hidden":     true,
	"ingest.check_structure": true,
	"batch.workers":          1,
	"batch.document_timeout": time.Duration(0),
	"export.sheet":           "Dati",
	"export.out":             "fatture_estratte.xlsx",
	"export.json_out":        "",
	"log.level":              "info",
}

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"text-method":      "pdf.text_method",
	"pdftotext":        "pdf.pdftotext",
	"band-min":         "pdf.band_min_x",
	"band-max":         "pdf.band_max_x",
	"line-tolerance":   "pdf.line_tolerance",
	"skip-hidden":      "ingest.skip_hidden",
	"check-structure":  "ingest.check_structure",
	"workers":          "batch.workers",
	"document-timeout": "batch.document_timeout",
	"sheet":            "export.sheet",
	"out":              "export.out",
	"json":             "export.json_out",
	"loglevel":         "log.level",
}

// NewViper returns a viper instance with defaults and INVOICE_* env overrides.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "optional config file (yaml, json or toml)")
	fs.String("text-method", TextMethodNative, "text extraction method: native|pdftotext")
	fs.String("pdftotext", "pdftotext", "path to the pdftotext binary")
	fs.Float64("band-min", 250, "left edge of the quantity column band (points)")
	fs.Float64("band-max", 290, "right edge of the quantity column band (points)")
	fs.Float64("line-tolerance", 3, "vertical bucket size when grouping words into lines (points)")
	fs.Bool("skip-hidden", true, "skip hidden files and folders")
	fs.Bool("check-structure", true, "reject PDFs whose structure cannot be read")
	fs.Int("workers", 1, "documents processed in parallel")
	fs.Duration("document-timeout", 0, "per-document timeout (0 = none)")
	fs.String("sheet", "Dati", "spreadsheet sheet name")
	fs.String("out", "fatture_estratte.xlsx", "XLSX output path")
	fs.String("json", "", "optional JSON output path")
	fs.String("loglevel", "info", "log level: debug|info|warn|error")
}

// BindFlags binds the flags defined by RegisterFlags to their config keys.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	if f := fs.Lookup("config"); f != nil {
		if err := v.BindPFlag("config", f); err != nil {
			return fmt.Errorf("bind flag config: %w", err)
		}
	}
	return nil
}

// LoadConfig reads configuration from v (defaults, config file, env, flags)
// and validates it.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = NewViper()
	}
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, NewAppError("CONFIG_ERROR", "read config file "+file, err)
		}
	}

	cfg := &Config{
		PDF: PDFConfig{
			TextMethod:    strings.ToLower(strings.TrimSpace(v.GetString("pdf.text_method"))),
			PDFToTextPath: v.GetString("pdf.pdftotext"),
			BandMinX:      v.GetFloat64("pdf.band_min_x"),
			BandMaxX:      v.GetFloat64("pdf.band_max_x"),
			LineTolerance: v.GetFloat64("pdf.line_tolerance"),
		},
		Ingest: IngestConfig{
			SkipHidden:     v.GetBool("ingest.skip_hidden"),
			CheckStructure: v.GetBool("ingest.check_structure"),
		},
		Batch: BatchConfig{
			Workers:         v.GetInt("batch.workers"),
			DocumentTimeout: v.GetDuration("batch.document_timeout"),
		},
		Export: ExportConfig{
			SheetName:  v.GetString("export.sheet"),
			OutputPath: v.GetString("export.out"),
			JSONPath:   v.GetString("export.json_out"),
		},
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("log.level")),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("pdf.text_method", c.PDF.TextMethod, OneOf(TextMethodNative, TextMethodPDFToText)).
		Field("pdf.line_tolerance", c.PDF.LineTolerance, Positive).
		Check(c.PDF.BandMinX <= c.PDF.BandMaxX, "pdf.band_min_x", c.PDF.BandMinX, "must not exceed pdf.band_max_x").
		Field("batch.workers", c.Batch.Workers, Positive).
		Field("batch.document_timeout", c.Batch.DocumentTimeout, NonNegativeDuration).
		Field("export.sheet", c.Export.SheetName, Required).
		Field("export.out", c.Export.OutputPath, Required).
		Field("log.level", c.Log.Level, OneOf("debug", "info", "warn", "error"))
	if c.PDF.TextMethod == TextMethodPDFToText {
		v.Field("pdf.pdftotext", c.PDF.PDFToTextPath, Required)
	}
	return ValidateAndReturnError(v)
}
