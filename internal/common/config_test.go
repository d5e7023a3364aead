package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(NewViper())
	require.NoError(t, err)

	assert.Equal(t, TextMethodNative, cfg.PDF.TextMethod)
	assert.Equal(t, 250.0, cfg.PDF.BandMinX)
	assert.Equal(t, 290.0, cfg.PDF.BandMaxX)
	assert.Equal(t, 3.0, cfg.PDF.LineTolerance)
	assert.True(t, cfg.Ingest.SkipHidden)
	assert.Equal(t, 1, cfg.Batch.Workers)
	assert.Zero(t, cfg.Batch.DocumentTimeout)
	assert.Equal(t, "Dati", cfg.Export.SheetName)
	assert.Equal(t, "fatture_estratte.xlsx", cfg.Export.OutputPath)
	assert.Empty(t, cfg.Export.JSONPath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("INVOICE_BATCH_WORKERS", "4")
	t.Setenv("INVOICE_PDF_BAND_MIN_X", "240.5")
	t.Setenv("INVOICE_BATCH_DOCUMENT_TIMEOUT", "30s")

	cfg, err := LoadConfig(NewViper())
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, 240.5, cfg.PDF.BandMinX)
	assert.Equal(t, 30*time.Second, cfg.Batch.DocumentTimeout)
}

func TestLoadConfigFlagsWinOverEnv(t *testing.T) {
	t.Setenv("INVOICE_EXPORT_OUT", "from-env.xlsx")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--out", "from-flag.xlsx", "--workers", "3"}))

	v := NewViper()
	require.NoError(t, BindFlags(v, fs))

	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "from-flag.xlsx", cfg.Export.OutputPath)
	assert.Equal(t, 3, cfg.Batch.Workers)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  sheet: Fatture\npdf:\n  band_max_x: 300\n"), 0o600))

	v := NewViper()
	v.Set("config", path)

	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "Fatture", cfg.Export.SheetName)
	assert.Equal(t, 300.0, cfg.PDF.BandMaxX)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			PDF:    PDFConfig{TextMethod: TextMethodNative, BandMinX: 250, BandMaxX: 290, LineTolerance: 3},
			Batch:  BatchConfig{Workers: 1},
			Export: ExportConfig{SheetName: "Dati", OutputPath: "out.xlsx"},
			Log:    LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown text method", mutate: func(c *Config) { c.PDF.TextMethod = "ocr" }, wantErr: true},
		{name: "inverted band", mutate: func(c *Config) { c.PDF.BandMinX = 300 }, wantErr: true},
		{name: "zero workers", mutate: func(c *Config) { c.Batch.Workers = 0 }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Batch.DocumentTimeout = -time.Second }, wantErr: true},
		{name: "blank sheet", mutate: func(c *Config) { c.Export.SheetName = " " }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: true},
		{name: "pdftotext without binary", mutate: func(c *Config) {
			c.PDF.TextMethod = TextMethodPDFToText
			c.PDF.PDFToTextPath = ""
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var appErr *AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, "CONFIG_ERROR", appErr.Code)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
