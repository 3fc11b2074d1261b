// Package config holds the CLI-facing configuration shared across the
// streamkit subcommands.
//
// Grounded on the teacher's internal/config.Config (a single flat
// struct populated from cobra flags in cmd/installer-scraper/main.go's
// parseConfig), generalized from crawl/download/process settings to
// pipeline settings: which codec, key material, and compression factor
// a run uses.
package config

// Base names the text codec a run encodes to or decodes from.
type Base string

const (
	Base16 Base = "base16"
	Base64 Base = "base64"
	Base85 Base = "base85"
)

// CompressFormat names the compression container a run targets.
// Bzip2/XZ are decode-only (compress.DecoderRegistry has no matching
// encoder), so they're only valid where a command reads a format rather
// than producing one.
type CompressFormat string

const (
	FormatZlib  CompressFormat = "zlib"
	FormatGzip  CompressFormat = "gzip"
	FormatBzip2 CompressFormat = "bzip2"
	FormatXZ    CompressFormat = "xz"
)

// Config holds the pipeline configuration assembled from CLI flags, the
// way the teacher's parseConfig builds a Config before dispatching to a
// Run (cmd/installer-scraper/main.go). Each cmd/streamkit subcommand
// builds one of these from its own flags and passes it to its run
// function rather than threading individual flag values by hand.
type Config struct {
	// I/O
	InputFile  string
	OutputFile string

	// Text codec settings
	BaseEncoding Base

	// AES settings (CFB only); KeyHex/IVHex are hex-encoded, decoded at
	// startup.
	KeyHex string
	IVHex  string

	// Compression settings
	Format     CompressFormat
	WithHeader bool
	Factor     float64
	GZipName   string

	// Pipeline-wide settings
	Digest       bool // tee the sink through a DigestTeeStream and report its sum
	BufferSize   int  // wraps the source in a buffering.BufferedInputStream when > 0
	ProgressStep int  // percent granularity for the copy callback; 0 disables it
}

// DefaultBufferSize mirrors buffering.DefaultBufferSize without importing
// that package into config. The CLI's --buffer-size flag does not use it:
// that flag defaults to 0 (no buffering).
const DefaultBufferSize = 32 * 1024
