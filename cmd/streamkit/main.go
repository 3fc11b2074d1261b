// Command streamkit exposes the data-transformation core as a set of
// pipe-friendly subcommands: text codec encode/decode, AES CFB
// encrypt/decrypt, ZLib/GZip compress, and ZLib/GZip/Bzip2/XZ
// decompress, plus a
// combined pipe that chains several of them in one pass.
//
// Grounded on the teacher's cmd/installer-scraper/main.go: the same
// cobra root command with persistent logging flags
// (verbose/no-color/log-file) wired through setupLogging, and the same
// parseConfig-builds-a-Config-then-Run shape, generalized from a single
// scraper Run into one subcommand per pipeline stage.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/streamkit/internal/aescrypt"
	"github.com/deploymenttheory/streamkit/internal/buffering"
	"github.com/deploymenttheory/streamkit/internal/codec"
	"github.com/deploymenttheory/streamkit/internal/compress"
	"github.com/deploymenttheory/streamkit/internal/config"
	"github.com/deploymenttheory/streamkit/internal/logger"
	"github.com/deploymenttheory/streamkit/internal/pipeline"
	"github.com/deploymenttheory/streamkit/internal/stream"
	"github.com/deploymenttheory/streamkit/internal/transform"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "streamkit",
		Short: "Compose byte-stream transforms: text codecs, AES, compression",
		Long: `streamkit chains composable stream transforms - Base16/64/85 text
codecs, AES-CFB encryption, ZLib/GZip compression and ZLib/GZip/Bzip2/XZ
decompression - the same way
they can be composed programmatically as internal/stream and
internal/transform wrappers.`,
		PersistentPreRun: setupLogging,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose debugging output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("log-file", "", "log to file instead of stdout")

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newAESCmd(),
		newCompressCmd(),
		newDecompressCmd(),
		newPipeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("error executing command: %v", err)
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logger.LevelDebug)
		logger.Infof("debug logging enabled")
	} else {
		logger.SetLevel(logger.LevelInfo)
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor {
		logger.DisableColors()
	}

	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logger.Errorf("failed to open log file: %v", err)
		} else {
			logger.DisableColors()
			logger.Initialize(file, file, file, file)
			logger.Infof("logging to file: %s", logFile)
		}
	}
}

func ioFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "input file ('-' or empty for stdin)")
	cmd.Flags().StringP("output", "o", "", "output file ('-' or empty for stdout)")
}

// bufferingFlags adds the flags that feed config.Config's pipeline-wide
// settings shared by every transform subcommand.
func bufferingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("buffer-size", 0, "wrap the source in a read-ahead buffer of this size (0 disables it)")
	cmd.Flags().Int("progress-step", 0, "log copy progress every N percent (0 disables it)")
}

func ioAndBuffering(cmd *cobra.Command) (inputPath, outputPath string, bufferSize, progressStep int) {
	inputPath, _ = cmd.Flags().GetString("input")
	outputPath, _ = cmd.Flags().GetString("output")
	bufferSize, _ = cmd.Flags().GetInt("buffer-size")
	progressStep, _ = cmd.Flags().GetInt("progress-step")
	return
}

func openInput(path string) (*os.File, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func createOutput(path string) (*os.File, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

// openInputStream opens cfg.InputFile and wraps it as a stream.InputStream
// (taking ownership of the *os.File), applying cfg.BufferSize as a
// read-ahead window when set.
func openInputStream(cfg config.Config) (stream.InputStream, io.Closer, error) {
	f, err := openInput(cfg.InputFile)
	if err != nil {
		return nil, nil, err
	}
	fs, err := stream.NewFileInputStream(f)
	if err != nil {
		return nil, nil, err
	}
	if cfg.BufferSize > 0 {
		return buffering.NewBufferedInputStreamSize(fs, cfg.BufferSize), fs, nil
	}
	return fs, fs, nil
}

// createOutputStream creates cfg.OutputFile and wraps it as a
// stream.OutputStream, taking ownership of the *os.File.
func createOutputStream(cfg config.Config) (*stream.FileOutputStream, error) {
	f, err := createOutput(cfg.OutputFile)
	if err != nil {
		return nil, err
	}
	return stream.NewFileOutputStream(f)
}

// copyWithProgress runs CopyStream, logging progress every cfg.ProgressStep
// percent when set.
func copyWithProgress(cfg config.Config, src stream.InputStream, sink stream.OutputStream) (uint64, error) {
	if cfg.ProgressStep <= 0 {
		return pipeline.CopyStream(src, sink)
	}
	nextAt := cfg.ProgressStep
	return pipeline.CopyStream(src, sink, pipeline.WithCallback(func(current, total uint64) bool {
		if total == 0 || total == stream.SizeUnknown {
			return true
		}
		pct := int(current * 100 / total)
		if pct >= nextAt {
			logger.Debugf("progress: %d%%", pct)
			nextAt += cfg.ProgressStep
		}
		return true
	}))
}

func newEncodeCmd() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode raw bytes to Base16, Base64, or Base85 text",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, _ := cmd.Flags().GetString("input")
			outputPath, _ := cmd.Flags().GetString("output")
			cfg := config.Config{InputFile: inputPath, OutputFile: outputPath, BaseEncoding: config.Base(base)}
			return runEncode(cfg)
		},
	}
	ioFlags(cmd)
	cmd.Flags().StringVarP(&base, "base", "b", "base64", "text codec: base16|base64|base85")
	return cmd
}

func runEncode(cfg config.Config) error {
	f, err := openInput(cfg.InputFile)
	if err != nil {
		return err
	}
	defer f.Close()
	o, err := createOutput(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer o.Close()

	data, err := readAll(f)
	if err != nil {
		return err
	}

	var encoded string
	switch cfg.BaseEncoding {
	case config.Base16:
		encoded = codec.ToHexUpper(data)
	case config.Base64:
		need := codec.Base64EncodedLen(len(data))
		buf := make([]byte, need)
		n := 0
		if err := codec.EncodeBase64(data, buf, &n); err != nil {
			return err
		}
		encoded = string(buf[:n])
	case config.Base85:
		need := 0
		if err := codec.EncodeBase85(data, nil, &need); err != nil {
			return err
		}
		buf := make([]byte, need)
		n := 0
		if err := codec.EncodeBase85(data, buf, &n); err != nil {
			return err
		}
		encoded = string(buf[:n])
	default:
		return fmt.Errorf("unknown base codec %q", cfg.BaseEncoding)
	}

	_, err = o.Write([]byte(encoded))
	return err
}

func newDecodeCmd() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode Base16, Base64, or Base85 text to raw bytes",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, _ := cmd.Flags().GetString("input")
			outputPath, _ := cmd.Flags().GetString("output")
			cfg := config.Config{InputFile: inputPath, OutputFile: outputPath, BaseEncoding: config.Base(base)}
			return runDecode(cfg)
		},
	}
	ioFlags(cmd)
	cmd.Flags().StringVarP(&base, "base", "b", "base64", "text codec: base16|base64|base85")
	return cmd
}

func runDecode(cfg config.Config) error {
	f, err := openInput(cfg.InputFile)
	if err != nil {
		return err
	}
	defer f.Close()
	o, err := createOutput(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer o.Close()

	data, err := readAll(f)
	if err != nil {
		return err
	}

	var decoded []byte
	switch cfg.BaseEncoding {
	case config.Base16:
		need := codec.Base16DecodedLen(len(data))
		decoded = make([]byte, need)
		n := 0
		if err := codec.DecodeBase16(data, decoded, &n); err != nil {
			return err
		}
		decoded = decoded[:n]
	case config.Base64:
		need := codec.Base64DecodedLen(len(data))
		decoded = make([]byte, need)
		n := 0
		if err := codec.DecodeBase64(data, decoded, &n); err != nil {
			return err
		}
		decoded = decoded[:n]
	case config.Base85:
		need := 0
		if err := codec.DecodeBase85(data, nil, &need); err != nil {
			return err
		}
		decoded = make([]byte, need)
		n := 0
		if err := codec.DecodeBase85(data, decoded, &n); err != nil {
			return err
		}
		decoded = decoded[:n]
	default:
		return fmt.Errorf("unknown base codec %q", cfg.BaseEncoding)
	}

	_, err = o.Write(decoded)
	return err
}

func newAESCmd() *cobra.Command {
	var keyHex, ivHex string
	var decrypt bool
	cmd := &cobra.Command{
		Use:   "aes",
		Short: "Encrypt or decrypt with AES-CFB",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, outputPath, bufSize, progressStep := ioAndBuffering(cmd)
			cfg := config.Config{
				InputFile: inputPath, OutputFile: outputPath,
				KeyHex: keyHex, IVHex: ivHex,
				BufferSize: bufSize, ProgressStep: progressStep,
			}
			return runAES(cfg, decrypt)
		},
	}
	ioFlags(cmd)
	bufferingFlags(cmd)
	cmd.Flags().StringVar(&keyHex, "key", "", "hex-encoded AES key (16/24/32 bytes)")
	cmd.Flags().StringVar(&ivHex, "iv", "", "hex-encoded initialization vector")
	cmd.Flags().BoolVarP(&decrypt, "decrypt", "d", false, "decrypt instead of encrypt")
	cmd.MarkFlagRequired("key")
	cmd.MarkFlagRequired("iv")
	return cmd
}

func runAES(cfg config.Config, decrypt bool) error {
	key, err := hex.DecodeString(cfg.KeyHex)
	if err != nil {
		return fmt.Errorf("bad key hex: %w", err)
	}
	iv, err := hex.DecodeString(cfg.IVHex)
	if err != nil {
		return fmt.Errorf("bad iv hex: %w", err)
	}

	cipher := &aescrypt.Cipher{}
	if err := cipher.SetKey(key, len(key), iv, 16); err != nil {
		return err
	}
	defer cipher.Wipe()

	src, closer, err := openInputStream(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	sink, err := createOutputStream(cfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	if decrypt {
		aesIn := transform.NewAESInputStream(src, cipher)
		_, err := copyWithProgress(cfg, aesIn, sink)
		return err
	}

	aesOut := transform.NewAESOutputStream(sink, cipher)
	if _, err := copyWithProgress(cfg, src, aesOut); err != nil {
		return err
	}
	return aesOut.Close()
}

func methodFor(format config.CompressFormat) (compress.Method, error) {
	switch format {
	case config.FormatZlib:
		return compress.MethodZlib, nil
	case config.FormatGzip:
		return compress.MethodGZip, nil
	case config.FormatBzip2:
		return compress.MethodBzip2, nil
	case config.FormatXZ:
		return compress.MethodXZ, nil
	default:
		return 0, fmt.Errorf("unknown compression format %q", format)
	}
}

func newCompressCmd() *cobra.Command {
	var format string
	var factor float64
	var headerless, digest bool
	var gzipName string
	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Compress with ZLib or GZip",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, outputPath, bufSize, progressStep := ioAndBuffering(cmd)
			cfg := config.Config{
				InputFile: inputPath, OutputFile: outputPath,
				Format: config.CompressFormat(format), WithHeader: !headerless,
				Factor: factor, GZipName: gzipName, Digest: digest,
				BufferSize: bufSize, ProgressStep: progressStep,
			}
			return runCompress(cfg)
		},
	}
	ioFlags(cmd)
	bufferingFlags(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "zlib", "container: zlib|gzip")
	cmd.Flags().Float64Var(&factor, "factor", 0.6, "compression strength in [0,1]")
	cmd.Flags().BoolVar(&headerless, "headerless", false, "raw DEFLATE, no ZLib header (zlib only)")
	cmd.Flags().StringVar(&gzipName, "gzip-name", "", "original filename to embed in the GZip header (gzip only)")
	cmd.Flags().BoolVar(&digest, "digest", false, "tee the compressed output through a SHA3-256 digest and report it")
	return cmd
}

func runCompress(cfg config.Config) error {
	if cfg.Format == config.FormatBzip2 || cfg.Format == config.FormatXZ {
		return fmt.Errorf("compress: %q has no encoder, only zlib and gzip can be produced", cfg.Format)
	}

	src, closer, err := openInputStream(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	rawSink, err := createOutputStream(cfg)
	if err != nil {
		return err
	}
	defer rawSink.Close()

	var c *compress.Codec
	if cfg.Format == config.FormatGzip {
		c = compress.NewGZip(cfg.Factor)
		if cfg.GZipName != "" {
			c.SetFilename(cfg.GZipName)
		}
	} else {
		c = compress.NewZlib(cfg.WithHeader, cfg.Factor)
	}

	var sink stream.OutputStream = rawSink
	var digestTee *transform.DigestTeeStream
	if cfg.Digest {
		digestTee = transform.NewDigestTeeStream(rawSink)
		sink = digestTee
	}

	cOut, err := transform.NewCompressOutputStream(sink, c)
	if err != nil {
		return err
	}
	if _, err := copyWithProgress(cfg, src, cOut); err != nil {
		return err
	}
	if err := cOut.Close(); err != nil {
		return err
	}
	if digestTee != nil {
		logger.Infof("sha3-256: %x", digestTee.Sum())
	}
	return nil
}

func newDecompressCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "decompress",
		Short: "Decompress a ZLib, GZip, Bzip2, or XZ stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, outputPath, bufSize, progressStep := ioAndBuffering(cmd)
			cfg := config.Config{
				InputFile: inputPath, OutputFile: outputPath,
				Format:     config.CompressFormat(format),
				WithHeader: true, Factor: 0.6,
				BufferSize: bufSize, ProgressStep: progressStep,
			}
			return runDecompress(cfg)
		},
	}
	ioFlags(cmd)
	bufferingFlags(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "zlib", "container: zlib|gzip|bzip2|xz")
	return cmd
}

func runDecompress(cfg config.Config) error {
	method, err := methodFor(cfg.Format)
	if err != nil {
		return err
	}

	src, closer, err := openInputStream(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	sink, err := createOutputStream(cfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	if method == compress.MethodBzip2 || method == compress.MethodXZ {
		dec, err := compress.NewDecoderRegistry().Get(method)
		if err != nil {
			return err
		}
		// src and sink satisfy io.Reader/io.Writer directly; Decoder is
		// written against the standard streaming interfaces.
		_, err = dec.Decode(src, sink)
		return err
	}

	var c *compress.Codec
	if method == compress.MethodGZip {
		c = compress.NewGZip(cfg.Factor)
	} else {
		c = compress.NewZlib(cfg.WithHeader, cfg.Factor)
	}

	cIn, err := transform.NewDecompressInputStream(src, c)
	if err != nil {
		return err
	}
	defer cIn.Close()

	_, err = copyWithProgress(cfg, cIn, sink)
	return err
}

// newPipeCmd chains base64 decode -> AES decrypt -> decompress, the
// inverse of the common "compress then encrypt then encode for
// transport" shape, in one pass without an intermediate file.
func newPipeCmd() *cobra.Command {
	var keyHex, ivHex, format string
	var digest bool
	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Decode base64, decrypt AES-CFB, and decompress in one pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, outputPath, bufSize, progressStep := ioAndBuffering(cmd)
			cfg := config.Config{
				InputFile: inputPath, OutputFile: outputPath,
				KeyHex: keyHex, IVHex: ivHex,
				Format: config.CompressFormat(format), WithHeader: true, Factor: 0.6,
				Digest: digest, BufferSize: bufSize, ProgressStep: progressStep,
			}
			return runPipe(cfg)
		},
	}
	ioFlags(cmd)
	bufferingFlags(cmd)
	cmd.Flags().StringVar(&keyHex, "key", "", "hex-encoded AES key")
	cmd.Flags().StringVar(&ivHex, "iv", "", "hex-encoded initialization vector")
	cmd.Flags().StringVarP(&format, "format", "f", "zlib", "container: zlib|gzip")
	cmd.Flags().BoolVar(&digest, "digest", false, "tee the decoded output through a SHA3-256 digest and report it")
	cmd.MarkFlagRequired("key")
	cmd.MarkFlagRequired("iv")
	return cmd
}

func runPipe(cfg config.Config) error {
	key, err := hex.DecodeString(cfg.KeyHex)
	if err != nil {
		return fmt.Errorf("bad key hex: %w", err)
	}
	iv, err := hex.DecodeString(cfg.IVHex)
	if err != nil {
		return fmt.Errorf("bad iv hex: %w", err)
	}

	cipher := &aescrypt.Cipher{}
	if err := cipher.SetKey(key, len(key), iv, 16); err != nil {
		return err
	}
	defer cipher.Wipe()

	src, closer, err := openInputStream(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	rawSink, err := createOutputStream(cfg)
	if err != nil {
		return err
	}
	defer rawSink.Close()

	b64 := transform.NewBase64InputStream(src)
	aesIn := transform.NewAESInputStream(b64, cipher)

	var c *compress.Codec
	if cfg.Format == config.FormatGzip {
		c = compress.NewGZip(cfg.Factor)
	} else {
		c = compress.NewZlib(cfg.WithHeader, cfg.Factor)
	}

	decIn, err := transform.NewDecompressInputStream(aesIn, c)
	if err != nil {
		return err
	}
	defer decIn.Close()

	var sink stream.OutputStream = rawSink
	var digestTee *transform.DigestTeeStream
	if cfg.Digest {
		digestTee = transform.NewDigestTeeStream(rawSink)
		sink = digestTee
	}

	n, err := copyWithProgress(cfg, decIn, sink)
	if err != nil {
		return err
	}
	logger.Infof("wrote %d bytes", n)
	if digestTee != nil {
		logger.Infof("sha3-256: %x", digestTee.Sum())
	}
	return nil
}

func readAll(f *os.File) ([]byte, error) {
	var buf []byte
	chunk := make([]byte, 32*1024)
	for {
		n, err := f.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return buf, err
		}
	}
	return buf, nil
}
