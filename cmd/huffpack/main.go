// Command huffpack compresses and decompresses files with the huffpack
// container format.
//
// Usage:
//
//	huffpack compress   [flags] <file>
//	huffpack decompress [flags] <file>
//	huffpack inspect    [flags] <file>
//	huffpack config     [flags]
//
// Flags:
//
//	-o       output path (default compressed_<name>.bin or decompressed_<name>)
//	-codec   codec used inside frames: huffman, zstd, s2, lz4 or none
//	-raw     write a bare Huffman container instead of a frame
//	-config  YAML settings file
//	-v       debug logging
//
// Flags given on the command line override values from the settings file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/arloliu/huffpack/internal/config"
	"github.com/sirupsen/logrus"
)

var errUsage = errors.New("usage: huffpack <compress|decompress|inspect|config> [flags] [file]")

type cliFlags struct {
	output     string
	codec      string
	raw        bool
	configPath string
	verbose    bool
}

func main() {
	log := newLogger(os.Stderr)
	if err := run(os.Args[1:], os.Stdout, log); err != nil {
		log.WithError(err).Error("huffpack failed")
		os.Exit(1)
	}
}

func newLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	return log
}

// run executes one command. Reports go to stdout and progress to log.
func run(args []string, stdout io.Writer, log *logrus.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	command, args := args[0], args[1:]

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(log.Out)

	var f cliFlags
	fs.StringVar(&f.output, "o", "", "output path")
	fs.StringVar(&f.codec, "codec", "", "codec used inside frames")
	fs.BoolVar(&f.raw, "raw", false, "write a bare Huffman container")
	fs.StringVar(&f.configPath, "config", "", "YAML settings file")
	fs.BoolVar(&f.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(fs, &f)
	if err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.WithFields(logrus.Fields{
		"codec":  cfg.Codec,
		"raw":    cfg.Raw,
		"verify": cfg.Verify,
	}).Debug("effective settings")

	if command == "config" {
		out, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = stdout.Write(out)

		return err
	}

	if fs.NArg() != 1 {
		return errUsage
	}
	input := fs.Arg(0)

	switch command {
	case "compress":
		output := f.output
		if output == "" {
			output = compressedName(input)
		}

		return compressFile(cfg, input, output, log)
	case "decompress":
		output := f.output
		if output == "" {
			output = decompressedName(input)
		}

		return decompressFile(cfg, input, output, log)
	case "inspect":
		return inspectFile(cfg, input, stdout)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

// loadConfig reads the settings file and applies the flags that were set
// explicitly on the command line.
func loadConfig(fs *flag.FlagSet, f *cliFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "codec":
			cfg.Codec = f.codec
		case "raw":
			cfg.Raw = f.raw
		case "v":
			if f.verbose {
				cfg.LogLevel = logrus.DebugLevel.String()
			}
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func formatRatio(r float64) string {
	return strconv.FormatFloat(r, 'f', 3, 64)
}
