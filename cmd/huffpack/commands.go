package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/arloliu/huffpack"
	"github.com/arloliu/huffpack/compress"
	"github.com/arloliu/huffpack/format"
	"github.com/arloliu/huffpack/frame"
	"github.com/arloliu/huffpack/huffman"
	"github.com/arloliu/huffpack/internal/config"
	"github.com/sirupsen/logrus"
)

var errVerifyFailed = errors.New("compressed output does not decode to the input")

func compressFile(cfg config.Config, input, output string, log *logrus.Logger) error {
	data, err := readInput(input, cfg.MaxInputBytes)
	if err != nil {
		return err
	}

	comp, err := cfg.Compression()
	if err != nil {
		return err
	}

	start := time.Now()
	var out []byte
	if cfg.Raw {
		out, err = huffpack.Compress(data)
	} else {
		out, err = huffpack.Pack(data, frame.WithCompression(comp))
	}
	if err != nil {
		return fmt.Errorf("compress %s: %w", input, err)
	}

	stats := compress.CompressionStats{
		Algorithm:         comp,
		OriginalSize:      int64(len(data)),
		CompressedSize:    int64(len(out)),
		CompressionTimeNs: time.Since(start).Nanoseconds(),
	}

	if cfg.Verify {
		start = time.Now()
		restored, err := huffpack.Unpack(out)
		if err != nil {
			return fmt.Errorf("%w: %w", errVerifyFailed, err)
		}
		if !bytes.Equal(restored, data) {
			return errVerifyFailed
		}
		stats.DecompressionTimeNs = time.Since(start).Nanoseconds()
	}

	if err := writeAtomic(output, out); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"file":      output,
		"codec":     stats.Algorithm.String(),
		"in_bytes":  stats.OriginalSize,
		"out_bytes": stats.CompressedSize,
		"ratio":     formatRatio(stats.CompressionRatio()),
	}).Info("compressed")
	log.WithFields(logrus.Fields{
		"compress_ns":   stats.CompressionTimeNs,
		"decompress_ns": stats.DecompressionTimeNs,
		"savings":       formatRatio(stats.SpaceSavings()),
	}).Debug("timing")

	return nil
}

func decompressFile(cfg config.Config, input, output string, log *logrus.Logger) error {
	data, err := readInput(input, cfg.MaxInputBytes)
	if err != nil {
		return err
	}

	codec := format.CompressionHuffman
	var out []byte
	if frame.IsFramed(data) {
		h, err := frame.ParseHeader(data)
		if err != nil {
			return fmt.Errorf("decompress %s: %w", input, err)
		}
		codec = h.Compression
		out, err = huffpack.Unpack(data, frame.WithMaxSize(uint64(cfg.MaxInputBytes)))
		if err != nil {
			return fmt.Errorf("decompress %s: %w", input, err)
		}
	} else {
		out, err = huffpack.Decompress(data, huffman.WithMaxSize(int(cfg.MaxInputBytes)))
		if err != nil {
			return fmt.Errorf("decompress %s: %w", input, err)
		}
	}

	if err := writeAtomic(output, out); err != nil {
		return err
	}

	stats := compress.CompressionStats{
		Algorithm:      codec,
		OriginalSize:   int64(len(out)),
		CompressedSize: int64(len(data)),
	}
	log.WithFields(logrus.Fields{
		"file":      output,
		"codec":     stats.Algorithm.String(),
		"in_bytes":  stats.CompressedSize,
		"out_bytes": stats.OriginalSize,
		"ratio":     formatRatio(stats.CompressionRatio()),
	}).Info("decompressed")

	return nil
}

func inspectFile(cfg config.Config, input string, w io.Writer) error {
	data, err := readInput(input, cfg.MaxInputBytes)
	if err != nil {
		return err
	}

	if frame.IsFramed(data) {
		h, err := frame.ParseHeader(data)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", input, err)
		}
		_, err = fmt.Fprintf(w, "Frame{\n\tVersion = %d\n\tCompression = %s\n\tBigEndian = %t\n\tOriginalSize = %d\n\tChecksum = %#016x\n}\n",
			h.Version, h.Compression, h.IsBigEndian(), h.OriginalSize, h.Checksum)
		if err != nil {
			return err
		}
	}

	info, err := huffpack.Inspect(data)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", input, err)
	}
	_, err = info.Dump(w)

	return err
}
