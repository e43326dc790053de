package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/huffpack"
	"github.com/arloliu/huffpack/errs"
	"github.com/arloliu/huffpack/format"
	"github.com/arloliu/huffpack/frame"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	return newLogger(io.Discard)
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestCompressedName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare", in: "report.txt", want: "compressed_report.txt.bin"},
		{name: "directory", in: filepath.Join("data", "a.log"), want: filepath.Join("data", "compressed_a.log.bin")},
		{name: "already compressed", in: "compressed_x.bin", want: "compressed_compressed_x.bin.bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, compressedName(tt.in))
		})
	}
}

func TestDecompressedName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "prefix and suffix", in: "compressed_report.txt.bin", want: "decompressed_report.txt"},
		{name: "suffix only", in: "report.bin", want: "decompressed_report"},
		{name: "prefix only", in: "compressed_report", want: "decompressed_report"},
		{name: "neither", in: "report.huff", want: "decompressed_report.huff"},
		{name: "strips once", in: "compressed_compressed_a.bin.bin", want: "decompressed_compressed_a.bin"},
		{name: "directory", in: filepath.Join("out", "compressed_a.bin"), want: filepath.Join("out", "decompressed_a")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, decompressedName(tt.in))
		})
	}
}

func TestReadInput_Limit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in", []byte("0123456789"))

	data, err := readInput(path, 10)
	require.NoError(t, err)
	require.Equal(t, []byte("0123456789"), data)

	_, err = readInput(path, 9)
	require.ErrorIs(t, err, errs.ErrInputTooLarge)

	_, err = readInput(filepath.Join(dir, "missing"), 10)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	require.NoError(t, writeAtomic(path, []byte("first")))
	require.NoError(t, writeAtomic(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestRun_CompressDecompress(t *testing.T) {
	input := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog\n"), 50)

	tests := []struct {
		name  string
		flags []string
		codec format.CompressionType
		raw   bool
	}{
		{name: "default frame", codec: format.CompressionHuffman},
		{name: "raw container", flags: []string{"-raw"}, raw: true},
		{name: "zstd frame", flags: []string{"-codec", "zstd"}, codec: format.CompressionZstd},
		{name: "none frame", flags: []string{"-codec", "none", "-v"}, codec: format.CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := writeFile(t, dir, "fox.txt", input)

			args := append([]string{"compress"}, tt.flags...)
			require.NoError(t, run(append(args, src), io.Discard, testLogger()))

			packed, err := os.ReadFile(filepath.Join(dir, "compressed_fox.txt.bin"))
			require.NoError(t, err)
			if tt.raw {
				require.False(t, frame.IsFramed(packed))
				want, err := huffpack.Compress(input)
				require.NoError(t, err)
				require.Equal(t, want, packed)
			} else {
				h, err := frame.ParseHeader(packed)
				require.NoError(t, err)
				require.Equal(t, tt.codec, h.Compression)
				require.Equal(t, uint64(len(input)), h.OriginalSize)
			}

			compressed := filepath.Join(dir, "compressed_fox.txt.bin")
			require.NoError(t, run([]string{"decompress", compressed}, io.Discard, testLogger()))

			got, err := os.ReadFile(filepath.Join(dir, "decompressed_fox.txt"))
			require.NoError(t, err)
			require.Equal(t, input, got)
		})
	}
}

func TestRun_OutputFlag(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.txt", []byte("abracadabra"))
	dst := filepath.Join(dir, "custom.huff")

	require.NoError(t, run([]string{"compress", "-o", dst, src}, io.Discard, testLogger()))
	require.FileExists(t, dst)

	back := filepath.Join(dir, "back.txt")
	require.NoError(t, run([]string{"decompress", "-o", back, dst}, io.Discard, testLogger()))

	got, err := os.ReadFile(back)
	require.NoError(t, err)
	require.Equal(t, []byte("abracadabra"), got)
}

func TestRun_EmptyFile(t *testing.T) {
	for _, raw := range []bool{false, true} {
		dir := t.TempDir()
		src := writeFile(t, dir, "empty", nil)

		args := []string{"compress", src}
		if raw {
			args = []string{"compress", "-raw", src}
		}
		require.NoError(t, run(args, io.Discard, testLogger()))
		require.NoError(t, run([]string{"decompress", filepath.Join(dir, "compressed_empty.bin")}, io.Discard, testLogger()))

		got, err := os.ReadFile(filepath.Join(dir, "decompressed_empty"))
		require.NoError(t, err)
		require.Empty(t, got)
	}
}

func TestRun_Inspect(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "aab", []byte("aab"))

	require.NoError(t, run([]string{"compress", src}, io.Discard, testLogger()))

	var out bytes.Buffer
	require.NoError(t, run([]string{"inspect", filepath.Join(dir, "compressed_aab.bin")}, &out, testLogger()))
	require.Contains(t, out.String(), "Frame{")
	require.Contains(t, out.String(), "Compression = Huffman")
	require.Contains(t, out.String(), "Container{")
	require.Contains(t, out.String(), `Encode(0x61) = "1"`)

	raw, err := huffpack.Compress([]byte("aab"))
	require.NoError(t, err)
	rawPath := writeFile(t, dir, "raw.bin", raw)

	out.Reset()
	require.NoError(t, run([]string{"inspect", rawPath}, &out, testLogger()))
	require.NotContains(t, out.String(), "Frame{")
	require.Contains(t, out.String(), "Container{")
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "huffpack.yaml", []byte("codec: lz4\nverify: false\n"))

	var out bytes.Buffer
	require.NoError(t, run([]string{"config", "-config", cfgPath, "-v"}, &out, testLogger()))
	require.Contains(t, out.String(), "codec: lz4")
	require.Contains(t, out.String(), "verify: false")
	require.Contains(t, out.String(), "log_level: debug")

	out.Reset()
	require.NoError(t, run([]string{"config", "-config", cfgPath, "-codec", "s2"}, &out, testLogger()))
	require.Contains(t, out.String(), "codec: s2")
}

func TestRun_MaxInputBytes(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "huffpack.yaml", []byte("max_input_bytes: 4\n"))
	src := writeFile(t, dir, "big", []byte("too large"))

	err := run([]string{"compress", "-config", cfgPath, src}, io.Discard, testLogger())
	require.ErrorIs(t, err, errs.ErrInputTooLarge)
	require.NoFileExists(t, filepath.Join(dir, "compressed_big.bin"))
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a", []byte("a"))
	junk := writeFile(t, dir, "junk.bin", []byte{9, '1', 'a', 0})

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "no command", args: nil, want: errUsage},
		{name: "no file", args: []string{"compress"}, want: errUsage},
		{name: "two files", args: []string{"compress", src, src}, want: errUsage},
		{name: "unknown command", args: []string{"explode", src}, want: errUsage},
		{name: "unknown codec", args: []string{"compress", "-codec", "brotli", src}, want: errs.ErrInvalidConfig},
		{name: "raw needs huffman", args: []string{"compress", "-raw", "-codec", "zstd", src}, want: errs.ErrInvalidConfig},
		{name: "malformed container", args: []string{"decompress", junk}, want: errs.ErrMalformedContainer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, io.Discard, testLogger())
			require.ErrorIs(t, err, tt.want)
		})
	}
}
