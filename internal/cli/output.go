// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplaySortSummary], [DisplayBenchTable], [DisplayInfo].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatValues], [FormatExecutionDuration].
//
//   - Read* and Write* functions move element data between streams and the
//     filesystem. They handle parsing, file creation and directory setup.
//     Examples: [ReadInt32s], [WriteValues], [CreateOutputFile].

package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/vsort/internal/ui"
)

// Number is an element kind the CLI reads as text.
type Number interface {
	int32 | float32
}

// ReadInt32s parses whitespace separated base-10 integers.
func ReadInt32s(r io.Reader) ([]int32, error) {
	return readValues(r, func(tok string) (int32, error) {
		v, err := strconv.ParseInt(tok, 10, 32)
		return int32(v), err
	})
}

// ReadFloat32s parses whitespace separated floats. NaN and Inf are accepted.
func ReadFloat32s(r io.Reader) ([]float32, error) {
	return readValues(r, func(tok string) (float32, error) {
		v, err := strconv.ParseFloat(tok, 32)
		return float32(v), err
	})
}

func readValues[T Number](r io.Reader, parse func(string) (T, error)) ([]T, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	var out []T
	for i := 1; sc.Scan(); i++ {
		v, err := parse(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("input token %d %q: %w", i, sc.Text(), numError(err))
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return out, nil
}

// numError strips strconv's echo of the token, which the caller already quotes.
func numError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

// ReadBytes returns the raw input without one trailing line ending.
func ReadBytes(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if bytes.HasSuffix(data, []byte("\r\n")) {
		return data[:len(data)-2], nil
	}
	return bytes.TrimSuffix(data, []byte("\n")), nil
}

// FormatValues renders data as a single space separated line without the
// trailing newline.
func FormatValues[T Number](data []T) string {
	var sb strings.Builder
	writeValues(&sb, data)
	return sb.String()
}

// WriteValues writes data as one space separated line.
func WriteValues[T Number](w io.Writer, data []T) error {
	bw := bufio.NewWriter(w)
	writeValues(bw, data)
	bw.WriteByte('\n')
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// WriteBytes writes the sorted bytes followed by a newline.
func WriteBytes(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	bw.Write(data)
	bw.WriteByte('\n')
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

type byteWriter interface {
	io.Writer
	io.ByteWriter
}

func writeValues[T Number](w byteWriter, data []T) {
	var scratch [32]byte
	for i, v := range data {
		if i > 0 {
			w.WriteByte(' ')
		}
		w.Write(appendValue(scratch[:0], v))
	}
}

func appendValue[T Number](b []byte, v T) []byte {
	switch x := any(v).(type) {
	case int32:
		return strconv.AppendInt(b, int64(x), 10)
	case float32:
		return strconv.AppendFloat(b, float64(x), 'g', -1, 32)
	}
	return b
}

// OpenInput returns path for reading, or stdin when path is empty or "-".
func OpenInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return f, nil
}

// CreateOutputFile creates path, making parent directories as needed.
func CreateOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// SortSummary describes a completed sort for the non-quiet report.
type SortSummary struct {
	Kind     string
	Elements int
	Flags    string
	Duration time.Duration
	Output   string
}

// DisplaySortSummary prints a one-line report of a sort to out, which is
// stderr in normal use so the sorted data stays clean on stdout.
func DisplaySortSummary(out io.Writer, s SortSummary) {
	fmt.Fprintf(out, "%sSorted%s %s%d%s %s elements in %s%s%s (flags: %s)\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorBold(), s.Elements, ui.ColorReset(), s.Kind,
		ui.ColorYellow(), FormatExecutionDuration(s.Duration), ui.ColorReset(),
		s.Flags)
	if s.Output != "" {
		fmt.Fprintf(out, "Result written to %s%s%s\n", ui.ColorCyan(), s.Output, ui.ColorReset())
	}
}
