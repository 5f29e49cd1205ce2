package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/vsort"
	"github.com/agbru/vsort/internal/cli"
	"github.com/agbru/vsort/internal/config"
	apperrors "github.com/agbru/vsort/internal/errors"
)

// runSort reads the input, sorts it and writes one line of output.
func (a *Application) runSort(ctx context.Context, sorter *vsort.Sorter, out io.Writer) error {
	in, err := cli.OpenInput(a.Config.InputFile, a.Stdin)
	if err != nil {
		return err
	}
	payload, write, err := readPayload(a.Config.Kind, in)
	in.Close()
	if err != nil {
		return err
	}

	flags := a.Flags()
	start := time.Now()
	if o := sorter.SortContext(ctx, vsort.Request{Data: payload, Flags: flags}); o != vsort.Ok {
		return apperrors.SortError{Strategy: flags.String(), Cause: o.Err()}
	}
	elapsed := time.Since(start)

	dst := out
	if a.Config.OutputFile != "" {
		f, err := cli.CreateOutputFile(a.Config.OutputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		dst = f
	}
	if err := write(dst); err != nil {
		return err
	}

	if !a.Config.Quiet {
		cli.DisplaySortSummary(a.ErrWriter, cli.SortSummary{
			Kind:     a.Config.Kind,
			Elements: payloadLen(payload),
			Flags:    flags.String(),
			Duration: elapsed,
			Output:   a.Config.OutputFile,
		})
	}
	return nil
}

// readPayload parses r for kind and returns the payload with a writer for
// its sorted form.
func readPayload(kind string, r io.Reader) (vsort.Payload, func(io.Writer) error, error) {
	switch kind {
	case config.KindFloat32:
		data, err := cli.ReadFloat32s(r)
		return vsort.Float32Slice(data), func(w io.Writer) error { return cli.WriteValues(w, data) }, err
	case config.KindBytes:
		data, err := cli.ReadBytes(r)
		return vsort.ByteSlice(data), func(w io.Writer) error { return cli.WriteBytes(w, data) }, err
	case config.KindInt32:
		data, err := cli.ReadInt32s(r)
		return vsort.Int32Slice(data), func(w io.Writer) error { return cli.WriteValues(w, data) }, err
	}
	return nil, nil, apperrors.ValidationError{Field: "kind", Message: fmt.Sprintf("unknown kind %q", kind)}
}

func payloadLen(p vsort.Payload) int {
	switch d := p.(type) {
	case vsort.Int32Slice:
		return len(d)
	case vsort.Float32Slice:
		return len(d)
	case vsort.ByteSlice:
		return len(d)
	}
	return 0
}
