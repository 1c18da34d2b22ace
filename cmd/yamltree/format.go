package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

func newFmtCmd(opts *globalOptions) *cobra.Command {
	var showDiff, write bool
	cmd := &cobra.Command{
		Use:   "fmt [flags] <file>...",
		Short: "Rewrite documents in canonical form",
		Long:  `Re-emit each document from its resolved tree using the configured output styles. Aliases and merges are expanded and comments are not kept.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			if write && showDiff {
				return errors.New("--diff and --write cannot be used together")
			}
			for _, path := range args {
				if write && path == "-" {
					return errors.New("--write needs a file, not stdin")
				}
				if err := formatFile(e, path, showDiff, write); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "print a line diff instead of the formatted document")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	return cmd
}

func formatFile(e *env, path string, showDiff, write bool) error {
	n, src, err := e.parseFile(path)
	if err != nil {
		e.palette.report(e.stderr, path, src, err)
		return errors.Errorf("%s is invalid", path)
	}
	out, err := e.yaml.MarshalNode(n)
	if err != nil {
		return errors.Wrapf(err, "format %s", path)
	}
	switch {
	case write:
		if string(out) == string(src) {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return errors.Wrapf(err, "stat %s", path)
		}
		level.Debug(e.logger).Log("msg", "rewriting", "file", path, "bytes", len(out))
		return errors.Wrapf(os.WriteFile(path, out, info.Mode().Perm()), "write %s", path)
	case showDiff:
		writeLineDiff(e.stdout, e.palette, path, string(src), string(out))
		return nil
	}
	_, err = e.stdout.Write(out)
	return err
}

// writeLineDiff prints a whole-line diff between a and b. Nothing is printed
// when they are equal.
func writeLineDiff(w io.Writer, p palette, name, a, b string) {
	if a == b {
		return
	}
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	fmt.Fprintf(w, "%s\n%s\n", p.gone.Sprintf("--- %s", name), p.added.Sprintf("+++ %s (formatted)", name))
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				fmt.Fprintln(w, p.gone.Sprint("-"+line))
			case diffmatchpatch.DiffInsert:
				fmt.Fprintln(w, p.added.Sprint("+"+line))
			default:
				fmt.Fprintln(w, " "+line)
			}
		}
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
