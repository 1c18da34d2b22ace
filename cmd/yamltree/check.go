package main

import (
	"fmt"
	"runtime"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var jobs int
	cmd := &cobra.Command{
		Use:   "check [flags] <file>...",
		Short: "Check that each file holds exactly one well-formed document",
		Long:  `Parse every file into a document tree, resolving anchors, aliases and merges, and report each problem with its path and position. Files are checked in parallel.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd, e, args, jobs)
		},
	}
	cmd.Flags().IntVar(&jobs, "jobs", 0, "max parallel workers (0=auto)")
	return cmd
}

type checkResult struct {
	src []byte
	err error
}

func runCheck(cmd *cobra.Command, e *env, files []string, jobs int) error {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]checkResult, len(files))

	g, gctx := errgroup.WithContext(cmdContext(cmd))
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			data, err := e.readInput(path)
			if err != nil {
				// Unreadable files abort the run; document errors do not.
				return err
			}
			_, perr := e.readerFor(path).ParseBytesToNode(data)
			results[i] = checkResult{src: data, err: perr}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, path := range files {
		r := results[i]
		if r.err != nil {
			failed++
			e.palette.report(e.stdout, path, r.src, r.err)
			continue
		}
		level.Debug(e.logger).Log("msg", "checked", "file", path)
		fmt.Fprintf(e.stdout, "%s: %s\n", path, e.palette.ok.Sprint("ok"))
	}
	if failed > 0 {
		return errors.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}
