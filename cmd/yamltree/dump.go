package main

import (
	"fmt"
	"io"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/reoring/yamltree"
)

func newDumpCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump [flags] <file|->",
		Short: "Print the parsed document tree",
		Long: `Print the document after anchors, aliases and merges have been resolved.

Formats:
  tree   indented node kinds with positions
  paths  one line per leaf: path, position and content
  json   plain JSON with scalars typed as booleans or numbers where they parse`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			n, src, err := e.parseFile(args[0])
			if err != nil {
				e.palette.report(e.stderr, args[0], src, err)
				return errors.New("document is invalid")
			}
			return dump(e.stdout, n, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "tree", "output format (tree|paths|json)")
	return cmd
}

func dump(w io.Writer, n yamltree.Node, format string) error {
	switch format {
	case "tree":
		dumpTree(w, n, "", 0)
		return nil
	case "paths":
		dumpPaths(w, n)
		return nil
	case "json":
		b, err := gojson.MarshalIndent(yamltree.InferValue(n), "", "  ")
		if err != nil {
			return errors.Wrap(err, "encode JSON")
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	}
	return errors.Errorf("unknown dump format %q", format)
}

func dumpTree(w io.Writer, n yamltree.Node, label string, depth int) {
	indent := strings.Repeat("  ", depth)
	loc := n.Location()
	switch v := n.(type) {
	case *yamltree.Scalar:
		fmt.Fprintf(w, "%s%sscalar %q (%d:%d)\n", indent, label, v.Content(), loc.Line, loc.Column)
	case *yamltree.Null:
		fmt.Fprintf(w, "%s%snull (%d:%d)\n", indent, label, loc.Line, loc.Column)
	case *yamltree.List:
		fmt.Fprintf(w, "%s%slist[%d] (%d:%d)\n", indent, label, v.Len(), loc.Line, loc.Column)
		for i, it := range v.Items() {
			dumpTree(w, it, fmt.Sprintf("[%d] ", i), depth+1)
		}
	case *yamltree.Map:
		fmt.Fprintf(w, "%s%smap{%d} (%d:%d)\n", indent, label, v.Len(), loc.Line, loc.Column)
		for _, e := range v.Entries() {
			dumpTree(w, e.Value, e.Key.Content()+": ", depth+1)
		}
	case *yamltree.Tagged:
		fmt.Fprintf(w, "%s%stagged %s (%d:%d)\n", indent, label, v.Tag(), loc.Line, loc.Column)
		dumpTree(w, v.Inner(), "", depth+1)
	}
}

func dumpPaths(w io.Writer, n yamltree.Node) {
	switch v := n.(type) {
	case *yamltree.List:
		if v.Len() == 0 {
			fmt.Fprintf(w, "%s\t%s\t[]\n", v.Path(), v.Location())
		}
		for _, it := range v.Items() {
			dumpPaths(w, it)
		}
	case *yamltree.Map:
		if v.Len() == 0 {
			fmt.Fprintf(w, "%s\t%s\t{}\n", v.Path(), v.Location())
		}
		for _, e := range v.Entries() {
			dumpPaths(w, e.Value)
		}
	case *yamltree.Tagged:
		dumpPaths(w, v.Inner())
	default:
		fmt.Fprintf(w, "%s\t%s\t%s\n", n.Path(), n.Location(), n.ContentString())
	}
}
