package main

import (
	"os"

	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/reoring/yamltree"
)

func newConvertCmd(opts *globalOptions) *cobra.Command {
	var to, output string
	cmd := &cobra.Command{
		Use:   "convert [flags] <file|->",
		Short: "Convert a document to JSON, MessagePack or YAML",
		Long:  `Read one document and write it in another format. Scalars that parse as booleans or numbers are typed accordingly for JSON and MessagePack.`,
		Args:  cobra.ExactArgs(1),
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
			b, err := convert(e, n, to)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = e.stdout.Write(b)
				return err
			}
			return errors.Wrapf(os.WriteFile(output, b, 0o644), "write %s", output)
		},
	}
	cmd.Flags().StringVar(&to, "to", "json", "target format (json|msgpack|yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func convert(e *env, n yamltree.Node, to string) ([]byte, error) {
	switch to {
	case "json":
		b, err := gojson.MarshalIndent(yamltree.InferValue(n), "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encode JSON")
		}
		return append(b, '\n'), nil
	case "msgpack":
		b, err := msgpack.Marshal(yamltree.InferValue(n))
		return b, errors.Wrap(err, "encode MessagePack")
	case "yaml":
		b, err := e.yaml.MarshalNode(n)
		return b, errors.Wrap(err, "encode YAML")
	}
	return nil, errors.Errorf("unknown target format %q (want json, msgpack or yaml)", to)
}
