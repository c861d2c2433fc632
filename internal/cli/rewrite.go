package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// defaultLimit caps the outputs printed per input. DropParentSegment yields
// at most two; a hand-built transducer with epsilon loops can yield more.
const defaultLimit = 100

type rewriteOpts struct {
	transducer string // registered transducer name
	sep        string // separator character
	limit      int    // maximum outputs per input
}

func (c *CLI) rewriteCommand() *cobra.Command {
	opts := rewriteOpts{transducer: "collapse", sep: "/", limit: defaultLimit}

	cmd := &cobra.Command{
		Use:   "rewrite [strings...]",
		Short: "Feed strings through a transducer and print every output",
		Example: `  fstool rewrite a//b a///b
  fstool rewrite -t drop-parent /usr/lib src/main.go`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRewrite(cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.transducer, "transducer", "t", opts.transducer, "transducer: "+strings.Join(transducerNames(), ", "))
	cmd.Flags().StringVar(&opts.sep, "sep", opts.sep, "separator character")
	cmd.Flags().IntVar(&opts.limit, "limit", opts.limit, "maximum outputs per input")

	return cmd
}

func (c *CLI) runRewrite(w io.Writer, inputs []string, opts rewriteOpts) error {
	t, err := buildTransducer(opts.transducer, opts.sep)
	if err != nil {
		return err
	}
	c.Logger.Debug("built transducer", "name", opts.transducer, "states", t.NumStates())

	for _, in := range inputs {
		outs, ok := t.Outputs(in, opts.limit)
		switch {
		case !ok:
			printWarning(w, "%q has more than %d outputs", in, opts.limit)
		case len(outs) == 0:
			printError(w, "%q is rejected", in)
		default:
			printInfo(w, "%q", in)
			for _, out := range outs {
				printOutput(w, out)
			}
		}
	}
	return nil
}
