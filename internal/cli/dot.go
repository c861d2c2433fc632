package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rodneyxr/brics-automaton/pkg/automaton"
	"github.com/rodneyxr/brics-automaton/pkg/errors"
	"github.com/rodneyxr/brics-automaton/pkg/render/nodelink"
)

type dotOpts struct {
	transducer string   // registered transducer name
	sep        string   // separator character
	inputs     []string // when set, draw the transducer's image of these strings
	output     string   // output file; .svg renders, anything else gets DOT text
	detailed   bool     // show arena handles in state labels
}

func (c *CLI) dotCommand() *cobra.Command {
	opts := dotOpts{transducer: "collapse", sep: "/"}

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Draw a transducer, or the automaton it produces, as a Graphviz diagram",
		Example: `  fstool dot -t drop-parent -o drop.svg
  fstool dot -i a//b -i c///d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDot(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.transducer, "transducer", "t", opts.transducer, "transducer: "+strings.Join(transducerNames(), ", "))
	cmd.Flags().StringVar(&opts.sep, "sep", opts.sep, "separator character")
	cmd.Flags().StringArrayVarP(&opts.inputs, "input", "i", nil, "input string (repeatable); draws the output automaton instead of the transducer")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.svg, .dot or .gv); DOT goes to stdout when empty")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show arena handles in state labels")

	return cmd
}

func (c *CLI) runDot(w io.Writer, opts dotOpts) error {
	t, err := buildTransducer(opts.transducer, opts.sep)
	if err != nil {
		return err
	}

	nopts := nodelink.Options{Detailed: opts.detailed}
	var dot string
	if len(opts.inputs) == 0 {
		dot = nodelink.TransducerToDOT(t, nopts)
	} else {
		a := t.Intersect(automaton.MakeStringSet(opts.inputs...))
		c.Logger.Debug("intersected", "inputs", len(opts.inputs), "states", a.NumStates())
		dot = nodelink.ToDOT(a, nopts)
	}

	data := []byte(dot)
	switch ext := strings.ToLower(filepath.Ext(opts.output)); ext {
	case "", ".dot", ".gv":
	case ".svg":
		if data, err = nodelink.RenderSVG(dot); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.output)
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "output format %s (use .svg, .dot or .gv)", ext)
	}

	if opts.output == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printSuccess(w, "Wrote %s diagram", opts.transducer)
	printFile(w, opts.output)
	return nil
}
