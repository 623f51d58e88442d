package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calumari/cfgkv"
)

func newGetCmd(a *app) *cobra.Command {
	var (
		array bool
		index int
		raw   bool
	)
	c := &cobra.Command{
		Use:   "get FILE KEY",
		Short: "Print the value of the first entry named KEY",
		Long: `Print the value of the first entry named KEY.

Primitive entries are looked up by default; --array looks up array entries
instead, and --index selects a single element of the array.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.parse(args[0])
			if err != nil {
				return err
			}
			key := args[1]
			out := cmd.OutOrStdout()

			if !array {
				if cmd.Flags().Changed("index") {
					return fmt.Errorf("--index requires --array")
				}
				p, ok := doc.Primitive(key)
				if !ok {
					return fmt.Errorf("no primitive entry %q", key)
				}
				_, err := fmt.Fprintln(out, render(p, raw))
				return err
			}

			arr, ok := doc.Array(key)
			if !ok {
				return fmt.Errorf("no array entry %q", key)
			}
			if !cmd.Flags().Changed("index") {
				_, err := fmt.Fprintln(out, arr.String())
				return err
			}
			p, ok := arr.Element(index)
			if !ok {
				return fmt.Errorf("index %d out of range for %q (length %d)", index, key, arr.Len())
			}
			_, err = fmt.Fprintln(out, render(p, raw))
			return err
		},
	}
	c.Flags().BoolVarP(&array, "array", "a", false, "look up an array entry")
	c.Flags().IntVarP(&index, "index", "i", 0, "print only this array element")
	c.Flags().BoolVarP(&raw, "raw", "r", false, "print text values without quotes")
	return c
}

func render(p cfgkv.Primitive, raw bool) string {
	if s, ok := p.Str(); ok && raw {
		return s
	}
	return p.String()
}
