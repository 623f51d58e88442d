package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calumari/cfgkv"
	"github.com/calumari/cfgkv/internal/settings"
)

func newDumpCmd(a *app) *cobra.Command {
	var format string
	c := &cobra.Command{
		Use:   "dump FILE",
		Short: "Parse FILE and print it as native, JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.settings.Output.Format
			}
			return a.dump(cmd, args[0], format)
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "", "output format: native, json or yaml (default from settings)")
	return c
}

func (a *app) dump(cmd *cobra.Command, path, format string) error {
	if err := settings.CheckFormat(format); err != nil {
		return err
	}
	doc, err := a.parse(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch format {
	case settings.FormatJSON:
		if err := cfgkv.EncodeJSON(out, doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(out)
		return err
	case settings.FormatYAML:
		return cfgkv.EncodeYAML(out, doc)
	default:
		_, err = doc.WriteTo(out)
		return err
	}
}
