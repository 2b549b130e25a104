package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wippyai/abigen/codegen"
	"github.com/wippyai/abigen/internal/artifact"
	"github.com/wippyai/abigen/internal/driver"
	"github.com/wippyai/abigen/internal/manifest"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [abigen.toml]",
		Short: "Generate every unit of a manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := manifest.FileName
			if len(args) == 1 {
				path = args[0]
			}
			m, err := manifest.Load(path)
			if err != nil {
				return err
			}
			if !cmd.Root().PersistentFlags().Changed("log-level") {
				codegen.SetLogger(newLogger(m.Level))
			}

			jobs, err := cmd.Flags().GetInt("jobs")
			if err != nil {
				return err
			}
			out, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			if out != "" {
				m.Output.Path = out
			}
			if cmd.Flags().Changed("format") {
				f, err := cmd.Flags().GetString("format")
				if err != nil {
					return err
				}
				switch manifest.Format(f) {
				case manifest.FormatYul, manifest.FormatMsgpack:
					m.Output.Format = manifest.Format(f)
				default:
					return fmt.Errorf("invalid --format %q (yul|msgpack)", f)
				}
			}

			units, err := driver.Build(context.Background(), m, jobs)
			if err != nil {
				return err
			}
			return writeOutput(cmd, m.Output, units)
		},
	}
	cmd.Flags().IntP("jobs", "j", 0, "units generated in parallel (0 = manifest or CPU count)")
	cmd.Flags().StringP("output", "o", "", "output path (overrides [output].path)")
	cmd.Flags().String("format", "yul", "output format (yul|msgpack)")
	return cmd
}

func writeOutput(cmd *cobra.Command, out manifest.Output, units []artifact.Unit) error {
	if out.Format == manifest.FormatMsgpack {
		if out.Path == "" {
			return artifact.Write(cmd.OutOrStdout(), units)
		}
		return artifact.WriteFile(out.Path, units)
	}

	text, err := driver.Render(units)
	if err != nil {
		return err
	}
	if out.Path == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out.Path, []byte(text), 0o644)
}
