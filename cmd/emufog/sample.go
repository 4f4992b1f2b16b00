package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/emufog/emufog-sub000/config"
)

func newSample(parent *cobra.Command) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample configuration",
		Example: fmt.Sprintf(`  %[1]s sample > emufog.toml
  %[1]s sample --file emufog.toml`, parent.CommandPath()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if file == "" {
				return config.New().Sample(cmd.OutOrStdout())
			}
			f, err := os.Create(file)
			if err != nil {
				return errors.WithStack(err)
			}
			if err := config.New().Sample(f); err != nil {
				f.Close()
				return err
			}
			return errors.WithStack(f.Close())
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Write the sample to file instead of stdout")
	return cmd
}
