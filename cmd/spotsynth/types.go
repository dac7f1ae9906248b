// SPDX-License-Identifier: MIT
// Package: spotsynth/cmd/spotsynth

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/spotsynth/composition"
)

func newTypesCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the dataset types",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, dt := range composition.AllDatasetTypes() {
				if _, err := fmt.Fprintf(stdout, "%s\t%s\n", dt, dt.Family()); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
