// SPDX-License-Identifier: MIT
// Package: spotsynth/cmd/spotsynth
//
// root.go — command tree.

package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "spotsynth",
		Short:         "Generate synthetic spatial transcriptomics spots from single-cell data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.AddCommand(newTypesCmd(stdout))
	root.AddCommand(newGenerateCmd(stderr))
	root.AddCommand(newImportCmd(stderr))

	return root
}
