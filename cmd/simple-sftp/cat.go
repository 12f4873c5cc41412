package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newCatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <remote-path>",
		Short: "Write a remote file to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}
			return svc.OnDownload(args[0], func(r io.Reader) error {
				_, err := io.Copy(cmd.OutOrStdout(), r)
				return err
			})
		},
	}
}
