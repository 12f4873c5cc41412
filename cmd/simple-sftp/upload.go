package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newUploadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <local-file> <remote-path>",
		Short: "Upload a local file to the remote server",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			localPath, remotePath := args[0], args[1]

			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}

			if !opts.progress {
				return svc.UploadFile(localPath, remotePath)
			}

			localFile, err := os.Open(localPath)
			if err != nil {
				return fmt.Errorf("failed to open local file: %w", err)
			}
			defer localFile.Close()

			info, err := localFile.Stat()
			if err != nil {
				return fmt.Errorf("failed to stat local file: %w", err)
			}

			bar := newProgressBar(cmd, info.Size(), "uploading "+filepath.Base(localPath))
			if err := svc.Upload(io.TeeReader(localFile, bar), remotePath); err != nil {
				return err
			}
			return bar.Finish()
		},
	}
}
