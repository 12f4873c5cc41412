package main

import (
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newDownloadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "download <remote-path> <local-file>",
		Short: "Download a remote file to a local path",
		Long:  "Download a remote file to a local path. The local file is written in place, so a failed transfer may leave a partial file.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			remotePath, localPath := args[0], args[1]

			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}

			if !opts.progress {
				return svc.Download(remotePath, localPath)
			}

			bar := newProgressBar(cmd, -1, "downloading "+path.Base(remotePath))
			err = svc.OnDownload(remotePath, func(r io.Reader) error {
				localFile, err := os.Create(localPath)
				if err != nil {
					return fmt.Errorf("failed to create local file: %w", err)
				}
				if _, err := io.Copy(io.MultiWriter(localFile, bar), r); err != nil {
					localFile.Close()
					return fmt.Errorf("failed to copy file content: %w", err)
				}
				return localFile.Close()
			})
			if err != nil {
				return err
			}
			return bar.Finish()
		},
	}
}

// newProgressBar writes to the command's stderr. A negative size shows a spinner.
func newProgressBar(cmd *cobra.Command, size int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}
