// Package simplesftp provides a small façade for moving files over SSH/SFTP.
//
// Every operation opens its own SSH session and SFTP channel, runs the
// transfer, and tears both down before returning. There is no pooling, no
// retry and no shared state between calls.
//
// # Basic Usage
//
// Upload a local file and download it again:
//
//	client := simplesftp.NewClient(simplesftp.Config{
//		Host:     "example.com",
//		Port:     22,
//		Username: "deploy",
//		Password: os.Getenv("SFTP_PASSWORD"),
//	})
//
//	if err := client.UploadFile("report.csv", "/upload/report.csv"); err != nil {
//		log.Fatal(err)
//	}
//	if err := client.Download("/upload/report.csv", "copy.csv"); err != nil {
//		log.Fatal(err)
//	}
//
// # Streams
//
// Upload accepts any io.Reader. OnDownload hands the open remote stream to a
// callback and closes it afterwards:
//
//	err := client.OnDownload("/upload/report.csv", func(r io.Reader) error {
//		_, err := io.Copy(os.Stdout, r)
//		return err
//	})
//
// # Errors
//
// Upload failures match ErrUpload and download failures match ErrDownload
// via errors.Is. The underlying cause (for example os.ErrNotExist for a
// missing remote file) stays reachable through the same error chain.
//
// Download writes straight into the destination file. A failed download may
// leave a partial file behind.
package simplesftp
