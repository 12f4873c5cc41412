// Command simple-sftp uploads and downloads single files over SFTP.
package main

func main() {
	Execute()
}
