// Package report provides per-file event reporting for a download run.
//
// Each task emits exactly one console line per attempt (skipped,
// downloading, succeeded, or one of the failure categories), mirrored
// to a structured logrus sink. A final summary line closes the run.
//
// # Output Format
//
//	[*] Locating 'pdf' files...
//	[+] Downloading: report.pdf
//	[-] File already exists: cover.pdf
//	[!] Timeout occurred while downloading https://ex.com/big.pdf
//
//	[*] Done: 4 downloaded, 1 skipped, 1 failed
package report
