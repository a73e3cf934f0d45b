//go:build !unix

package ipc

func isAgain(error) bool {
	return false
}
