package testsupport

import (
	"os"
	"testing"
)

// Chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores the previous one when the test ends.
func Chdir(t testing.TB, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testsupport.Chdir: restore working directory: " + err.Error())
		}
	})
}
