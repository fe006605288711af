package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// tests run from the project root so that logs/ and sqlite files land in one place
	//
	//   in some_test.go,
	//   import (
	//     _ "liyu1981.xyz/maternity-monitor-service/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
}
