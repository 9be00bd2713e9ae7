package utils

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// AppendIfMissing appends an item if it's missing in the slice, returns appended slice and true
// Otherwise, return the original slice and false
func AppendIfMissing(slice []common.Address, addr common.Address) ([]common.Address, bool) {
	for _, ele := range slice {
		if ele == addr {
			return slice, false
		}
	}
	return append(slice, addr), true
}

// PrintError prints the given error in the extended format (%+v) onto stderr.
func PrintError(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
}

// FatalError prints the given error in the extended format (%+v) onto stderr,
// then exits with status 1.
func FatalError(err error) {
	PrintError(err)
	os.Exit(1)
}

// FatalErrMsg prints the given error wrapped with the given message in the
// extended format (%+v) onto stderr, then exits with status 1.
func FatalErrMsg(err error, format string, args ...interface{}) {
	FatalError(errors.WithMessagef(err, format, args...))
}
