package errx_test

import (
	"fmt"
	"os"

	"excep/pkg/errx"
)

func Example() {
	err := errx.Wrap(errx.ReadFailed, errx.New(errx.PermissionDenied))

	if rerr := errx.Report(os.Stdout, err); rerr != nil {
		fmt.Println(errx.UserString(rerr))
	}
	fmt.Println(errx.HasKind(err, errx.PermissionDenied))
	// Output:
	// Threw the ReadOperationFailedException
	// Threw the PermissionDeniedException
	// true
}

func ExampleNameOf() {
	fmt.Println(errx.NameOf(130))
	fmt.Println(errx.NameOf(3))
	// Output:
	// InvalidArgumentException
	// UnknownException
}
