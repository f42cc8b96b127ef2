// Package errx provides structured error reporting built on a closed set of
// error kinds.
//
// Each record carries:
//   - A Kind from a fixed registry (e.g. OutOfMemory, tag 133, "OutOfMemoryException")
//   - An optional source location (file, line, function)
//   - An optional printf-style message
//   - An optional cause: the record it was raised in response to
//
// Kinds are grouped by origin but flat in representation:
//   - domain: PermissionDenied, ReadFailed, WriteFailed, ExecuteFailed, OperationTimedOut
//   - host:   InstanceFailure, IllegalMemoryAccess, InvalidArgument, OutOfBound,
//     InvalidNullPointer, OutOfMemory
//   - shared: NoSuchElement, Unknown
//
// Any tag outside the declared set renders as "UnknownException".
//
// A cause can only be attached when the outer record is built, via Wrap or
// Wrapf, and ownership of the cause moves into the new record. Chains are
// therefore finite and acyclic.
//
// Example usage:
//
//	root := errx.New(errx.InstanceFailure)
//	err := errx.Wrap(errx.OutOfMemory, root,
//		errx.WithLocation("alloc.c", 42, "grow"),
//		errx.WithMessage("needed %d bytes", 4096))
//
//	if err := errx.Report(os.Stderr, err); err != nil {
//		// the sink failed
//	}
//
// Report prints the outermost record first:
//
//	Threw the OutOfMemoryException:
//		at alloc.c:42, func grow
//	needed 4096 bytes
//	Threw the InstanceFailureException
//
// Report never exits; ReportAndAbort and Throw end the process after
// reporting.
package errx
