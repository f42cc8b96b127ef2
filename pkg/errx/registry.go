package errx

import (
	"strconv"
	"strings"
)

// Kind is the closed set of error kinds. The underlying tag is 8 bits wide;
// tags that are not declared below render as UnknownException.
type Kind uint8

// Declared kinds. Tag values are stable across versions.
const (
	PermissionDenied  Kind = 0b00000000
	ReadFailed        Kind = 0b00000001
	WriteFailed       Kind = 0b00000010
	ExecuteFailed     Kind = 0b00000100
	OperationTimedOut Kind = 0b00000111

	InstanceFailure     Kind = 0b10000000
	IllegalMemoryAccess Kind = 0b10000001
	InvalidArgument     Kind = 0b10000010
	OutOfBound          Kind = 0b10000011
	InvalidNullPointer  Kind = 0b10000100
	OutOfMemory         Kind = 0b10000101

	NoSuchElement Kind = 0b10000110
	Unknown       Kind = 0b11111111
)

// UnknownName is the display name for Unknown and for every undeclared tag.
const UnknownName = "UnknownException"

// RegistryEntry describes a declared kind.
type RegistryEntry struct {
	Kind   Kind
	Name   string
	Short  string
	Origin Origin
}

var registryEntries = []RegistryEntry{
	{Kind: PermissionDenied, Name: "PermissionDeniedException", Short: "PermissionDenied", Origin: OriginDomain},
	{Kind: ReadFailed, Name: "ReadOperationFailedException", Short: "ReadFailed", Origin: OriginDomain},
	{Kind: WriteFailed, Name: "WriteOperationFailedException", Short: "WriteFailed", Origin: OriginDomain},
	{Kind: ExecuteFailed, Name: "ExecuteOperationFailedException", Short: "ExecuteFailed", Origin: OriginDomain},
	{Kind: OperationTimedOut, Name: "OperationTimedOutException", Short: "OperationTimedOut", Origin: OriginDomain},
	{Kind: InstanceFailure, Name: "InstanceFailureException", Short: "InstanceFailure", Origin: OriginHost},
	{Kind: IllegalMemoryAccess, Name: "IllegalMemoryAccessException", Short: "IllegalMemoryAccess", Origin: OriginHost},
	{Kind: InvalidArgument, Name: "InvalidArgumentException", Short: "InvalidArgument", Origin: OriginHost},
	{Kind: OutOfBound, Name: "OutOfBoundException", Short: "OutOfBound", Origin: OriginHost},
	{Kind: InvalidNullPointer, Name: "InvalidNullPointerException", Short: "InvalidNullPointer", Origin: OriginHost},
	{Kind: OutOfMemory, Name: "OutOfMemoryException", Short: "OutOfMemory", Origin: OriginHost},
	{Kind: NoSuchElement, Name: "NoSuchElementException", Short: "NoSuchElement", Origin: OriginShared},
	{Kind: Unknown, Name: UnknownName, Short: "Unknown", Origin: OriginShared},
}

// registryByTag is indexed by the raw tag so lookups never fail and never allocate.
var registryByTag = func() [256]*RegistryEntry {
	var table [256]*RegistryEntry
	for i := range registryEntries {
		entry := &registryEntries[i]
		table[entry.Kind] = entry
	}
	return table
}()

// Registry returns the declared kinds in declaration order.
func Registry() []RegistryEntry {
	entries := make([]RegistryEntry, len(registryEntries))
	copy(entries, registryEntries)
	return entries
}

// NameOf returns the display name for a raw tag. It is total: undeclared
// tags map to UnknownName.
func NameOf(raw uint8) string {
	if entry := registryByTag[raw]; entry != nil {
		return entry.Name
	}
	return UnknownName
}

// IsDeclared reports whether raw is one of the declared kinds.
func IsDeclared(raw uint8) bool {
	return registryByTag[raw] != nil
}

// Name returns the display name of k.
func (k Kind) Name() string {
	return NameOf(uint8(k))
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return k.Name()
}

// ParseKind resolves a kind from its display name, its short name (with or
// without the "Exception" suffix, case-insensitive) or its decimal tag.
func ParseKind(s string) (Kind, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unknown, false
	}
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		return Kind(n), IsDeclared(uint8(n))
	}
	for _, entry := range registryEntries {
		if strings.EqualFold(s, entry.Name) ||
			strings.EqualFold(s, entry.Short) ||
			strings.EqualFold(s, entry.Short+"Exception") {
			return entry.Kind, true
		}
	}
	return Unknown, false
}
