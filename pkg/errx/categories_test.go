package errx

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCategories_Origin(t *testing.T) {
	tests := []struct {
		kind Kind
		want Origin
	}{
		{PermissionDenied, OriginDomain},
		{OperationTimedOut, OriginDomain},
		{InstanceFailure, OriginHost},
		{OutOfMemory, OriginHost},
		{NoSuchElement, OriginShared},
		{Unknown, OriginShared},
		{Kind(42), OriginShared},
	}
	for _, tt := range tests {
		if got := tt.kind.Origin(); got != tt.want {
			t.Errorf("%v.Origin() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestCategories_HostKindsSetHighBit(t *testing.T) {
	for _, k := range KindsOf(OriginDomain) {
		if k&0x80 != 0 {
			t.Errorf("domain kind %v has the high bit set", k)
		}
	}
	for _, k := range KindsOf(OriginHost) {
		if k&0x80 == 0 {
			t.Errorf("host kind %v does not have the high bit set", k)
		}
	}
}

func TestCategories_KindsOf(t *testing.T) {
	want := []Kind{NoSuchElement, Unknown}
	if diff := cmp.Diff(want, KindsOf(OriginShared)); diff != "" {
		t.Errorf("KindsOf(shared) mismatch (-want +got):\n%s", diff)
	}
	if got := len(KindsOf(OriginDomain)) + len(KindsOf(OriginHost)) + len(KindsOf(OriginShared)); got != len(registryEntries) {
		t.Errorf("origins cover %d kinds, want %d", got, len(registryEntries))
	}
	if got := KindsOf(Origin(0)); got != nil {
		t.Errorf("KindsOf(0) = %v, want nil", got)
	}
}

func TestCategories_ParseOrigin(t *testing.T) {
	for _, o := range []Origin{OriginDomain, OriginHost, OriginShared} {
		got, ok := ParseOrigin(o.String())
		if !ok || got != o {
			t.Errorf("ParseOrigin(%q) = (%v, %v), want (%v, true)", o.String(), got, ok, o)
		}
	}
	if _, ok := ParseOrigin("kernel"); ok {
		t.Errorf("ParseOrigin(%q) ok = true, want false", "kernel")
	}
	if got := Origin(9).String(); got != "unknown" {
		t.Errorf("Origin(9).String() = %q, want %q", got, "unknown")
	}
}

func TestCategories_From(t *testing.T) {
	t.Run("keeps foreign error as base", func(t *testing.T) {
		foreign := &fs.PathError{Op: "open", Path: "/etc/shadow", Err: fs.ErrPermission}
		err := From(PermissionDenied, foreign)

		if err.Kind() != PermissionDenied {
			t.Errorf("Kind() = %v, want %v", err.Kind(), PermissionDenied)
		}
		if err.Message() != foreign.Error() {
			t.Errorf("Message() = %q, want %q", err.Message(), foreign.Error())
		}
		if !errors.Is(err, fs.ErrPermission) {
			t.Errorf("errors.Is(err, fs.ErrPermission) = false, want true")
		}
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) || pathErr != foreign {
			t.Errorf("errors.As(err, *fs.PathError) did not reach the base error")
		}
		if err.Cause() != nil {
			t.Errorf("Cause() = %v, want nil", err.Cause())
		}
	})

	t.Run("options override defaults", func(t *testing.T) {
		err := From(ReadFailed, errors.New("eof"), WithMessage("reading %s", "header"))
		if err.Message() != "reading header" {
			t.Errorf("Message() = %q, want %q", err.Message(), "reading header")
		}
	})

	t.Run("nil error", func(t *testing.T) {
		err := From(ReadFailed, nil)
		if err.Base() != nil || err.Message() != "" {
			t.Errorf("From(kind, nil) = %#v, want a bare record", err)
		}
	})
}

func TestCategories_Classify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   Kind
		wantOK bool
	}{
		{"record", Wrap(OutOfMemory, New(InstanceFailure)), OutOfMemory, true},
		{"permission", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}, PermissionDenied, true},
		{"not exist", fs.ErrNotExist, NoSuchElement, true},
		{"deadline", context.DeadlineExceeded, OperationTimedOut, true},
		{"short write", io.ErrShortWrite, WriteFailed, true},
		{"unexpected eof", io.ErrUnexpectedEOF, ReadFailed, true},
		{"invalid", fs.ErrInvalid, InvalidArgument, true},
		{"unmatched", errors.New("boom"), Unknown, false},
		{"nil", nil, Unknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.err)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Classify() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
