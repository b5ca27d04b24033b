package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "new",
			err:  New(ErrCodeInvalidSweep, "alpha step must be non-zero (got %g)", 0.0),
			want: "INVALID_SWEEP: alpha step must be non-zero (got 0)",
		},
		{
			name: "wrap",
			err:  Wrap(ErrCodeCoordinateParse, errors.New(`line 3: "0.5 abc"`), "read %s", "e387.dat"),
			want: `COORDINATE_PARSE: read e387.dat: line 3: "0.5 abc"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch e387")

	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestIsAndGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"direct", New(ErrCodeSolverMissing, "xfoil not found"), ErrCodeSolverMissing, true},
		{"other code", New(ErrCodeSolverMissing, "xfoil not found"), ErrCodeTimeout, false},
		{"outer code wins", Wrap(ErrCodeSolverInvocation, New(ErrCodeTimeout, "5m"), "Re=100k"), ErrCodeSolverInvocation, true},
		{"behind fmt.Errorf", fmt.Errorf("sweep: %w", New(ErrCodeInvalidSweep, "no Reynolds numbers")), ErrCodeInvalidSweep, true},
		{"plain", errors.New("plain"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
			if got := GetCode(tt.err) == tt.code; got != tt.want {
				t.Errorf("GetCode() = %q", GetCode(tt.err))
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidName, "airfoil name cannot be empty")); got != "airfoil name cannot be empty" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("exit status 1")); got != "exit status 1" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestGeometryNotFound(t *testing.T) {
	err := GeometryNotFound("foo123", []string{"naca", "catalog"})

	if !Is(err, ErrCodeGeometryNotFound) {
		t.Fatalf("Is(err, ErrCodeGeometryNotFound) = false for %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatal("errors.As(*NotFoundError) = false")
	}
	if nf.Name != "foo123" || len(nf.Tried) != 2 {
		t.Errorf("NotFoundError = %+v", nf)
	}
	if nf.Code() != ErrCodeGeometryNotFound {
		t.Errorf("Code() = %v", nf.Code())
	}

	want := `airfoil "x" had no coordinates assigned`
	if got := (&NotFoundError{Name: "x"}).Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
