package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("Contact not found"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("Unauthorized"),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "Validation wraps ErrValidation",
			err:       Validation("username", "The username field is required."),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "ValidationFields wraps ErrValidation",
			err:       ValidationFields(map[string][]string{"name": {"The name field is required."}}),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("Address not found"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Unauthorized does NOT match ErrNotFound",
			err:       Unauthorized("Unauthorized"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestBag_FieldKeyed(t *testing.T) {
	err := Validation("username", "The username has already been taken.")

	bag := err.Bag()
	msgs, ok := bag["username"]
	if !ok {
		t.Fatalf("Bag() missing %q key: %v", "username", bag)
	}
	if len(msgs) != 1 || msgs[0] != "The username has already been taken." {
		t.Errorf("Bag()[username] = %v", msgs)
	}
}

func TestBag_DefaultsToMessageKey(t *testing.T) {
	err := NotFound("Contact not found")

	bag := err.Bag()
	msgs, ok := bag["message"]
	if !ok {
		t.Fatalf("Bag() missing %q key: %v", "message", bag)
	}
	if len(msgs) != 1 || msgs[0] != "Contact not found" {
		t.Errorf("Bag()[message] = %v", msgs)
	}
}

func TestBag_MultiField(t *testing.T) {
	err := ValidationFields(map[string][]string{
		"username": {"The username field is required."},
		"password": {"The password field is required."},
	})

	bag := err.Bag()
	if len(bag) != 2 {
		t.Errorf("Bag() has %d keys, want 2: %v", len(bag), bag)
	}
}

func TestWrappedAppErrorIsStillDetectable(t *testing.T) {
	// Services wrap repository errors with fmt.Errorf("...: %w", err);
	// both errors.Is and errors.As must still see the AppError inside.
	inner := NotFound("Address not found")
	wrapped := errors.Join(errors.New("resolving address"), inner)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is() should find ErrNotFound through wrapping")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As() should extract the *AppError")
	}
	if appErr.Message != "Address not found" {
		t.Errorf("Message = %q, want %q", appErr.Message, "Address not found")
	}
}
