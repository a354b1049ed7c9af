package validation

import (
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"user-panel/internal/dto/request"

	"github.com/google/uuid"
)

type fakeEmailChecker struct {
	taken         map[string]uuid.UUID
	lastExcludeID *uuid.UUID
	err           error
}

func (f *fakeEmailChecker) EmailTaken(_ context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	f.lastExcludeID = excludeID
	if f.err != nil {
		return false, f.err
	}
	owner, ok := f.taken[email]
	if !ok {
		return false, nil
	}
	if excludeID != nil && owner == *excludeID {
		return false, nil
	}
	return true, nil
}

func strptr(s string) *string { return &s }

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	return verr.Fields
}

func photoHeader(filename, contentType string, size int64) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{
		Filename: filename,
		Header:   header,
		Size:     size,
	}
}

func TestCreateRequiresEmailAndPassword(t *testing.T) {
	rules := BuildRules(false, nil)

	err := rules.Validate(context.Background(), &request.UserInput{}, nil, &fakeEmailChecker{})
	fields := fieldErrors(t, err)

	for _, field := range []string{"email", "password", "c_password"} {
		if len(fields[field]) == 0 {
			t.Errorf("expected error on %s, got none", field)
		}
	}
}

func TestUpdateAllowsEmptyInput(t *testing.T) {
	id := uuid.New()
	rules := BuildRules(true, &id)

	if err := rules.Validate(context.Background(), &request.UserInput{}, nil, &fakeEmailChecker{}); err != nil {
		t.Fatalf("empty update input should pass, got %v", err)
	}
}

func TestEmailFormat(t *testing.T) {
	rules := BuildRules(false, nil)
	in := &request.UserInput{
		Email:           strptr("not-an-email"),
		Password:        strptr("secret1"),
		ConfirmPassword: strptr("secret1"),
	}

	fields := fieldErrors(t, rules.Validate(context.Background(), in, nil, &fakeEmailChecker{}))
	if len(fields["email"]) == 0 {
		t.Fatal("expected email format error")
	}
}

func TestEmailUniqueness(t *testing.T) {
	owner := uuid.New()
	checker := &fakeEmailChecker{taken: map[string]uuid.UUID{"a@b.com": owner}}

	rules := BuildRules(false, nil)
	in := &request.UserInput{
		Email:           strptr("a@b.com"),
		Password:        strptr("secret1"),
		ConfirmPassword: strptr("secret1"),
	}

	fields := fieldErrors(t, rules.Validate(context.Background(), in, nil, checker))
	if len(fields["email"]) == 0 {
		t.Fatal("expected email uniqueness error")
	}
}

func TestEmailUniquenessExcludesSelf(t *testing.T) {
	owner := uuid.New()
	checker := &fakeEmailChecker{taken: map[string]uuid.UUID{"a@b.com": owner}}

	rules := BuildRules(true, &owner)
	in := &request.UserInput{Email: strptr("a@b.com")}

	if err := rules.Validate(context.Background(), in, nil, checker); err != nil {
		t.Fatalf("own email on update should pass, got %v", err)
	}
	if checker.lastExcludeID == nil || *checker.lastExcludeID != owner {
		t.Fatal("expected exclude id to reach the checker")
	}
}

func TestEmailCheckerFailureIsNotValidationError(t *testing.T) {
	checker := &fakeEmailChecker{err: errors.New("db down")}

	rules := BuildRules(false, nil)
	in := &request.UserInput{
		Email:           strptr("a@b.com"),
		Password:        strptr("secret1"),
		ConfirmPassword: strptr("secret1"),
	}

	err := rules.Validate(context.Background(), in, nil, checker)
	if err == nil {
		t.Fatal("expected error")
	}
	var verr *Error
	if errors.As(err, &verr) {
		t.Fatal("infrastructure failure must not surface as a validation error")
	}
}

func TestMobileNumberRules(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"0123456789", true},
		{"+1 (555) 123-4567", true},
		{"12345", false},      // too short
		{"abc4567890", false}, // bad characters
	}

	owner := uuid.New()
	for _, tc := range cases {
		rules := BuildRules(true, &owner)
		in := &request.UserInput{MobileNumber: strptr(tc.value)}

		err := rules.Validate(context.Background(), in, nil, &fakeEmailChecker{})
		if tc.valid && err != nil {
			t.Errorf("mobile %q: expected valid, got %v", tc.value, err)
		}
		if !tc.valid {
			fields := fieldErrors(t, err)
			if len(fields["mobile_number"]) == 0 {
				t.Errorf("mobile %q: expected error", tc.value)
			}
		}
	}
}

func TestPasswordRules(t *testing.T) {
	owner := uuid.New()

	// Too short
	rules := BuildRules(true, &owner)
	in := &request.UserInput{Password: strptr("12345"), ConfirmPassword: strptr("12345")}
	fields := fieldErrors(t, rules.Validate(context.Background(), in, nil, &fakeEmailChecker{}))
	if len(fields["password"]) == 0 {
		t.Fatal("expected min-length error on password")
	}

	// Password present without confirmation
	in = &request.UserInput{Password: strptr("secret1")}
	fields = fieldErrors(t, rules.Validate(context.Background(), in, nil, &fakeEmailChecker{}))
	if len(fields["c_password"]) == 0 {
		t.Fatal("expected required error on c_password")
	}

	// Mismatch
	in = &request.UserInput{Password: strptr("secret1"), ConfirmPassword: strptr("secret2")}
	fields = fieldErrors(t, rules.Validate(context.Background(), in, nil, &fakeEmailChecker{}))
	if len(fields["c_password"]) == 0 {
		t.Fatal("expected mismatch error on c_password")
	}
}

func TestStatusAllowedValues(t *testing.T) {
	owner := uuid.New()

	for _, value := range []string{"Active", "Inactive", "active", "inactive"} {
		rules := BuildRules(true, &owner)
		in := &request.UserInput{Status: strptr(value)}
		if err := rules.Validate(context.Background(), in, nil, &fakeEmailChecker{}); err != nil {
			t.Errorf("status %q: expected valid, got %v", value, err)
		}
	}

	rules := BuildRules(true, &owner)
	in := &request.UserInput{Status: strptr("enabled")}
	fields := fieldErrors(t, rules.Validate(context.Background(), in, nil, &fakeEmailChecker{}))
	if len(fields["status"]) == 0 {
		t.Fatal("expected error for unknown status value")
	}
}

func TestPhotoRules(t *testing.T) {
	owner := uuid.New()

	// Acceptable image
	rules := BuildRules(true, &owner)
	photo := photoHeader("avatar.png", "image/png", 1024)
	if err := rules.Validate(context.Background(), &request.UserInput{}, photo, &fakeEmailChecker{}); err != nil {
		t.Fatalf("png photo should pass, got %v", err)
	}

	// Wrong content type
	photo = photoHeader("notes.pdf", "application/pdf", 1024)
	fields := fieldErrors(t, rules.Validate(context.Background(), &request.UserInput{}, photo, &fakeEmailChecker{}))
	if len(fields["user_photo"]) == 0 {
		t.Fatal("expected image-type error")
	}

	// Oversized
	photo = photoHeader("big.jpg", "image/jpeg", 2048*1024+1)
	fields = fieldErrors(t, rules.Validate(context.Background(), &request.UserInput{}, photo, &fakeEmailChecker{}))
	if len(fields["user_photo"]) == 0 {
		t.Fatal("expected size error")
	}

	// Extension fallback when content type is absent
	photo = photoHeader("avatar.gif", "", 1024)
	if err := rules.Validate(context.Background(), &request.UserInput{}, photo, &fakeEmailChecker{}); err != nil {
		t.Fatalf("gif extension should pass, got %v", err)
	}
}

func TestAllViolationsCollected(t *testing.T) {
	rules := BuildRules(false, nil)
	in := &request.UserInput{
		Email:        strptr("bad"),
		MobileNumber: strptr("abc"),
		Status:       strptr("wrong"),
	}

	fields := fieldErrors(t, rules.Validate(context.Background(), in, nil, &fakeEmailChecker{}))

	for _, field := range []string{"email", "mobile_number", "status", "password", "c_password"} {
		if len(fields[field]) == 0 {
			t.Errorf("expected %s in collected violations", field)
		}
	}
}
