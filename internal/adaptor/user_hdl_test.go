package adaptor

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"user-panel/internal/dto/request"
)

type parsedInput struct {
	input *request.UserInput
	photo *multipart.FileHeader
}

func newMultipartRequest(t *testing.T, build func(w *multipart.Writer)) parsedInput {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	build(w)
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/users", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	input, photo, err := parseUserInput(req)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return parsedInput{input: input, photo: photo}
}

func TestParseUserInputMultipartPresence(t *testing.T) {
	got := newMultipartRequest(t, func(w *multipart.Writer) {
		_ = w.WriteField("first_name", "Ada")
		_ = w.WriteField("email", "")
	})

	if got.input.FirstName == nil || *got.input.FirstName != "Ada" {
		t.Errorf("expected first_name present, got %v", got.input.FirstName)
	}
	// An empty field the form carried is still present.
	if got.input.Email == nil || *got.input.Email != "" {
		t.Errorf("expected email present and empty, got %v", got.input.Email)
	}
	// Fields the form never carried stay nil.
	if got.input.LastName != nil {
		t.Errorf("expected last_name absent, got %q", *got.input.LastName)
	}
	if got.input.Status != nil {
		t.Errorf("expected status absent, got %q", *got.input.Status)
	}
}

func TestParseUserInputHobbiesVariants(t *testing.T) {
	got := newMultipartRequest(t, func(w *multipart.Writer) {
		_ = w.WriteField("hobbies", "chess")
		_ = w.WriteField("hobbies", "reading")
	})
	if len(got.input.Hobbies) != 2 || got.input.Hobbies[0] != "chess" {
		t.Errorf("expected hobbies [chess reading], got %v", got.input.Hobbies)
	}

	got = newMultipartRequest(t, func(w *multipart.Writer) {
		_ = w.WriteField("hobbies[]", "painting")
	})
	if len(got.input.Hobbies) != 1 || got.input.Hobbies[0] != "painting" {
		t.Errorf("expected bracketed hobbies field to parse, got %v", got.input.Hobbies)
	}
}

func TestParseUserInputPhoto(t *testing.T) {
	got := newMultipartRequest(t, func(w *multipart.Writer) {
		part, err := w.CreateFormFile("user_photo", "avatar.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = part.Write([]byte("imagedata"))
	})

	if got.photo == nil {
		t.Fatal("expected photo header")
	}
	if got.photo.Filename != "avatar.png" {
		t.Errorf("unexpected filename %q", got.photo.Filename)
	}
}

func TestParseUserInputJSONBody(t *testing.T) {
	body := `{"first_name":"Ada","hobbies":["chess"],"status":"active"}`
	req := httptest.NewRequest("PUT", "/api/users/123", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	in, photo, err := parseUserInput(req)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if photo != nil {
		t.Error("JSON body cannot carry a photo")
	}
	if in.FirstName == nil || *in.FirstName != "Ada" {
		t.Errorf("expected first_name, got %v", in.FirstName)
	}
	if in.Status == nil || *in.Status != "active" {
		t.Errorf("expected status, got %v", in.Status)
	}
	if len(in.Hobbies) != 1 || in.Hobbies[0] != "chess" {
		t.Errorf("expected hobbies, got %v", in.Hobbies)
	}
	if in.Email != nil {
		t.Errorf("expected email absent, got %q", *in.Email)
	}
}

func TestParseUserInputEmptyJSONBody(t *testing.T) {
	req := httptest.NewRequest("PATCH", "/api/users/123", nil)
	req.Header.Set("Content-Type", "application/json")

	in, photo, err := parseUserInput(req)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if photo != nil {
		t.Error("expected no photo")
	}
	if in.FirstName != nil || in.Email != nil || in.Status != nil || in.Hobbies != nil {
		t.Error("empty body must yield a fully absent input")
	}
}
