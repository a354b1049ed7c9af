package entity

import (
	"reflect"
	"testing"
)

func TestHobbyListRoundTrip(t *testing.T) {
	tags := HobbyList{"chess", "reading"}

	encoded, err := tags.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := DecodeHobbies(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !reflect.DeepEqual(decoded, tags) {
		t.Fatalf("round trip mismatch: got %v, want %v", decoded, tags)
	}
}

func TestHobbyListOrderPreserved(t *testing.T) {
	tags := HobbyList{"painting", "chess", "reading", "chess"}

	encoded, err := tags.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := DecodeHobbies(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	for i := range tags {
		if decoded[i] != tags[i] {
			t.Fatalf("position %d: got %q, want %q", i, decoded[i], tags[i])
		}
	}
}

func TestDecodeHobbiesEmptyBlob(t *testing.T) {
	decoded, err := DecodeHobbies("")
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("expected empty list, got %v", decoded)
	}
}

func TestEncodeNilHobbies(t *testing.T) {
	var tags HobbyList

	encoded, err := tags.Encode()
	if err != nil {
		t.Fatalf("encode nil: %v", err)
	}
	if encoded != "[]" {
		t.Fatalf("expected empty JSON array, got %q", encoded)
	}
}

func TestStatusFromInput(t *testing.T) {
	cases := []struct {
		input string
		want  Status
	}{
		{"active", StatusActive},
		{"Active", StatusInactive},
		{"ACTIVE", StatusInactive},
		{"inactive", StatusInactive},
		{"Inactive", StatusInactive},
		{"", StatusInactive},
		{"anything", StatusInactive},
	}

	for _, tc := range cases {
		if got := StatusFromInput(tc.input); got != tc.want {
			t.Errorf("StatusFromInput(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}
