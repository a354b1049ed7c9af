package entity

import "encoding/json"

// HobbyList is an ordered collection of free-text hobby tags.
// It is persisted as a single JSON-encoded text column, so the
// listing filter can run a plain substring match over the blob.
type HobbyList []string

// Encode serializes the list for storage. An empty or nil list
// encodes to the empty JSON array.
func (h HobbyList) Encode() (string, error) {
	if h == nil {
		h = HobbyList{}
	}
	raw, err := json.Marshal(h)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeHobbies restores a HobbyList from its encoded form.
// An empty blob decodes to an empty list.
func DecodeHobbies(encoded string) (HobbyList, error) {
	if encoded == "" {
		return HobbyList{}, nil
	}

	var tags HobbyList
	if err := json.Unmarshal([]byte(encoded), &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = HobbyList{}
	}
	return tags, nil
}
