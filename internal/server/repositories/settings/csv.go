package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/settingskeeper/internal/server/models"
	"github.com/dmitrijs2005/settingskeeper/internal/timex"
)

// FileName is the settings table file inside the data directory.
const FileName = "user_settings.csv"

var header = []string{"user_id", "settings_json", "updated_at"}

// Codec maps models.Settings onto the user_settings.csv column layout. The
// settings map is stored as a JSON object in a single field.
type Codec struct{}

func (Codec) Header() []string {
	return header
}

func (Codec) Encode(s *models.Settings) ([]string, error) {
	payload, err := MarshalValues(s.Values)
	if err != nil {
		return nil, fmt.Errorf("settings_json: %w", err)
	}
	return []string{s.UserID, payload, timex.FormatTimestamp(s.UpdatedAt)}, nil
}

func (Codec) Decode(row []string) (*models.Settings, error) {
	values, err := UnmarshalValues(row[1])
	if err != nil {
		return nil, fmt.Errorf("settings_json: %w", err)
	}

	updatedAt, err := timex.ParseTimestamp(row[2])
	if err != nil {
		return nil, fmt.Errorf("updated_at: %w", err)
	}

	return &models.Settings{UserID: row[0], Values: values, UpdatedAt: updatedAt}, nil
}

// MarshalValues encodes values as compact JSON without HTML escaping.
// A nil map is stored as "{}".
func MarshalValues(values map[string]any) (string, error) {
	if values == nil {
		values = map[string]any{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(values); err != nil {
		return "", err
	}

	// Encoder terminates every value with a newline
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// UnmarshalValues decodes a stored payload. An empty payload is an empty map.
// Numbers come back as json.Number so integers beyond 2^53 stay exact.
func UnmarshalValues(payload string) (map[string]any, error) {
	values := map[string]any{}
	if payload == "" {
		return values, nil
	}
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&values); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after settings object")
	}
	// "null" decodes without error and leaves a nil map
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}
