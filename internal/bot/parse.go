package bot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrParse groups failures to decode JSON at either stage.
	ErrParse = errors.New("parse error")
	// ErrSchema groups well-formed JSON that lacks an expected field.
	ErrSchema = errors.New("schema error")

	ErrMalformedResponse = fmt.Errorf("%w: response is not valid JSON", ErrParse)
	ErrDetailsMissing    = fmt.Errorf("%w: response has no details", ErrSchema)
	ErrDetailsMalformed  = fmt.Errorf("%w: details is not valid JSON", ErrParse)
	ErrPropertiesMissing = fmt.Errorf("%w: details has no properties object", ErrSchema)
)

// DeviceProperties are the provider fields shown to the user. Empty text
// fields render as Unknown.
type DeviceProperties struct {
	DeviceName  string
	Image       string
	IMEI        string
	IMEI2       string
	Serial      string
	ModelDesc   string
	AppleRegion string
	AppleModel  string
	SIMLock     bool
	Replacement bool
	DemoUnit    bool
	LostMode    bool
}

// LookupResult is a decoded gateway answer.
type LookupResult struct {
	Success    bool
	Properties DeviceProperties
	RawDetails string
}

// ParseLookupResponse decodes a gateway body in two stages: the outer object,
// then its details field, which normally holds JSON encoded as a string.
// An inline details object is accepted as well.
func ParseLookupResponse(body []byte) (LookupResult, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil {
		if json.Valid(body) {
			return LookupResult{}, ErrDetailsMissing
		}
		return LookupResult{}, ErrMalformedResponse
	}

	rawDetails, ok := outer["details"]
	if !ok {
		return LookupResult{}, ErrDetailsMissing
	}

	details, err := decodeDetails(rawDetails)
	if err != nil {
		return LookupResult{}, err
	}

	var inner map[string]json.RawMessage
	if err := json.Unmarshal(details, &inner); err != nil {
		return LookupResult{}, ErrDetailsMalformed
	}

	var props map[string]json.RawMessage
	raw, ok := inner["properties"]
	if !ok || json.Unmarshal(raw, &props) != nil || props == nil {
		return LookupResult{}, ErrPropertiesMissing
	}

	return LookupResult{
		Success:    true,
		Properties: propertiesFrom(props),
		RawDetails: string(details),
	}, nil
}

func decodeDetails(raw json.RawMessage) ([]byte, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		return []byte(trimmed), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, ErrDetailsMalformed
	}
	if !json.Valid([]byte(s)) {
		return nil, ErrDetailsMalformed
	}
	return []byte(s), nil
}

func propertiesFrom(props map[string]json.RawMessage) DeviceProperties {
	return DeviceProperties{
		DeviceName:  text(props["deviceName"]),
		Image:       text(props["image"]),
		IMEI:        text(props["imei"]),
		IMEI2:       text(props["imei2"]),
		Serial:      text(props["serial"]),
		ModelDesc:   text(props["modelDesc"]),
		AppleRegion: text(props["apple/region"]),
		AppleModel:  text(props["apple/modelName"]),
		SIMLock:     truthy(props["simLock"]),
		Replacement: truthy(props["replacement"]),
		DemoUnit:    truthy(props["demoUnit"]),
		LostMode:    truthy(props["lostMode"]),
	}
}

// text returns strings as-is and other scalars in their JSON form. Null,
// absent and composite values yield "".
func text(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// truthy treats true, non-zero numbers and non-empty strings or collections as set.
func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return false
	}
}
