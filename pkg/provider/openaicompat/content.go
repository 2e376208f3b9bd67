package openaicompat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidArguments is returned by ParseArguments when a tool call's
// argument payload cannot be read as a JSON object.
var ErrInvalidArguments = errors.New("invalid tool call arguments")

var emptyObject = json.RawMessage(`{}`)

// FlattenContent reduces message content to plain text. A JSON string is
// returned as is. An array of content parts is reduced to the parts' "text"
// fields joined by newlines, with non-text parts contributing an empty
// string. Anything else (null, missing, objects) yields "".
func FlattenContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	content := gjson.ParseBytes(raw)
	switch {
	case content.Type == gjson.String:
		return content.String()
	case content.IsArray():
		parts := content.Array()
		texts := make([]string, 0, len(parts))
		for _, part := range parts {
			text := part.Get("text")
			if text.Type == gjson.String {
				texts = append(texts, text.String())
			} else {
				texts = append(texts, "")
			}
		}
		return strings.Join(texts, "\n")
	default:
		return ""
	}
}

// ParseArguments converts a tool call's raw arguments into a compact JSON
// object. The payload may be a JSON string holding an encoded object (the
// usual wire format) or an object sent inline. Missing, null and blank
// string arguments become {}.
func ParseArguments(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return emptyObject, nil
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, fmt.Errorf("%w: payload is not valid JSON", ErrInvalidArguments)
	}

	args := gjson.ParseBytes(trimmed)
	switch {
	case args.Type == gjson.String:
		encoded := strings.TrimSpace(args.String())
		if encoded == "" {
			return emptyObject, nil
		}
		if !gjson.Valid(encoded) {
			return nil, fmt.Errorf("%w: encoded string is not valid JSON", ErrInvalidArguments)
		}
		if !gjson.Parse(encoded).IsObject() {
			return nil, fmt.Errorf("%w: encoded string is not a JSON object", ErrInvalidArguments)
		}
		return compact([]byte(encoded))
	case args.IsObject():
		return compact(trimmed)
	default:
		return nil, fmt.Errorf("%w: expected a JSON object or an encoded string, got %s", ErrInvalidArguments, args.Type)
	}
}

func compact(data []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArguments, err.Error())
	}
	return json.RawMessage(buf.Bytes()), nil
}
