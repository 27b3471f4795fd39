// Package iojson reads and writes JSON for commands that offer a
// machine-readable output format.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is the JSON shape written for failed commands.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// marshalFailure builds an Error blob by hand for when encoding the real
// value failed.
func marshalFailure(msg string, cause error) string {
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(cause.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// MarshalError encodes msg and data as an indented Error.
func MarshalError(msg string, data map[string]any) string {
	bits, err := json.MarshalIndent(Error{Message: msg, Data: data}, "", "  ")
	if err != nil {
		return marshalFailure(msg, err)
	}
	return string(bits)
}

// WriteErrorWith writes msg and data to w as an Error.
func WriteErrorWith(w io.Writer, msg string, data map[string]any) error {
	_, err := fmt.Fprintln(w, MarshalError(msg, data))
	return err
}

// WriteWith writes obj to w as indented JSON. Encoding failures are reported
// on ew instead.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, err = fmt.Fprintln(ew, marshalFailure("encode output", err))
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
