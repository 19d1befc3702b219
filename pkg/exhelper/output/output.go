// Package output serialises command results.
package output

import (
	"encoding/json"
	"io"
)

// ToJSON serialises v, indented with two spaces when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// Write serialises v to w followed by a newline.
func Write(w io.Writer, v interface{}, pretty bool) error {
	data, err := ToJSON(v, pretty)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
