package utils

import (
	"encoding/json"
	"io"
)

// MarshalToPrint writes input as indented JSON followed by a newline.
func MarshalToPrint[T any](w io.Writer, input T) error {
	jsonData, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return err
	}
	jsonData = append(jsonData, '\n')
	_, err = w.Write(jsonData)
	return err
}
