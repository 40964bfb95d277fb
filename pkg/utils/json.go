package utils

import (
	"bytes"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// PrettyJson renders a value as indented JSON for embedding in prompt
// text. A value that cannot be serialized yields an empty string.
func PrettyJson(in any) string {
	buffer, ok := in.([]byte)
	if !ok {
		var err error
		buffer, err = json.Marshal(in)
		if err != nil {
			logrus.WithError(err).Error("Could not serialize the value for pretty printing")
			return ""
		}
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buffer, "", "\t"); err != nil {
		logrus.WithError(err).Error("Could not indent the JSON payload")
		return string(buffer)
	}

	return out.String()
}
