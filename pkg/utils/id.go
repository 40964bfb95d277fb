package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const runIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID produces a short random identifier used to correlate the
// log lines of one pipeline run.
func GenerateID() (string, error) {
	return gonanoid.Generate(runIDAlphabet, 6)
}
