package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type response struct {
	Status string `json:"status"`
	Result any    `json:"result"`
}

// printSequences writes the resolved sequences as `SUCCESS [5, 8]`, or as a
// JSON object when jsonOutput is set.
func printSequences(w io.Writer, jsonOutput bool, sequences []uint64) error {
	if sequences == nil {
		sequences = []uint64{}
	}

	if jsonOutput {
		return json.NewEncoder(w).Encode(response{Status: statusSuccess, Result: sequences})
	}

	formatted := make([]string, len(sequences))
	for i, seq := range sequences {
		formatted[i] = strconv.FormatUint(seq, 10)
	}

	_, err := fmt.Fprintf(w, "%s [%s]\n", color.New(color.FgGreen, color.Bold).Sprint("SUCCESS"), strings.Join(formatted, ", "))
	return err
}

func printError(w io.Writer, jsonOutput bool, err error) {
	if jsonOutput {
		_ = json.NewEncoder(w).Encode(response{Status: statusError, Result: err.Error()})
		return
	}

	fmt.Fprintf(w, "%s %s\n", color.New(color.FgRed, color.Bold).Sprint("ERROR"), err)
}
