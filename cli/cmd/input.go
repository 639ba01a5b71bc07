// ABOUTME: Shared input helpers for commands that read inventory files
// ABOUTME: Reads a path or stdin ("-") and decodes server records

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/markalston/migration-assessor/models"
)

var stdin io.Reader = os.Stdin

// readRecords loads one object or an array of objects from path.
func readRecords(path string) ([]models.ServerRecord, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	records, err := models.DecodeServerRecords(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// recordJSON re-encodes a record with its original fields.
func recordJSON(r models.ServerRecord) (json.RawMessage, error) {
	return json.Marshal(r.Fields())
}
