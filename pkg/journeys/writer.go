package journeys

import (
	"encoding/json"
	"os"

	"github.com/liip/sheriff"
	"github.com/railwatch/railwatch/pkg/model"
)

// Write replaces the document at path atomically. The document shape is the
// wrapper object {"query_time": ..., "journeys": [...]} and is kept stable
// for downstream consumers.
func Write(path string, document *model.Document) error {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, document)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(reduced, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	temporaryPath := path + ".tmp"
	if err := os.WriteFile(temporaryPath, data, 0644); err != nil {
		return err
	}

	return os.Rename(temporaryPath, path)
}
