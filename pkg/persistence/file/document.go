package file

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// readDocument loads one JSON document into out. Returns os.ErrNotExist
// when the file is missing.
func readDocument(root, collection, id string, out any) error {
	filePath := filepath.Clean(path.Join(root, collection, id+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s/%s: %w", collection, id, err)
	}

	return nil
}

// writeDocument persists one record as an indented JSON document,
// creating the collection directory on first use.
func writeDocument(root, collection, id string, record any) error {
	dir := path.Join(root, collection)

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", collection, err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s/%s: %w", collection, id, err)
	}

	return os.WriteFile(path.Join(dir, id+".json"), data, 0600)
}

// removeDocument deletes one document. Missing files are not an error.
func removeDocument(root, collection, id string) error {
	err := os.Remove(path.Join(root, collection, id+".json"))
	if err != nil && os.IsNotExist(err) {
		return nil
	}

	return err
}

// listDocumentIDs returns the IDs of every document in a collection.
func listDocumentIDs(root, collection string) ([]string, error) {
	collectionFS := os.DirFS(path.Join(root, collection))

	jsonFiles, err := fs.Glob(collectionFS, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files: %w", collection, err)
	}

	ids := make([]string, 0, len(jsonFiles))
	for _, file := range jsonFiles {
		ids = append(ids, file[:len(file)-len(".json")])
	}

	return ids, nil
}
