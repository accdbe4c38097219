package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered room in the output manifest.
type ManifestEntry struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	File      string `json:"file"`
	Image     string `json:"image"`
	Triangles int    `json:"triangles"`
	Rejected  int    `json:"rejected"`
}

// WriteManifest writes the successful results to path as JSON.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Index:     r.Index,
			Name:      r.Name,
			File:      r.File,
			Image:     r.Image,
			Triangles: r.Triangles,
			Rejected:  r.Rejected,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
