package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/welcome/internal/sim"
)

type ExportFrame struct {
	Tick   int          `json:"tick"`
	Time   float64      `json:"time"`
	Dt     float64      `json:"dt"`
	Spread float64      `json:"spread"`
	Glyphs []sim.Sample `json:"glyphs"`
}

type ExportData struct {
	RunMetadata
	Frames []ExportFrame `json:"frames"`
}

func NewExportData(meta RunMetadata, records []sim.Record) ExportData {
	data := ExportData{
		RunMetadata: meta,
		Frames:      make([]ExportFrame, len(records)),
	}
	for i, rec := range records {
		data.Frames[i] = ExportFrame{
			Tick:   rec.Index,
			Time:   rec.Time,
			Dt:     rec.Dt,
			Spread: rec.Spread,
			Glyphs: rec.Glyphs,
		}
	}
	return data
}

// ExportJSON writes a stored run as one JSON document to path.
func (s *Store) ExportJSON(runID, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return s.WriteJSON(runID, file)
}

// WriteJSON writes a stored run as one JSON document to w.
func (s *Store) WriteJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	records, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(*meta, records))
}
