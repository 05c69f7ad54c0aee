package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/welcome/internal/scene"
	"github.com/san-kum/welcome/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Message   string             `json:"message"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Ticks     int                `json:"ticks"`
	Clock     string             `json:"clock"`
	Hue       string             `json:"hue"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Margin    float64            `json:"margin"`
	Phasing   float64            `json:"phasing"`
	Pacing    scene.Pacing       `json:"pacing"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and frames.csv for a run and returns its id.
func (s *Store) Save(cfg scene.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d_%d", slug(result.Message), result.Seed, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Message:   result.Message,
		Timestamp: now,
		Seed:      result.Seed,
		Ticks:     result.StepsTaken,
		Clock:     string(cfg.Clock),
		Hue:       cfg.Hue,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Margin:    cfg.Margin,
		Phasing:   result.Phasing,
		Pacing:    cfg.Pacing,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	if len(result.Records) == 0 {
		w.Flush()
		return runID, w.Error()
	}

	header := []string{"tick", "time", "dt", "spread"}
	for i := range result.Records[0].Glyphs {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i), fmt.Sprintf("hue%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, rec := range result.Records {
		row := []string{
			strconv.Itoa(rec.Index),
			formatFloat(rec.Time),
			formatFloat(rec.Dt),
			formatFloat(rec.Spread),
		}
		for _, g := range rec.Glyphs {
			row = append(row, formatFloat(g.X), formatFloat(g.Y), formatFloat(g.Hue))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return runID, w.Error()
}

// List returns stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads the per-tick records of a run back from frames.csv.
func (s *Store) LoadFrames(runID string) ([]sim.Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return []sim.Record{}, nil
	}

	var runes []rune
	if meta, err := s.Load(runID); err == nil {
		runes = []rune(meta.Message)
	}
	records := make([]sim.Record, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if len(row) < 4 {
			continue
		}
		idx, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		vals, err := parseFloats(row[1:])
		if err != nil {
			return nil, fmt.Errorf("run %s tick %d: %w", runID, idx, err)
		}

		rec := sim.Record{Frame: scene.Frame{Index: idx, Time: vals[0], Dt: vals[1], Spread: vals[2]}}
		rest := vals[3:]
		for i := 0; i+2 < len(rest); i += 3 {
			var r rune
			if n := i / 3; n < len(runes) {
				r = runes[n]
			}
			rec.Glyphs = append(rec.Glyphs, sim.Sample{Rune: r, X: rest[i], Y: rest[i+1], Hue: rest[i+2]})
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// formatFloat writes the shortest text that parses back to exactly v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func slug(message string) string {
	out := make([]rune, 0, len(message))
	for _, r := range message {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "empty"
	}
	if len(out) > 24 {
		out = out[:24]
	}
	return string(out)
}
