package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold one experiment's records.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteEpisodeRecords(records []EpisodeRecord) error {
	header := []string{"id", "planner", "seed", "steps", "final_reward", "start_time", "end_time", "duration"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			record.ID,
			record.Planner,
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.Steps),
			strconv.Itoa(record.FinalReward),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		}
	}
	return w.write("episodes.csv", header, rows)
}

func (w *Writer) WriteStepRecords(records []StepRecord) error {
	header := []string{"episode", "step", "action", "inventory", "score", "planner", "max_depth", "duration", "simulations", "expansions", "states", "pruned"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			record.Episode,
			strconv.Itoa(record.Step),
			record.Action,
			record.Inventory,
			strconv.Itoa(record.Score),
			record.Planner,
			strconv.Itoa(record.MaxDepth),
			record.Duration.String(),
			strconv.Itoa(record.Simulations),
			strconv.Itoa(record.Expansions),
			strconv.Itoa(record.States),
			strconv.Itoa(record.Pruned),
		}
	}
	return w.write("steps.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}
