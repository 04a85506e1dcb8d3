// Package export aggregates the somas' synapse lists into a directed
// multigraph summary and writes it as CSV. It must only run after the tick
// loop has fully stopped; it reads connection lists without locks.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"synaptogen/internal/model"
	"synaptogen/internal/neuron"
)

// Header matches the reference output format.
var Header = []string{"Source_UID", "Target_UID", "Cell_Type", "Synapse_Count"}

// BuildRecords aggregates (source, target) multiplicities over the live
// somas. Every live soma appears at least once: somas with no outgoing
// synapses get a zero-count self-loop row as an isolated-node placeholder.
// Record order follows map iteration and is not stable;
// consumers must not depend on row order.
func BuildRecords(somas []*neuron.Soma) []model.ConnectivityRecord {
	type pair struct {
		source, target model.NeuronID
	}

	adjacency := make(map[pair]int)
	cellTypes := make(map[model.NeuronID]model.CellType)
	hasOutgoing := make(map[model.NeuronID]bool)

	for _, soma := range somas {
		if soma == nil || !soma.Alive() {
			continue
		}
		id := soma.ID()
		cellTypes[id] = soma.CellType()
		for _, syn := range soma.Synapses() {
			adjacency[pair{source: id, target: syn.Target}]++
			hasOutgoing[id] = true
		}
	}

	records := make([]model.ConnectivityRecord, 0, len(adjacency)+len(cellTypes))
	for p, count := range adjacency {
		records = append(records, model.ConnectivityRecord{
			Source:   p.source,
			Target:   p.target,
			CellType: cellTypes[p.source],
			Count:    count,
		})
	}
	for id, cellType := range cellTypes {
		if hasOutgoing[id] {
			continue
		}
		records = append(records, model.ConnectivityRecord{
			Source:   id,
			Target:   id,
			CellType: cellType,
			Count:    0,
		})
	}
	return records
}

// WriteCSV emits the header and one row per record.
func WriteCSV(w io.Writer, records []model.ConnectivityRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			strconv.FormatUint(uint64(rec.Source), 10),
			strconv.FormatUint(uint64(rec.Target), 10),
			strconv.Itoa(int(rec.CellType)),
			strconv.Itoa(rec.Count),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile aggregates and writes in one step.
func WriteFile(path string, somas []*neuron.Soma, logger *zap.Logger) error {
	return WriteRecordsFile(path, BuildRecords(somas), logger)
}

// WriteRecordsFile writes pre-aggregated records. A sink that cannot be
// opened is reported and the export abandoned; no partial file is left
// behind.
func WriteRecordsFile(path string, records []model.ConnectivityRecord, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	f, err := os.Create(path)
	if err != nil {
		logger.Error("export sink open failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("open export sink: %w", err)
	}

	if err := WriteCSV(f, records); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("connectivity exported",
		zap.String("path", path),
		zap.Int("rows", len(records)))
	return nil
}
