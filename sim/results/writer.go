package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Writer receives one record per sampler firing.
type Writer interface {
	Append(rec SampleRecord) error
	Close() error
}

// CSVWriter appends records to a comma-separated file. The file is
// truncated and recreated with the header row when the writer is built,
// at the start of a run.
type CSVWriter struct {
	file *os.File
	w    *csv.Writer
}

// NewCSVWriter creates (or truncates) path and writes the header row.
func NewCSVWriter(path string) (*CSVWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating result log %s: %w", path, err)
	}
	w := csv.NewWriter(file)
	if err := w.Write(Header); err != nil {
		file.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("writing result log header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("flushing result log header: %w", err)
	}
	return &CSVWriter{file: file, w: w}, nil
}

// Append writes one record and flushes it, so a partially completed run
// still leaves usable rows behind.
func (c *CSVWriter) Append(rec SampleRecord) error {
	if err := c.w.Write(rec.fields()); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

// Close flushes and closes the underlying file. Safe to call twice.
func (c *CSVWriter) Close() error {
	if c.file == nil {
		return nil
	}
	c.w.Flush()
	flushErr := c.w.Error()
	closeErr := c.file.Close()
	c.file = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// fields formats the record with four decimal places on the float
// columns, matching the established result-log precision.
func (r SampleRecord) fields() []string {
	return []string{
		strconv.FormatFloat(r.Time, 'f', 4, 64),
		strconv.FormatFloat(r.ThroughputKbps, 'f', 4, 64),
		strconv.Itoa(r.PacketsReceived),
		strconv.Itoa(r.Sinks),
		r.Protocol,
		strconv.FormatFloat(r.TxPower, 'f', 4, 64),
		strconv.FormatFloat(r.PDR, 'f', 4, 64),
		strconv.FormatFloat(r.AvgDelay, 'f', 4, 64),
		strconv.Itoa(r.RoutingOverhead),
	}
}

// MemoryWriter collects records in memory, for tests.
type MemoryWriter struct {
	Records []SampleRecord
	Closed  bool
}

// Append stores the record.
func (m *MemoryWriter) Append(rec SampleRecord) error {
	m.Records = append(m.Records, rec)
	return nil
}

// Close marks the writer closed.
func (m *MemoryWriter) Close() error {
	m.Closed = true
	return nil
}
