// Package ledger is the append-only audit trail of collections and
// transfers: one JSON object per line, one file per record kind. Every
// externally visible side effect has a corresponding ledger entry, so the
// system's history can be reconstructed from these files alone.
package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/techreviewhub/automation/internal/domain"
)

const (
	collectionsFile = "revenue_reports.jsonl"
	transfersFile   = "transfer_records.jsonl"
)

// Ledger appends immutable records to line-delimited JSON files.
// Appends are O_APPEND writes of a single line, so a crash mid-write cannot
// corrupt previously durable lines.
type Ledger struct {
	collectionsPath string
	transfersPath   string
}

func New(dir string) *Ledger {
	return &Ledger{
		collectionsPath: filepath.Join(dir, collectionsFile),
		transfersPath:   filepath.Join(dir, transfersFile),
	}
}

// AppendCollection records one collection cycle, zero-amount cycles included.
func (l *Ledger) AppendCollection(r domain.CollectionReport) error {
	return appendLine(l.collectionsPath, r)
}

// AppendTransfer records one payout attempt.
func (l *Ledger) AppendTransfer(t domain.TransferRecord) error {
	return appendLine(l.transfersPath, t)
}

// Collections reads back all recorded collection reports in append order.
func (l *Ledger) Collections() ([]domain.CollectionReport, error) {
	var out []domain.CollectionReport
	err := readLines(l.collectionsPath, func(data []byte) error {
		var r domain.CollectionReport
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

// Transfers reads back all recorded transfer attempts in append order.
func (l *Ledger) Transfers() ([]domain.TransferRecord, error) {
	var out []domain.TransferRecord
	err := readLines(l.transfersPath, func(data []byte) error {
		var t domain.TransferRecord
		if err := json.Unmarshal(data, &t); err != nil {
			return err
		}
		out = append(out, t)
		return nil
	})
	return out, err
}

func appendLine(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode ledger entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

func readLines(path string, fn func([]byte) error) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return fmt.Errorf("decode ledger line: %w", err)
		}
	}
	return sc.Err()
}
