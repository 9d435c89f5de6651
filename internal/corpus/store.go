package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// DefaultFileName is the corpus file name used inside the data directory.
const DefaultFileName = "labels.json.zst"

// On disk a record is a two element array: [title, code].
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Text, int(r.Label)})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("expected [title, label] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &r.Text); err != nil {
		return fmt.Errorf("decoding title: %w", err)
	}
	var code int
	if err := json.Unmarshal(pair[1], &code); err != nil {
		return fmt.Errorf("decoding label: %w", err)
	}
	r.Label = Label(code)
	return nil
}

// Load reads the corpus at path. A missing file is an empty dataset.
func Load(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Dataset{}, nil
		}
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading corpus %s: %w", path, err)
	}
	defer dec.Close()

	var ds Dataset
	if err := json.NewDecoder(dec).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decoding corpus %s: %w", path, err)
	}
	for i, r := range ds {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("corpus %s record %d: %w", path, i, err)
		}
	}
	if ds == nil {
		ds = Dataset{}
	}
	return ds, nil
}

// Save writes ds to path, replacing any previous content. An empty dataset
// leaves the file untouched.
func Save(ds Dataset, path string) error {
	if len(ds) == 0 {
		return nil
	}
	for i, r := range ds {
		if err := r.validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating corpus dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".labels-*")
	if err != nil {
		return fmt.Errorf("creating temp corpus: %w", err)
	}
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(tmp.Name())

	enc, err := zstd.NewWriter(tmp)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("creating encoder: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(ds); err != nil {
		enc.Close()
		tmp.Close()
		return fmt.Errorf("encoding corpus: %w", err)
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp corpus: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing corpus: %w", err)
	}
	return nil
}

// Persist appends the previously saved corpus to the session records and
// saves the result. Saved records are never dropped or rewritten.
func Persist(session Dataset, path string) error {
	previous, err := Load(path)
	if err != nil {
		return err
	}
	merged := make(Dataset, 0, len(session)+len(previous))
	merged = append(merged, session...)
	merged = append(merged, previous...)
	return Save(merged, path)
}
