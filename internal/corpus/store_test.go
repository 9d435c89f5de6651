package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		{Text: "Topological photonics in silicon", Label: Relevant},
		{Text: "Gut microbiome of mice", Label: Irrelevant},
		{Text: "Topological photonics in silicon", Label: Relevant},
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	ds, err := Load(filepath.Join(t.TempDir(), "nope.json.zst"))
	require.NoError(t, err)
	assert.NotNil(t, ds)
	assert.Empty(t, ds)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", DefaultFileName)
	ds := sampleDataset()

	require.NoError(t, Save(ds, path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ds, got)
}

func TestSaveEmptyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, Save(Dataset{}, path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "expected no file for empty dataset")
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, Save(sampleDataset(), path))
	require.NoError(t, Save(Dataset{{Text: "only", Label: Irrelevant}}, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Dataset{{Text: "only", Label: Irrelevant}}, got)
}

func TestSaveRejectsInvalidRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	assert.Error(t, Save(Dataset{{Text: "", Label: Relevant}}, path))
	assert.Error(t, Save(Dataset{{Text: "x", Label: Label(7)}}, path))
}

func TestFileIsCompressedPairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, Save(Dataset{{Text: "A", Label: Relevant}, {Text: "B", Label: Irrelevant}}, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	plain, err := dec.DecodeAll(raw, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[["A",1],["B",0]]`, string(plain))
}

func TestLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("not zstd at all"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownLabelCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	data := enc.EncodeAll([]byte(`[["A",3]]`), nil)
	enc.Close()
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = Load(path)
	assert.Error(t, err)
}

func TestPersistOnFreshPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	session := sampleDataset()

	require.NoError(t, Persist(session, path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, session, got)
}

func TestPersistAppendsSessionFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	first := Dataset{{Text: "old one", Label: Relevant}, {Text: "old two", Label: Irrelevant}}
	second := Dataset{{Text: "new one", Label: Irrelevant}}

	require.NoError(t, Persist(first, path))
	require.NoError(t, Persist(second, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Dataset{
		{Text: "new one", Label: Irrelevant},
		{Text: "old one", Label: Relevant},
		{Text: "old two", Label: Irrelevant},
	}, got)
}

func TestPersistNeverLosesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	sessions := []Dataset{
		{{Text: "a", Label: Relevant}},
		{},
		{{Text: "a", Label: Relevant}, {Text: "b", Label: Irrelevant}},
		{{Text: "c", Label: Irrelevant}},
	}

	var all Dataset
	for _, s := range sessions {
		require.NoError(t, Persist(s, path))
		all = append(all, s...)
	}

	got, err := Load(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, all, got)
}

func TestPersistPropagatesLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	err := Persist(Dataset{{Text: "x", Label: Relevant}}, path)
	assert.Error(t, err)

	raw, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "garbage", string(raw), "corrupt corpus must not be overwritten")
}
