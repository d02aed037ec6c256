package store

import (
	"bufio"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

type recordingLog struct {
	lines []string
}

func (r *recordingLog) Record(message string) {
	r.lines = append(r.lines, message)
}

func newInventory(t *testing.T, name string, opts ...types.Option) *types.Inventory {
	t.Helper()
	inv, err := types.NewInventory(name, opts...)
	require.NoError(t, err)
	return inv
}

func newWarehouse(t *testing.T, opts ...types.Option) *types.Inventory {
	t.Helper()
	inv := newInventory(t, "Main Warehouse", opts...)
	for desc, qty := range map[string]int{"Hex bolt": 10, "nut": 4, "washer": 0} {
		item, err := types.NewItem(desc, qty)
		require.NoError(t, err)
		require.NoError(t, inv.AddItem(item))
	}
	return inv
}

func TestSaveWritesFormat(t *testing.T) {
	dir := t.TempDir()
	inv := newWarehouse(t)

	path, err := Save(inv, dir, "warehouse.inv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "warehouse.inv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Main Warehouse\nHex bolt\n10\nnut\n4\nwasher\n0\n", string(data))
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "saves")

	path, err := Save(newInventory(t, "Empty"), dir, "empty.inv")
	require.NoError(t, err)
	assert.True(t, Exists(path))
}

func TestSaveReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "warehouse.inv")
	require.NoError(t, os.WriteFile(path, []byte("Old\nstale\n99\nextra\n1\n"), 0o644))

	_, err := Save(newInventory(t, "New"), dir, "warehouse.inv")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "New\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestSaveFailureWrapsIOFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	inv := newWarehouse(t)
	_, err := Save(inv, filepath.Join(blocker, "sub"), "warehouse.inv")
	assert.ErrorIs(t, err, types.ErrIOFailure)
	assert.Equal(t, 3, inv.Len(), "in-memory state survives a failed save")
}

func TestSaveFailureKeepsPreviousFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "warehouse.inv")
	require.NoError(t, os.WriteFile(path, []byte("Old\nbolt\n1\n"), 0o644))
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	_, err := Save(newWarehouse(t), dir, "warehouse.inv")
	require.ErrorIs(t, err, types.ErrIOFailure)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Old\nbolt\n1\n", string(data))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	orig := newWarehouse(t)

	path, err := Save(orig, dir, "warehouse.inv")
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, orig.Name(), loaded.Name())
	assert.Equal(t, maps.Collect(orig.ListAll()), maps.Collect(loaded.ListAll()))
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garage.inv")
	require.NoError(t, SaveFile(newInventory(t, "Garage"), path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Garage", loaded.Name())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantName string
		want     map[string]int
		wantErr  error
	}{
		{
			name:     "name only",
			content:  "Garage\n",
			wantName: "Garage",
			want:     map[string]int{},
		},
		{
			name:     "duplicates merge",
			content:  "Garage\nrake\n2\nRAKE\n3\nshovel\n1\n",
			wantName: "Garage",
			want:     map[string]int{"rake": 5, "shovel": 1},
		},
		{
			name:     "CRLF line endings",
			content:  "Garage\r\nrake\r\n2\r\n",
			wantName: "Garage",
			want:     map[string]int{"rake": 2},
		},
		{
			name:     "no trailing newline",
			content:  "Garage\nrake\n2",
			wantName: "Garage",
			want:     map[string]int{"rake": 2},
		},
		{
			name:    "empty file",
			content: "",
			wantErr: types.ErrMalformedRecord,
		},
		{
			name:    "missing quantity line",
			content: "Garage\nrake\n2\nshovel\n",
			wantErr: types.ErrMalformedRecord,
		},
		{
			name:    "non-numeric quantity",
			content: "Garage\nrake\ntwo\n",
			wantErr: types.ErrMalformedRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "inv.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			inv, err := Load(path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, inv)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, inv.Name())
			assert.Equal(t, tt.want, maps.Collect(inv.ListAll()))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.inv"))
	assert.ErrorIs(t, err, types.ErrIOFailure)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadAndSaveAreLogged(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(newWarehouse(t), dir, "warehouse.inv")
	require.NoError(t, err)

	log := &recordingLog{}
	inv, err := Load(path, types.WithChangeLog(log))
	require.NoError(t, err)
	assert.Equal(t, "'Main Warehouse' inventory loaded from '"+path+"'.", log.lines[len(log.lines)-1])

	_, err = Save(inv, dir, "copy.inv")
	require.NoError(t, err)
	assert.Equal(t, "Inventory saved to '"+filepath.Join(dir, "copy.inv")+"'.", log.lines[len(log.lines)-1])
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, Exists(filepath.Join(dir, "nope")))
	assert.False(t, Exists(dir), "directories are not inventory files")

	path := filepath.Join(dir, "x.inv")
	require.NoError(t, os.WriteFile(path, []byte("X\n"), 0o644))
	assert.True(t, Exists(path))
}

func TestLoadLongLines(t *testing.T) {
	t.Run("line past the default scanner limit", func(t *testing.T) {
		desc := strings.Repeat("x", 2*bufio.MaxScanTokenSize)
		path := filepath.Join(t.TempDir(), "long.inv")
		require.NoError(t, os.WriteFile(path, []byte("Garage\n"+desc+"\n3\n"), 0o644))

		inv, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{desc: 3}, maps.Collect(inv.ListAll()))
	})

	t.Run("line past MaxLineSize", func(t *testing.T) {
		desc := strings.Repeat("x", MaxLineSize+1)
		path := filepath.Join(t.TempDir(), "huge.inv")
		require.NoError(t, os.WriteFile(path, []byte("Garage\n"+desc+"\n3\n"), 0o644))

		inv, err := Load(path)
		assert.ErrorIs(t, err, types.ErrMalformedRecord)
		assert.NotErrorIs(t, err, types.ErrIOFailure)
		assert.Nil(t, inv)
	})
}

func TestSaveRejectedNameNeverReachesDisk(t *testing.T) {
	_, err := types.NewInventory("Main\nWarehouse")
	require.ErrorIs(t, err, types.ErrInvalidName)

	dir := t.TempDir()
	inv := newInventory(t, "Main Warehouse")
	item, err := types.NewItem("bolt", 3)
	require.NoError(t, err)
	require.NoError(t, inv.AddItem(item))

	path, err := Save(inv, dir, "warehouse.inv")
	require.NoError(t, err)
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Main Warehouse", loaded.Name())
	assert.Equal(t, map[string]int{"bolt": 3}, maps.Collect(loaded.ListAll()))
}
