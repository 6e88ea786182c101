package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		csv       string
		wantRows  int
		wantErrIs error
		wantErr   string
	}{
		{
			name:     "two rows",
			csv:      "1,1024,1024,4096,0.25,-0.1\n64,256,512,128,-0.003,0.002\n",
			wantRows: 2,
		},
		{
			name:     "spaces around fields",
			csv:      "1, 1024, 1024, 4096, 0.25, -0.1\n",
			wantRows: 1,
		},
		{
			name:     "blank lines skipped",
			csv:      "1,2,3,4,0.5,0.5\n\n5,6,7,8,0.1,0.1\n",
			wantRows: 2,
		},
		{
			name:     "empty file",
			csv:      "",
			wantRows: 0,
		},
		{
			name:      "non numeric k",
			csv:       "1,2,3,4,0.5,0.5\n1,2,3,abc,0.5,0.5\n",
			wantErrIs: ErrNumericConversion,
			wantErr:   ":2: field k",
		},
		{
			name:      "non numeric delta",
			csv:       "1,2,3,4,fast,0.5\n",
			wantErrIs: ErrNumericConversion,
			wantErr:   "field delta1",
		},
		{
			name:      "nan delta",
			csv:       "1,2,3,4,NaN,0.5\n",
			wantErrIs: ErrNumericConversion,
		},
		{
			name:      "header row is not data",
			csv:       "g,m,n,k,delta1,delta2\n",
			wantErrIs: ErrNumericConversion,
			wantErr:   "field g",
		},
		{
			name:      "too few fields",
			csv:       "1,2,3,4,0.5\n",
			wantErrIs: ErrFieldCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, t.TempDir(), "gemm.csv", tt.csv)

			records, err := Load(path)
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				if tt.wantErr != "" {
					assert.Contains(t, err.Error(), tt.wantErr)
				}
				var rowErr *RowError
				assert.True(t, errors.As(err, &rowErr))
				return
			}
			require.NoError(t, err)
			assert.Len(t, records, tt.wantRows)
		})
	}
}

func TestLoad_ParsesFields(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "gemm.csv", "64,256,512,128,-0.003,0.002\n")

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, Record{
		G: 64, M: 256, N: 512, K: 128,
		Delta1: -0.003, Delta2: 0.002,
		Source: path, Line: 1,
	}, records[0])
	assert.Equal(t, path+":1", records[0].Location())
	assert.Equal(t, "64x256x512x128", records[0].Shape())
}

func TestLoad_MultipleFilesKeepOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeCSV(t, dir, "a.csv", "1,1,1,1,0.1,0\n2,2,2,2,0.2,0\n")
	b := writeCSV(t, dir, "b.csv", "3,3,3,3,0.3,0\n")

	records, err := Load(a, b)
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i, want := range []int{1, 2, 3} {
		assert.Equal(t, want, records[i].G)
	}
	assert.Equal(t, b, records[2].Source)
	assert.Equal(t, 1, records[2].Line)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_NoPaths(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
}

func TestReadAll_IsRestartable(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "gemm.csv", "1,2,3,4,0.5,0.5\n5,6,7,8,0.1,0.1\n")

	seq := ReadAll(path)
	for pass := 0; pass < 2; pass++ {
		count := 0
		for _, err := range seq {
			require.NoError(t, err)
			count++
		}
		assert.Equal(t, 2, count, "pass %d", pass)
	}
}

func TestRead_EarlyBreak(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "gemm.csv", "1,2,3,4,0.5,0.5\n5,6,7,8,0.1,0.1\nbad\n")

	var first Record
	for rec, err := range Read(path) {
		require.NoError(t, err)
		first = rec
		break
	}
	assert.Equal(t, 1, first.G)
}

func TestRead_StopsAfterError(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "gemm.csv", "x,2,3,4,0.5,0.5\n5,6,7,8,0.1,0.1\n")

	var errs, rows int
	for _, err := range Read(path) {
		if err != nil {
			errs++
			continue
		}
		rows++
	}
	assert.Equal(t, 1, errs)
	assert.Equal(t, 0, rows)
}
