package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/embrylab/blastograde/internal/models"
)

func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grades.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadBatchFile(t *testing.T) {
	path := writeBatchFile(t, "icm,te,exp,patient_id\n4,5,3,P-001\n2,2,2,\n3,3,3,P-003\n")

	rows, err := readBatchFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, models.GradeSet{ICM: 4, TE: 5, Exp: 3}, rows[0].grades)
	require.Equal(t, models.PatientInfo{"Patient ID": "P-001"}, rows[0].patient)
	require.Equal(t, 2, rows[0].line)

	// Empty patient column carries no patient info.
	require.Nil(t, rows[1].patient)

	require.Equal(t, models.GradeSet{ICM: 3, TE: 3, Exp: 3}, rows[2].grades)
	require.Equal(t, 4, rows[2].line)
}

func TestReadBatchFile_ColumnOrderIrrelevant(t *testing.T) {
	path := writeBatchFile(t, "patient_id,exp,icm,te\nP-009,5,1,2\n")

	rows, err := readBatchFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, models.GradeSet{ICM: 1, TE: 2, Exp: 5}, rows[0].grades)
	require.Equal(t, models.PatientInfo{"Patient ID": "P-009"}, rows[0].patient)
}

func TestReadBatchFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errLike string
	}{
		{"missing column", "icm,te\n3,3\n", `missing the "exp" column`},
		{"non-numeric grade", "icm,te,exp\nx,3,3\n", "not a number"},
		{"out-of-range grade", "icm,te,exp\n6,3,3\n", "line 2"},
		{"ragged row", "icm,te,exp\n3,3\n", "reading batch file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readBatchFile(writeBatchFile(t, tt.content))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errLike)
		})
	}
}

// TestBatchCommand_NonPositiveWorkers runs the command with --workers 0,
// which must fall back to the default pool size instead of hanging.
func TestBatchCommand_NonPositiveWorkers(t *testing.T) {
	csvPath := writeBatchFile(t, "icm,te,exp\n4,4,4\n2,2,2\n")
	outDir := t.TempDir()

	cmd := newBatchCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{csvPath, "--workers", "0", "--format", "json", "--out", outDir})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "2 reports written")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestReadBatchFile_MissingFile(t *testing.T) {
	_, err := readBatchFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
