package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"patient-sheets/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestIndexRows(t *testing.T) {
	rows := []entity.Row{
		{"ID", "Name"},
		{"P1", "A"},
		{"P1", "B"},
		{"", "C"},
		{},
		{"P2"},
	}

	index := IndexRows(rows, 0)

	assert.Len(t, index, 2)
	assert.Equal(t, entity.Row{"P1", "A"}, index["P1"])
	assert.Equal(t, entity.Row{"P2"}, index["P2"])
	_, hasHeader := index["ID"]
	assert.False(t, hasHeader)
}

func TestIndexRows_HeaderOnlyAndEmpty(t *testing.T) {
	assert.Empty(t, IndexRows(nil, 0))
	assert.Empty(t, IndexRows([]entity.Row{{"ID", "A"}}, 0))
}

func TestTableReader_Locate(t *testing.T) {
	repo := &fakeSheetRepository{tables: map[entity.Table][]entity.Row{
		entity.TablePrescription: {
			{"physician_id", "patient_id", "drug"},
			{"D1", "PT1", "X"},
			{"D2", "PT2", "Y"},
			{"D3", "PT2", "Z"},
		},
	}}
	reader := NewTableReader(repo, quietLogger())
	conn := entity.Connection{AccessToken: "t", SpreadsheetID: "s"}

	tests := []struct {
		name    string
		column  int
		value   string
		want    int
		wantErr error
	}{
		{name: "first data row", column: 1, value: "PT1", want: 2},
		{name: "first match wins", column: 1, value: "PT2", want: 3},
		{name: "header never matches", column: 1, value: "patient_id", wantErr: ErrRowNotFound},
		{name: "missing value", column: 1, value: "PT9", wantErr: ErrRowNotFound},
		{name: "empty value", column: 1, value: "", wantErr: ErrRowNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reader.Locate(context.Background(), conn, entity.TablePrescription, tt.column, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableReader_ReadError(t *testing.T) {
	boom := errors.New("quota exceeded")
	reader := NewTableReader(&fakeSheetRepository{err: boom}, quietLogger())

	_, err := reader.Index(context.Background(), entity.Connection{}, entity.TablePatient, 0)
	assert.ErrorIs(t, err, boom)

	_, err = reader.Locate(context.Background(), entity.Connection{}, entity.TablePatient, 0, "PT1")
	assert.ErrorIs(t, err, boom)
}
