package service

import (
	"testing"

	"patient-sheets/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPhysicianIndex(t *testing.T) {
	rows := []entity.Row{
		{"id", "first", "last", "phone"},
		{"D1", "Greg", "House", "555"},
		{"D2", "Short", "Row"},
		{"D3", "", "Blank", "1"},
		{"D1", "Other", "Dup", "2"},
	}

	index := BuildPhysicianIndex(rows)

	assert.Len(t, index, 1)
	assert.Equal(t, "Greg", index["D1"][1])
	assert.NotContains(t, index, "D2")
	assert.NotContains(t, index, "D3")
}

func projectionFixture() []entity.PatientRecord {
	patients := []entity.Row{
		{"id", "first", "last", "location", "phone", "address", "age", "gender", "physician"},
		{"PT1", "Ana", "Silva", "Lisbon", "555-0101", "Rua A", "30", "Female", "D1"},
		{"PT2", "Bob", "Jones", "Boston", "555-0202", "Main St", "", "male", "D2"},
		{},
		{"PT3", "Cy", "Ng", "Lisbon", "911", "", "x", "", "D9"},
	}
	physicians := BuildPhysicianIndex([]entity.Row{
		{"id", "first", "last", "phone"},
		{"D1", "Greg", "House", "555"},
		{"D2", "Only", "Three"},
	})
	appointments := IndexRows([]entity.Row{
		{"id", "patient", "physician", "visit", "next", "bill"},
		{"APT1", "PT1", "D1", "1/2/2024", "", "100"},
		{"APT9", "PT1", "D1", "5/5/2025", "", "1"},
	}, entity.AppointmentColPatientID)
	prescriptions := IndexRows([]entity.Row{
		{"physician", "patient", "drug", "dose", "bill"},
		{"D1", "PT1", "Ibuprofen", "200mg", "100"},
	}, entity.PrescriptionColPatientID)

	return Project(patients, physicians, appointments, prescriptions)
}

func TestProject(t *testing.T) {
	views := projectionFixture()
	require.Len(t, views, 3)

	ana := views[0]
	assert.Equal(t, "PT1", ana.PatientID)
	assert.Equal(t, "Greg", ana.Physician.FirstName)
	assert.Equal(t, "APT1", ana.Visit.AppointmentID)
	assert.Equal(t, "Ibuprofen", ana.Prescription.Drug)
	assert.Equal(t, 30, *ana.Age)

	bob := views[1]
	assert.Equal(t, "D2", bob.Physician.PhysicianID)
	assert.Empty(t, bob.Physician.FirstName)
	assert.Empty(t, bob.Visit.AppointmentID)
	assert.Equal(t, entity.GenderMale, bob.Gender)

	cy := views[2]
	assert.Nil(t, cy.Age)
	assert.Empty(t, cy.Prescription.Drug)
}

func TestProject_NilPrescriptions(t *testing.T) {
	views := Project([]entity.Row{{"id"}, {"PT1", "A", "B"}}, nil, nil, nil)
	require.Len(t, views, 1)
	assert.Equal(t, "PT1", views[0].PatientID)
}

func TestProject_KeepsRowsWithCells(t *testing.T) {
	views := Project([]entity.Row{{"id"}, {}, {" ", ""}, {"PT1", "A", "B"}}, nil, nil, nil)
	require.Len(t, views, 2)
	assert.Equal(t, " ", views[0].PatientID)
	assert.Equal(t, "PT1", views[1].PatientID)
}

func TestFilter(t *testing.T) {
	views := projectionFixture()

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "blank term returns all", term: "   ", want: []string{"PT1", "PT2", "PT3"}},
		{name: "first name ignores case", term: "ANA", want: []string{"PT1"}},
		{name: "full name", term: "bob jones", want: []string{"PT2"}},
		{name: "location", term: "lisbon", want: []string{"PT1", "PT3"}},
		{name: "address", term: "main", want: []string{"PT2"}},
		{name: "phone", term: "0202", want: []string{"PT2"}},
		{name: "no match", term: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, v := range Filter(views, tt.term) {
				got = append(got, v.PatientID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
