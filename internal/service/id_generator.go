package service

import (
	"math/rand/v2"
	"strconv"
)

const (
	PatientIDPrefix     = "PT"
	AppointmentIDPrefix = "APT"

	idSuffixMin = 100000
	idSuffixMax = 999999
)

// IDGenerator issues identifiers for new drafts. Identifiers are random and
// are not checked against existing rows.
type IDGenerator interface {
	PatientID() string
	AppointmentID() string
}

type randomIDGenerator struct{}

func NewIDGenerator() IDGenerator {
	return randomIDGenerator{}
}

func (randomIDGenerator) PatientID() string {
	return randomID(PatientIDPrefix)
}

func (randomIDGenerator) AppointmentID() string {
	return randomID(AppointmentIDPrefix)
}

func randomID(prefix string) string {
	return prefix + strconv.Itoa(idSuffixMin+rand.IntN(idSuffixMax-idSuffixMin+1))
}
