package test

import (
	"crypto/sha256"
	"encoding/hex"

	. "github.com/onsi/gomega"

	datasetTest "github.com/thbteam/patient-dashboard/dataset/test"
	sourceTest "github.com/thbteam/patient-dashboard/source/test"
)

const (
	TestUsername      = "thbteam"
	TestPassword      = "integration-password"
	TestSessionSecret = "integration-secret"
	TestReferenceYear = "2025"
	TestLogo          = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"></svg>`
)

var Tests = []string{"Hemoglobin", "Glucose"}

var Visits = []datasetTest.Visit{
	{
		EntryDate: "01/03/2019", PatientId: "P1", Gender: "Male", YearOfBirth: "1950",
		Diagnoses:   []string{"Hypertension"},
		Medications: []datasetTest.Medication{{Name: "Lisinopril", Frequency: "Once daily", Duration: "10"}},
		Tests:       map[string]string{"Hemoglobin": "12", "Glucose": "95"},
	},
	{
		EntryDate: "15/06/2021", PatientId: "P2", Gender: "Female", YearOfBirth: "1980",
		Diagnoses:   []string{"Asthma"},
		Medications: []datasetTest.Medication{{Name: "Salbutamol", Frequency: "As needed", Duration: "5"}},
		Tests:       map[string]string{"Hemoglobin": "10"},
	},
	{
		EntryDate: "20/01/2023", PatientId: "P3", Gender: "Female", YearOfBirth: "1990",
		Diagnoses:   []string{"Hypertension", "Asthma"},
		Medications: []datasetTest.Medication{{Name: "Lisinopril", Frequency: "Twice daily", Duration: "20"}},
		Tests:       map[string]string{"Hemoglobin": "14"},
	},
}

func HashedPassword() string {
	digest := sha256.Sum256([]byte(TestPassword))
	return hex.EncodeToString(digest[:])
}

func Workbook() []byte {
	header := datasetTest.Header(Tests...)
	workbook, err := datasetTest.Workbook(header, datasetTest.Rows(header, Visits...))
	Expect(err).ToNot(HaveOccurred())
	return workbook
}

// FilesStub serves the patients workbook and the logo.
func FilesStub() *sourceTest.FileServer {
	stub := sourceTest.ServerStub()
	stub.AddFile(sourceTest.WorkbookPath, Workbook())
	stub.AddFile(sourceTest.LogoPath, []byte(TestLogo))
	return stub
}
