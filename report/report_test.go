package report_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eark-validator/ipvalidator/report"
)

func TestDeriveStructStatus_NoErrors(t *testing.T) {
	messages := []report.TestResult{
		report.NewTestResult("CSIPSTR4", "METS.xml", "informational note", report.Info),
		report.NewTestResult("CSIPSTR4", "METS.xml", "minor concern", report.Warn),
	}
	assert.Equal(t, report.WellFormed, report.DeriveStructStatus(messages))
}

func TestDeriveStructStatus_WithError(t *testing.T) {
	messages := []report.TestResult{
		report.NewTestResult("CSIPSTR1", "/", "root missing METS.xml", report.Error),
	}
	assert.Equal(t, report.NotWellFormed, report.DeriveStructStatus(messages))
}

func TestNewStructResults_DerivesStatus(t *testing.T) {
	results := report.NewStructResults(nil)
	assert.Equal(t, report.WellFormed, results.Status)
	assert.Empty(t, results.Messages)
}

func TestSeverity_JSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(report.Error)
	require.NoError(t, err)
	assert.Equal(t, `"Error"`, string(b))

	var s report.Severity
	require.NoError(t, json.Unmarshal([]byte(`"warn"`), &s))
	assert.Equal(t, report.Warn, s)
}

func TestStructStatus_JSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(report.NotWellFormed)
	require.NoError(t, err)
	assert.Equal(t, `"notwellformed"`, string(b))
}

func TestNewReport_GeneratesUniqueUID(t *testing.T) {
	pkg := report.InformationPackage{Details: report.NewPackageDetails("/tmp/pkg.zip", 100)}
	r1 := report.NewReport(pkg, report.NewStructResults(nil), nil)
	r2 := report.NewReport(pkg, report.NewStructResults(nil), nil)
	assert.NotEqual(t, r1.UID, r2.UID)
	assert.Equal(t, "pkg.zip", r1.Package.Details.Name)
}

func TestMergeMetadataChecks_CombinesMultipleSectionResults(t *testing.T) {
	a := report.NewMetadataChecks([]report.TestResult{report.NewTestResult("CSIP1", "root", "m", report.Error)})
	b := report.NewMetadataChecks([]report.TestResult{report.NewTestResult("CSIP60", "rep1", "m", report.Warn)})
	merged := report.MergeMetadataChecks(a, b)
	assert.Len(t, merged.Messages, 2)
	assert.Equal(t, report.NotValid, merged.Status)
}

func TestNewReport_MetadataNilWhenNotWellFormed(t *testing.T) {
	structure := report.NewStructResults([]report.TestResult{
		report.NewTestResult("CSIPSTR1", "/", "missing METS.xml", report.Error),
	})
	r := report.NewReport(report.InformationPackage{}, structure, nil)
	assert.Nil(t, r.Metadata)
	assert.Equal(t, report.NotWellFormed, r.Structure.Status)
}
