package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedMets = `<?xml version="1.0" encoding="UTF-8"?>
<mets:mets xmlns:mets="http://www.loc.gov/METS/" xmlns:xlink="http://www.w3.org/1999/xlink" OBJID="urn:uuid:example" TYPE="Other">
  <mets:metsHdr CREATEDATE="2024-01-01T00:00:00Z">
    <mets:agent ROLE="CREATOR"><mets:note>validator</mets:note></mets:agent>
  </mets:metsHdr>
  <mets:fileSec>
    <mets:fileGrp USE="Datastreams">
      <mets:file ID="f1" SIZE="5" CHECKSUMTYPE="SHA256" CHECKSUM="2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824">
        <mets:FLocat xlink:href="data/a.txt" LOCTYPE="URL"/>
      </mets:file>
    </mets:fileGrp>
  </mets:fileSec>
</mets:mets>
`

func writePackageDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"metadata/descriptive", "metadata/preservation", "data"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "METS.xml"), []byte(wellFormedMets), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "a.txt"), []byte("hello"), 0o644))
	return root
}

func TestCLIHelp(t *testing.T) {
	cmd := exec.Command("go", "run", ".", "--help")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "ip-check")
	assert.Contains(t, string(output), "--recurse")
}

func TestCLIMissingPathExitsOne(t *testing.T) {
	cmd := exec.Command("go", "run", ".", filepath.Join(t.TempDir(), "nope"))
	err := cmd.Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}

func TestCLIUnsupportedFormatExitsTwo(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a package"), 0o644))

	cmd := exec.Command("go", "run", ".", path)
	err := cmd.Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
}

func TestCLIWellFormedDirectoryExitsZeroWithJSON(t *testing.T) {
	root := writePackageDir(t)

	cmd := exec.Command("go", "run", ".", root)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI should succeed: %s", string(output))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(output, &decoded), "output should be valid JSON: %s", string(output))
	assert.Contains(t, decoded, "structure")
}

func TestCLIVerboseProducesTable(t *testing.T) {
	root := writePackageDir(t)

	cmd := exec.Command("go", "run", ".", "--verbose", root)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI should succeed: %s", string(output))
	assert.Contains(t, string(output), filepath.Base(root))
}

func TestCLIStructureFlagSkipsMetadata(t *testing.T) {
	root := writePackageDir(t)

	cmd := exec.Command("go", "run", ".", "--structure", root)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI should succeed: %s", string(output))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(output, &decoded))
	assert.Nil(t, decoded["metadata"])
}
