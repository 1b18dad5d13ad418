package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData_Defaults(t *testing.T) {
	var buf bytes.Buffer
	PrintBuildData(&buf)

	out := buf.String()
	assert.Contains(t, out, "Build version: N/A\n")
	assert.Contains(t, out, "Build date: N/A\n")
	assert.Contains(t, out, "Build commit: N/A\n")
}

func TestPrintBuildData_Injected(t *testing.T) {
	old := buildVersion
	t.Cleanup(func() { buildVersion = old })
	buildVersion = "v1.2.3"

	var buf bytes.Buffer
	PrintBuildData(&buf)
	assert.Contains(t, buf.String(), "Build version: v1.2.3\n")
}
