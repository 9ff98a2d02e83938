package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebug_SuppressedWithoutVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)
	defer SetOutput(nil)

	Debug("segmented %d clauses", 12)
	assert.Empty(t, buf.String())
}

func TestDebug_EmittedWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetVerbose(true)
	SetOutput(&buf)
	defer func() {
		SetVerbose(false)
		SetOutput(nil)
	}()

	Debug("segmented %d clauses", 12)
	assert.Contains(t, buf.String(), "segmented 12 clauses")
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestInfo_AlwaysEmitted(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)
	defer SetOutput(nil)

	Info("document %s completed", "doc-1")
	assert.Contains(t, buf.String(), "document doc-1 completed")
}
