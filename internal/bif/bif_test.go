package bif_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efulang/efu/internal/bif"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := bif.NewSnapshot(0, []byte("hello\nworld\n"), []byte("warning: oops\n"))

	var buf bytes.Buffer
	require.NoError(t, bif.Encode(&buf, s))

	got, err := bif.Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, s.ExitCode, got.ExitCode)
	assert.Equal(t, s.Stdout, got.Stdout)
	assert.Equal(t, s.Stderr, got.Stderr)
}

func TestEncodeFieldOrderAndLayout(t *testing.T) {
	s := bif.NewSnapshot(2, []byte("ab"), []byte("xyz"))

	var buf bytes.Buffer
	require.NoError(t, bif.Encode(&buf, s))

	want := ":i exit_code 2\n" +
		":b stdout 2\nab\n" +
		":b stderr 3\nxyz\n"
	assert.Equal(t, want, buf.String())
}

func TestEncodeStderrLengthIndependentOfStdout(t *testing.T) {
	// spec.md §9: the source computed stderr's length from stdout's
	// length, a bug. This encoder computes each field's length from its
	// own byte slice, so a short stderr after a long stdout is not
	// truncated or padded to match stdout's length.
	s := bif.NewSnapshot(0, []byte("a very long stdout payload indeed"), []byte("x"))

	var buf bytes.Buffer
	require.NoError(t, bif.Encode(&buf, s))

	got, err := bif.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got.Stderr)
}

func TestEncodeEmptyStdoutAndStderr(t *testing.T) {
	s := bif.NewSnapshot(1, nil, nil)

	var buf bytes.Buffer
	require.NoError(t, bif.Encode(&buf, s))

	got, err := bif.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, got.ExitCode)
	assert.Empty(t, got.Stdout)
	assert.Empty(t, got.Stderr)
}

func TestNewSnapshotStampsUniqueID(t *testing.T) {
	a := bif.NewSnapshot(0, nil, nil)
	b := bif.NewSnapshot(0, nil, nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDecodeRejectsWrongFieldHeader(t *testing.T) {
	bad := bytes.NewBufferString(":i wrong_name 0\n")
	_, err := bif.Decode(bad)
	assert.Error(t, err)
}
