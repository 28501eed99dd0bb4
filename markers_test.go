package jpegli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMHeaderRejectsBadMarker(t *testing.T) {
	m := newMarkerStore()
	err := m.writeMHeader(0x01, 4)
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, CodeUnsupportedMarker, jerr.Code)
}

func TestWriteMHeaderRejectsOversizeLength(t *testing.T) {
	m := newMarkerStore()
	err := m.writeMHeader(markerCOM, maxBytesInMarker+1)
	require.Error(t, err)
}

func TestWriteMByteWithoutHeaderFails(t *testing.T) {
	m := newMarkerStore()
	err := m.writeMByte(0x42)
	require.Error(t, err)
}

func TestWriteBytesRoundTrip(t *testing.T) {
	m := newMarkerStore()
	require.NoError(t, m.writeBytes(markerCOM, []byte("hello")))
	require.Len(t, m.blobs, 1)
	blob := m.blobs[0]
	assert.Equal(t, byte(0xFF), blob[0])
	assert.Equal(t, byte(markerCOM), blob[1])
	size := int(blob[2])<<8 | int(blob[3])
	assert.Equal(t, len("hello")+2, size)
	assert.Equal(t, []byte("hello"), blob[4:])
}

func TestWriteICCProfileChunkingAndRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, maxICCChunkSize*2+100)
	m := newMarkerStore()
	require.NoError(t, m.writeICCProfile(data))

	var app2 int
	for _, b := range m.blobs {
		if len(b) >= 2 && b[1] == markerAPP2 {
			app2++
		}
	}
	assert.Equal(t, 3, app2)

	out, err := m.parseChunkedMarker(markerAPP2, iccSignature, false)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestWriteICCProfileEmpty(t *testing.T) {
	m := newMarkerStore()
	require.NoError(t, m.writeICCProfile(nil))
	out, err := m.parseChunkedMarker(markerAPP2, iccSignature, false)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestParseChunkedMarkerDetectsMissingChunk(t *testing.T) {
	m := newMarkerStore()
	payload := append([]byte(iccSignature), 1, 2)
	payload = append(payload, 0xAA)
	require.NoError(t, m.writeBytes(markerAPP2, payload))

	_, err := m.parseChunkedMarker(markerAPP2, iccSignature, false)
	require.Error(t, err)
}

func TestParseChunkedMarkerDetectsDuplicateIndex(t *testing.T) {
	m := newMarkerStore()
	p1 := append([]byte(iccSignature), 1, 2, 0xAA)
	p2 := append([]byte(iccSignature), 1, 2, 0xBB)
	require.NoError(t, m.writeBytes(markerAPP2, p1))
	require.NoError(t, m.writeBytes(markerAPP2, p2))

	_, err := m.parseChunkedMarker(markerAPP2, iccSignature, false)
	require.Error(t, err)
}

func TestParseChunkedMarkerRejectsOutOfOrderUnlessPermitted(t *testing.T) {
	m := newMarkerStore()
	p2 := append([]byte(iccSignature), 2, 2, 0xBB)
	p1 := append([]byte(iccSignature), 1, 2, 0xAA)
	require.NoError(t, m.writeBytes(markerAPP2, p2))
	require.NoError(t, m.writeBytes(markerAPP2, p1))

	_, err := m.parseChunkedMarker(markerAPP2, iccSignature, false)
	require.Error(t, err)

	out, err := m.parseChunkedMarker(markerAPP2, iccSignature, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, out)
}

func TestSetICCAppMarkerReplacesExisting(t *testing.T) {
	m := newMarkerStore()
	require.NoError(t, m.writeICCProfile([]byte{1, 2, 3}))
	m.setICCAppMarker([]byte{9, 9})

	var app2Count int
	for _, b := range m.blobs {
		if len(b) >= 2 && b[1] == markerAPP2 {
			app2Count++
			assert.Equal(t, []byte{9, 9}, b[4:])
		}
	}
	assert.Equal(t, 1, app2Count)
}
