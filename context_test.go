package jpegli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCompressDefaults(t *testing.T) {
	c := CreateCompress()
	assert.Equal(t, stateFresh, c.state)
	assert.Equal(t, 1.0, c.master.distance)
	assert.Equal(t, 2, c.master.progressiveLevel)
	assert.True(t, c.master.useAdaptiveQuant)
	assert.Equal(t, DataTypeU8, c.master.dataType)
	assert.Equal(t, EndianNative, c.master.endianness)
}

func TestStartCompressOutOfOrder(t *testing.T) {
	c := CreateCompress()
	err := c.StartCompress(true)
	require.Error(t, err)
}

func TestWriteScanlinesOutOfOrder(t *testing.T) {
	c := CreateCompress()
	_, err := c.WriteScanlines(nil, 0)
	require.Error(t, err)
}

func TestSetXYBModeRequiresRGB(t *testing.T) {
	c := CreateCompress()
	require.NoError(t, c.SetImage(4, 4, 1, ColorSpaceGrayscale))
	err := c.SetXYBMode(true)
	require.Error(t, err)
}

func TestSetDefaultsXYB(t *testing.T) {
	c := CreateCompress()
	require.NoError(t, c.SetImage(4, 4, 3, ColorSpaceRGB))
	require.NoError(t, c.SetXYBMode(true))
	c.SetDefaults()
	require.Len(t, c.components, 3)
	assert.Equal(t, byte('R'), c.components[0].ComponentID)
	assert.Equal(t, 2, c.components[0].HSampFactor)
	assert.Equal(t, 1, c.components[2].HSampFactor)
}

func TestSetDefaultsNonXYB(t *testing.T) {
	c := CreateCompress()
	require.NoError(t, c.SetImage(4, 4, 3, ColorSpaceRGB))
	c.SetDefaults()
	for i, comp := range c.components {
		assert.Equal(t, 1, comp.HSampFactor)
		assert.Equal(t, byte(i+1), comp.ComponentID)
	}
}

func TestStartCompressDerivesBlockGrid(t *testing.T) {
	c := CreateCompress()
	require.NoError(t, c.SetImage(10, 10, 3, ColorSpaceRGB))
	require.NoError(t, c.SetXYBMode(true))
	c.SetDefaults()
	require.NoError(t, c.StartCompress(true))
	assert.Equal(t, stateWriting, c.state)
	assert.Equal(t, 2, c.maxHSampFactor)
	assert.Equal(t, 1, c.maxShift)
}

func TestStartCompressRejectsAsymmetricSampling(t *testing.T) {
	c := CreateCompress()
	require.NoError(t, c.SetImage(8, 8, 1, ColorSpaceGrayscale))
	c.SetDefaults()
	c.components[0].HSampFactor = 2
	c.components[0].VSampFactor = 1
	err := c.StartCompress(true)
	require.Error(t, err)
}

func TestDestroyResetsState(t *testing.T) {
	c := CreateCompress()
	c.Destroy()
	assert.Equal(t, stateDead, c.state)
	assert.Nil(t, c.components)
}

func TestSetQualityAndLinearQualityDeriveDistance(t *testing.T) {
	c := CreateCompress()
	c.SetQuality(90, false)
	assert.InDelta(t, qualityToDistance(90), c.master.distance, 1e-9)

	c.SetLinearQuality(50, true)
	assert.InDelta(t, linearQualityToDistance(50), c.master.distance, 1e-9)
	assert.True(t, c.master.forceBaseline)
}
