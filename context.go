package jpegli

import (
	"log/slog"

	"github.com/google/uuid"
)

// state is the encoder lifecycle of spec.md §4.8.
type state int

const (
	stateFresh state = iota
	stateParams
	stateWriting
	stateReady
	stateDone
	stateDead
)

// CompressionContext is the root object of spec.md §3: it owns its master
// parameters, component table, marker store, and plane buffers exclusively,
// and walks the FRESH->PARAMS->WRITING->READY->DONE state machine.
type CompressionContext struct {
	// EncodeID correlates every log line produced during one encode.
	EncodeID uuid.UUID

	state state
	log   *slog.Logger

	imageWidth, imageHeight int
	inputComponents         int
	inColorSpace            ColorSpace
	numComponents           int
	restartInterval         int
	nextScanline            int

	maxHSampFactor int
	maxVSampFactor int
	maxShift       int
	xsizeBlocks    int
	ysizeBlocks    int
	progressiveMode bool

	components []ComponentInfo

	dest Destination

	master *encoderMaster
	markers *markerStore
}

// encoderMaster mirrors spec.md §3's EncoderMaster.
type encoderMaster struct {
	distance            float64
	xybMode              bool
	useStdTables         bool
	useAdaptiveQuant     bool
	progressiveLevel     int
	dataType             DataType
	endianness           Endianness
	forceBaseline        bool
	outColorSpace        ColorSpace
	transferFunction     TransferFunction
	intensityTarget      float64

	scans scanList

	input *image3

	dct              DCT
	quantField       AdaptiveQuantField
	xybConverter     XYBConverter
	huffmanOptimizer HuffmanOptimizer
}

// CreateCompress allocates a fresh CompressionContext with the defaults of
// spec.md §6: distance=1.0, progressive_level=2, adaptive_quant=on,
// data_type=U8, endianness=NATIVE, restart_interval=0.
func CreateCompress() *CompressionContext {
	ctx := &CompressionContext{
		EncodeID: uuid.New(),
		state:    stateFresh,
		log:      slog.Default(),
		markers:  newMarkerStore(),
		master: &encoderMaster{
			distance:         1.0,
			progressiveLevel: 2,
			useAdaptiveQuant: true,
			dataType:         DataTypeU8,
			endianness:       EndianNative,
			outColorSpace:    ColorSpaceRGB,
			intensityTarget:  255.0,
			dct:              defaultDCT(),
			quantField:       defaultAdaptiveQuantField(),
			xybConverter:     defaultXYBConverter(),
			huffmanOptimizer: defaultHuffmanOptimizer(),
		},
	}
	return ctx
}

// SetLogger overrides the default slog.Logger used for debug/warn
// diagnostics during this encode.
func (c *CompressionContext) SetLogger(l *slog.Logger) {
	c.log = l.With("encode_id", c.EncodeID)
}

func (c *CompressionContext) logger() *slog.Logger {
	if c.log == nil {
		return slog.Default()
	}
	return c.log
}

// SetImage records the image dimensions and input color space. It must be
// called before StartCompress (FRESH/PARAMS state).
func (c *CompressionContext) SetImage(width, height int, inputComponents int, cs ColorSpace) error {
	if c.state != stateFresh && c.state != stateParams {
		return newError(CodeScanEncodingFailed, "SetImage called out of order in state %d", c.state)
	}
	c.imageWidth, c.imageHeight = width, height
	c.inputComponents = inputComponents
	c.inColorSpace = cs
	c.numComponents = inputComponents
	c.state = stateParams
	return nil
}

// SetXYBMode toggles the XYB path. Requires 3-channel RGB input.
func (c *CompressionContext) SetXYBMode(on bool) error {
	if on && (c.numComponents != 3 || c.inColorSpace != ColorSpaceRGB) {
		return newError(CodeXybRequiresRGB, "xyb mode requires 3-component RGB input")
	}
	c.master.xybMode = on
	return nil
}

// SetDefaults populates the component table: all factors 1, quant_tbl_no=c,
// ids 1..N, or 'R','G','B' in XYB mode with blue subsampled 2x horizontally
// and vertically, others 1x (i.e. R/G get samp_factor 2, B gets 1 — higher
// samp_factor means less subsampling relative to the MCU grid; see
// SPEC_FULL.md §3).
func (c *CompressionContext) SetDefaults() {
	c.components = make([]ComponentInfo, c.numComponents)
	if c.master.xybMode && c.numComponents == 3 {
		ids := []byte{'R', 'G', 'B'}
		factors := []int{2, 2, 1}
		for i := range c.components {
			c.components[i] = ComponentInfo{
				HSampFactor: factors[i], VSampFactor: factors[i],
				QuantTblNo: i, ComponentIndex: i, ComponentID: ids[i],
			}
		}
		return
	}
	for i := range c.components {
		c.components[i] = ComponentInfo{
			HSampFactor: 1, VSampFactor: 1,
			QuantTblNo: i, ComponentIndex: i, ComponentID: byte(i + 1),
		}
	}
}

// SetColorspace records the output colorspace.
func (c *CompressionContext) SetColorspace(cs ColorSpace) { c.master.outColorSpace = cs }

// SetTransferFunction records the input's transfer function, used only to
// adjust the quant global scale (§4.6).
func (c *CompressionContext) SetTransferFunction(tf TransferFunction) { c.master.transferFunction = tf }

// SetDistance sets the perceptual distance directly.
func (c *CompressionContext) SetDistance(d float64) { c.master.distance = d }

// SetQuality sets distance = quality_to_distance(q).
func (c *CompressionContext) SetQuality(q float64, forceBaseline bool) {
	c.master.distance = qualityToDistance(q)
	c.master.forceBaseline = forceBaseline
}

// SetLinearQuality sets distance = linear_quality_to_distance(s).
func (c *CompressionContext) SetLinearQuality(s int, forceBaseline bool) {
	c.master.distance = linearQualityToDistance(s)
	c.master.forceBaseline = forceBaseline
}

// AddQuantTable is a documented no-op: tables are always derived from
// distance. See spec.md §9's Open Question / SPEC_FULL.md §3.
func (c *CompressionContext) AddQuantTable(_ ...any) {}

// SimpleProgression sets progressive_level = 2.
func (c *CompressionContext) SimpleProgression() { c.master.progressiveLevel = 2 }

// SuppressTables is a documented no-op, mirroring jpegli_suppress_tables.
func (c *CompressionContext) SuppressTables(_ bool) {}

// SetInputFormat sets the sample type and endianness used by WriteScanlines.
func (c *CompressionContext) SetInputFormat(t DataType, e Endianness) {
	c.master.dataType = t
	c.master.endianness = e
}

// EnableAdaptiveQuantization toggles the adaptive field.
func (c *CompressionContext) EnableAdaptiveQuantization(on bool) { c.master.useAdaptiveQuant = on }

// SetProgressiveLevel sets the progression level; L must be >= 0.
func (c *CompressionContext) SetProgressiveLevel(level int) error {
	if level < 0 {
		return newError(CodeInvalidProgressiveLevel, "progressive level %d is negative", level)
	}
	c.master.progressiveLevel = level
	return nil
}

// UseStandardQuantTables forces the QUANT_STD path.
func (c *CompressionContext) UseStandardQuantTables() { c.master.useStdTables = true }

// SetRestartInterval sets the restart interval in MCUs; 0 disables restart
// markers.
func (c *CompressionContext) SetRestartInterval(n int) { c.restartInterval = n }

// SetScanScript installs a user-supplied (borrowed) scan script, overriding
// the planner.
func (c *CompressionContext) SetScanScript(scans []ScanInfo) {
	c.master.scans = borrowedScanList(scans)
}

// WriteMHeader opens a marker blob. See markers.go.
func (c *CompressionContext) WriteMHeader(marker byte, datalen int) error {
	return c.markers.writeMHeader(marker, datalen)
}

// WriteMByte appends one byte to the open marker blob. See markers.go.
func (c *CompressionContext) WriteMByte(v byte) error { return c.markers.writeMByte(v) }

// WriteICCProfile writes a chunked ICC profile. See markers.go.
func (c *CompressionContext) WriteICCProfile(data []byte) error {
	return c.markers.writeICCProfile(data)
}

// ParseChunkedMarker re-parses a previously written chunked marker
// sequence. See markers.go.
func (c *CompressionContext) ParseChunkedMarker(markerType byte, tag string, allowPermutations bool) ([]byte, error) {
	return c.markers.parseChunkedMarker(markerType, tag, allowPermutations)
}

// SetDestination installs the output sink.
func (c *CompressionContext) SetDestination(d Destination) { c.dest = d }

// Destroy releases all context-owned buffers. Safe to call from any state.
func (c *CompressionContext) Destroy() {
	c.master.input = nil
	c.components = nil
	c.markers = nil
	c.state = stateDead
}
