package jpegli

// DefaultQuality mirrors the legacy 1-100 quality scale's conventional
// default, kept for parity with dlecorfec-progjpeg's DefaultQuality and
// the wider Go JPEG ecosystem (see other_examples/gen2brain-jpegli).
const DefaultQuality = 75

// Options is the ergonomic, image.Image-oriented configuration surface
// built on top of CompressionContext for callers who don't need the raw
// scanline state machine. Exactly one of Quality or Distance should be
// set; Distance, if positive, takes precedence.
type Options struct {
	// Quality is a legacy 1-100 value; ignored if Distance is positive.
	Quality int
	// Distance is a JPEG-XL-style perceptual distance; 0 or less means
	// "use Quality instead".
	Distance float64
	// ProgressiveLevel selects the scan script: 0 sequential, 1 simple
	// progression, 2 (default) full multi-pass progression.
	ProgressiveLevel int
	// XYB enables the perceptual XYB color pipeline (requires RGB input).
	XYB bool
	// UseStandardQuantTables forces the QUANT_STD (Annex K) path.
	UseStandardQuantTables bool
	// AdaptiveQuantization toggles the per-block adaptive quant field.
	// Defaults to true via NewOptions.
	AdaptiveQuantization bool
	// RestartInterval is the number of MCUs between RSTn markers; 0
	// disables restart markers.
	RestartInterval int
	// ForceBaseline clamps synthesized quant tables to 8-bit range.
	ForceBaseline bool
	// ScanScript overrides the progressive-level planner with a
	// caller-supplied scan list.
	ScanScript []ScanInfo
	// ICCProfile, if non-empty, is embedded as a chunked APP2 marker
	// (ignored in XYB mode, which always synthesizes its own profile).
	ICCProfile []byte
}

// NewOptions returns an Options populated with the package defaults
// (quality 75, progressive level 2, adaptive quantization on).
func NewOptions() *Options {
	return &Options{
		Quality:              DefaultQuality,
		ProgressiveLevel:     2,
		AdaptiveQuantization: true,
	}
}
