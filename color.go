package jpegli

// runColorPipeline implements C5: gray replication, ICC parsing with
// sRGB/gray fallback, the XYB/YCbCr branch, and edge-replication padding
// to a multiple of 8<<max_shift in each dimension.
func (c *CompressionContext) runColorPipeline() error {
	img := c.master.input

	if c.numComponents == 1 {
		copyPlane(img.planes[1], img.planes[0])
		copyPlane(img.planes[2], img.planes[0])
	}

	_, iccErr := c.markers.parseChunkedMarker(markerAPP2, iccSignature, false)
	if iccErr != nil {
		c.logger().Warn("icc profile missing or corrupt, falling back to sRGB", "error", iccErr)
	}

	if c.master.xybMode {
		if c.numComponents != 3 || c.inColorSpace != ColorSpaceRGB {
			return newError(CodeXybRequiresRGB, "xyb mode requires 3-component RGB input")
		}
		c.master.xybConverter.Convert(img, c.master.intensityTarget)
		// User-provided ICC is discarded in XYB mode: the synthesized XYB
		// profile always replaces the APP2 slot (spec.md §9 Open Question).
		iccPayload := append([]byte(iccSignature), 1, 1)
		c.markers.setICCAppMarker(append(iccPayload, synthesizeXYBICCProfile()...))
	} else {
		rgbToYCbCr(img)
	}

	blockSize := 8 << c.maxShift
	targetW := divCeil(c.imageWidth, blockSize) * blockSize
	targetH := divCeil(c.imageHeight, blockSize) * blockSize
	for i := range img.planes {
		img.planes[i] = padPlaneEdgeReplicate(img.planes[i], c.imageWidth, c.imageHeight, targetW, targetH)
	}
	return nil
}

func copyPlane(dst, src *plane) {
	copy(dst.pix, src.pix)
}

// padPlaneEdgeReplicate returns a plane of size targetW x targetH whose
// top-left origW x origH region is copied from src and whose border is
// edge-replicated, per spec.md §4.5.
func padPlaneEdgeReplicate(src *plane, origW, origH, targetW, targetH int) *plane {
	out := newPlane(targetW, targetH)
	for y := 0; y < targetH; y++ {
		sy := y
		if sy >= origH {
			sy = origH - 1
		}
		srcRow := src.row(sy)
		dstRow := out.row(y)
		for x := 0; x < targetW; x++ {
			sx := x
			if sx >= origW {
				sx = origW - 1
			}
			dstRow[x] = srcRow[sx]
		}
	}
	return out
}
