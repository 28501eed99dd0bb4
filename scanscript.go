package jpegli

// ScanInfo is one progressive (or the single baseline) scan template, per
// spec.md §4.3. Components lists the zero-based component indices
// participating in this scan, in scan order.
type ScanInfo struct {
	Ss, Se     int
	Ah, Al     int
	Components []int
}

// scanTemplate is the (Ss,Se,Ah,Al,interleaved) tuple of spec.md §4.3
// before it is expanded into one-or-many ScanInfo entries.
type scanTemplate struct {
	ss, se, ah, al int
	interleaved    bool
}

// buildScanScript implements C3: given a progressive level and the
// context's max_shift, produce the ordered ScanInfo list. numComponents is
// used to expand non-interleaved templates into one scan per component and
// interleaved templates into a single scan over every component.
func buildScanScript(level, maxShift, numComponents int) ([]ScanInfo, error) {
	if level < 0 {
		return nil, newError(CodeInvalidProgressiveLevel, "progressive level %d is negative", level)
	}

	var templates []scanTemplate
	switch {
	case level == 0:
		templates = []scanTemplate{
			{ss: 0, se: 63, ah: 0, al: 0, interleaved: true},
		}
	case level == 1:
		templates = []scanTemplate{
			{ss: 0, se: 0, ah: 0, al: 0, interleaved: maxShift > 0},
			{ss: 1, se: 63, ah: 0, al: 1, interleaved: false},
			{ss: 1, se: 63, ah: 1, al: 0, interleaved: false},
		}
	default: // level >= 2
		templates = []scanTemplate{
			{ss: 0, se: 0, ah: 0, al: 0, interleaved: maxShift > 0},
			{ss: 1, se: 2, ah: 0, al: 0, interleaved: false},
			{ss: 3, se: 63, ah: 0, al: 2, interleaved: false},
			{ss: 3, se: 63, ah: 2, al: 1, interleaved: false},
			{ss: 3, se: 63, ah: 1, al: 0, interleaved: false},
		}
	}

	var scans []ScanInfo
	for _, t := range templates {
		if t.interleaved {
			comps := make([]int, numComponents)
			for i := range comps {
				comps[i] = i
			}
			scans = append(scans, ScanInfo{Ss: t.ss, Se: t.se, Ah: t.ah, Al: t.al, Components: comps})
			continue
		}
		for c := 0; c < numComponents; c++ {
			scans = append(scans, ScanInfo{Ss: t.ss, Se: t.se, Ah: t.ah, Al: t.al, Components: []int{c}})
		}
	}
	return scans, nil
}

// scanList is the sum type of spec.md §9's Design Notes: either borrowed
// (a user-supplied script) or owned (planner-allocated).
type scanList struct {
	scans    []ScanInfo
	borrowed bool
}

func ownedScanList(scans []ScanInfo) scanList  { return scanList{scans: scans, borrowed: false} }
func borrowedScanList(scans []ScanInfo) scanList { return scanList{scans: scans, borrowed: true} }
