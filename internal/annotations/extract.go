package annotations

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Extract builds the FrameRecord for one image.
//
// An image without any <tag> is returned fully unlabeled and its boxes are
// not looked at. Otherwise the first Usability tag decides usability, any
// Significant rotation tag sets rotation, and the first Calving box whose
// area reaches areaThreshold sets calving and its area.
func Extract(img RawImage, areaThreshold float64) (FrameRecord, error) {
	rec := FrameRecord{ID: img.Name}

	if len(img.Tags) == 0 {
		return rec, nil
	}

	usabilitySeen := false
	for _, tag := range img.Tags {
		switch tag.Label {
		case LabelUsability:
			if usabilitySeen {
				continue
			}
			usabilitySeen = true
			if len(tag.Attributes) == 0 {
				continue
			}
			if u, ok := ParseUsability(tag.Attributes[0]); ok {
				rec.Usability = &u
			}
		case LabelSignificantRotation:
			rotation := true
			rec.Rotation = &rotation
		}
	}

	for _, box := range img.Boxes {
		if box.Label != LabelCalving {
			continue
		}
		area, err := box.Area()
		if err != nil {
			return FrameRecord{}, fmt.Errorf("image %q: %w", img.Name, err)
		}
		if area < areaThreshold {
			continue
		}
		calving := true
		rec.Calving = &calving
		rec.CalvingArea = &area
		break
	}

	return rec, nil
}

// ExtractAll runs Extract over images, keeping their order
func ExtractAll(images []RawImage, areaThreshold float64) ([]FrameRecord, error) {
	records := make([]FrameRecord, 0, len(images))
	for _, img := range images {
		rec, err := Extract(img, areaThreshold)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Area returns |(xbr - xtl) * (ytl - ybr)|
func (b RawBox) Area() (float64, error) {
	xtl, err := parseCoord("xtl", b.XTL)
	if err != nil {
		return 0, err
	}
	ytl, err := parseCoord("ytl", b.YTL)
	if err != nil {
		return 0, err
	}
	xbr, err := parseCoord("xbr", b.XBR)
	if err != nil {
		return 0, err
	}
	ybr, err := parseCoord("ybr", b.YBR)
	if err != nil {
		return 0, err
	}
	return math.Abs((xbr - xtl) * (ytl - ybr)), nil
}

// parseCoord rejects NaN and Inf as malformed, so a box with such a
// coordinate never qualifies as calving.
func parseCoord(name string, v *string) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformedBox, name)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrMalformedBox, name, *v)
	}
	return f, nil
}
