package annotations

// DefaultAnnotationsFile is the CVAT export read when no file is configured
const DefaultAnnotationsFile = "july_annotations_v2.xml"

// DefaultAreaThreshold is the minimum calving box area (a 50x50 box)
const DefaultAreaThreshold = 50 * 50

// CVAT labels consumed by the extractor
const (
	LabelUsability           = "Usability"
	LabelSignificantRotation = "Significant rotation"
	LabelCalving             = "Calving"
)

// Usability is the frame-level quality class attached by the Usability tag
type Usability string

const (
	Usable          Usability = "usable"
	PartiallyUsable Usability = "partially usable"
	Unusable        Usability = "unusable"
)

// ParseUsability returns the usability class for a CVAT attribute value.
// Only the three known values are accepted.
func ParseUsability(s string) (Usability, bool) {
	switch u := Usability(s); u {
	case Usable, PartiallyUsable, Unusable:
		return u, true
	}
	return "", false
}

// FrameRecord is the label data extracted from one <image> element.
// Nil fields were not set by any tag or box.
type FrameRecord struct {
	ID          string     `json:"id"`
	Usability   *Usability `json:"usability,omitempty"`
	Rotation    *bool      `json:"rotation,omitempty"`
	Calving     *bool      `json:"calving,omitempty"`
	CalvingArea *float64   `json:"calving_area,omitempty"`
}

// IsUnlabeled reports whether the record carries no labels at all
func (r FrameRecord) IsUnlabeled() bool {
	return r.Usability == nil && r.Rotation == nil && r.Calving == nil
}

// IsCalving reports whether a qualifying calving box was found
func (r FrameRecord) IsCalving() bool {
	return r.Calving != nil && *r.Calving
}

// HasRotation reports whether the frame was tagged with a significant rotation
func (r FrameRecord) HasRotation() bool {
	return r.Rotation != nil && *r.Rotation
}

// UsabilityIs reports whether the record's usability equals u
func (r FrameRecord) UsabilityIs(u Usability) bool {
	return r.Usability != nil && *r.Usability == u
}

// RawImage is an <image> element as it appears in the export, before extraction
type RawImage struct {
	Name  string
	Tags  []RawTag
	Boxes []RawBox
}

// RawTag is a frame-level <tag> with the text of its <attribute> children
type RawTag struct {
	Label      string
	Attributes []string
}

// RawBox is a <box>; nil coordinates were absent from the element
type RawBox struct {
	Label string
	XTL   *string
	YTL   *string
	XBR   *string
	YBR   *string
}
