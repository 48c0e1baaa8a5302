package annotations

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Loader handles loading of a CVAT for Images 1.1 export
type Loader struct {
	annotationsPath string
	areaThreshold   float64
}

// NewLoader creates a new annotation loader. A non-positive threshold
// falls back to DefaultAreaThreshold.
func NewLoader(annotationsPath string, areaThreshold float64) *Loader {
	if areaThreshold <= 0 {
		areaThreshold = DefaultAreaThreshold
	}
	return &Loader{
		annotationsPath: annotationsPath,
		areaThreshold:   areaThreshold,
	}
}

// Path returns the export file the loader reads
func (l *Loader) Path() string {
	return l.annotationsPath
}

// LoadImages reads the raw <image> elements in document order
func (l *Loader) LoadImages() ([]RawImage, error) {
	slog.Debug("Opening annotation file", "path", l.annotationsPath)

	file, err := os.Open(l.annotationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	slog.Debug("Annotation file stats", "size_bytes", info.Size(), "size_mb", info.Size()/1024/1024)

	images, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", l.annotationsPath, err)
	}

	slog.Debug("Finished reading annotation file", "total_images", len(images))

	return images, nil
}

// Load reads the export and extracts one FrameRecord per image
func (l *Loader) Load() ([]FrameRecord, error) {
	images, err := l.LoadImages()
	if err != nil {
		return nil, err
	}
	return ExtractAll(images, l.areaThreshold)
}

// LoadSample loads the first limit records (useful for inspection)
func (l *Loader) LoadSample(limit int) ([]FrameRecord, error) {
	images, err := l.LoadImages()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(images) > limit {
		images = images[:limit]
	}
	return ExtractAll(images, l.areaThreshold)
}

type xmlImage struct {
	Name  *string  `xml:"name,attr"`
	Tags  []xmlTag `xml:"tag"`
	Boxes []xmlBox `xml:"box"`
}

type xmlTag struct {
	Label      string         `xml:"label,attr"`
	Attributes []xmlAttribute `xml:"attribute"`
}

type xmlAttribute struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlBox struct {
	Label string  `xml:"label,attr"`
	XTL   *string `xml:"xtl,attr"`
	YTL   *string `xml:"ytl,attr"`
	XBR   *string `xml:"xbr,attr"`
	YBR   *string `xml:"ybr,attr"`
}

// Parse decodes a CVAT export from r. Only <image> children of the root
// element are returned; everything else (meta, version, ...) is skipped.
func Parse(r io.Reader) ([]RawImage, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var images []RawImage
	inRoot := false
	sawRoot := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !inRoot {
				if sawRoot {
					return nil, fmt.Errorf("%w: multiple root elements", ErrMalformedInput)
				}
				inRoot, sawRoot = true, true
				continue
			}
			if t.Name.Local != "image" {
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
				}
				continue
			}

			var xi xmlImage
			if err := dec.DecodeElement(&xi, &t); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
			}
			if xi.Name == nil {
				return nil, fmt.Errorf("%w: image #%d has no name attribute", ErrSchema, len(images)+1)
			}
			images = append(images, xi.raw())

			if len(images)%1000 == 0 {
				slog.Debug("Reading annotations", "images_read", len(images))
			}
		case xml.EndElement:
			inRoot = false
		case xml.CharData:
			if !inRoot && len(strings.TrimSpace(string(t))) > 0 {
				return nil, fmt.Errorf("%w: text outside root element", ErrMalformedInput)
			}
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedInput)
	}

	return images, nil
}

func (xi xmlImage) raw() RawImage {
	img := RawImage{Name: *xi.Name}
	for _, t := range xi.Tags {
		tag := RawTag{Label: t.Label}
		for _, a := range t.Attributes {
			tag.Attributes = append(tag.Attributes, a.Value)
		}
		img.Tags = append(img.Tags, tag)
	}
	for _, b := range xi.Boxes {
		img.Boxes = append(img.Boxes, RawBox{
			Label: b.Label,
			XTL:   b.XTL,
			YTL:   b.YTL,
			XBR:   b.XBR,
			YBR:   b.YBR,
		})
	}
	return img
}

// charsetReader decodes non-UTF-8 exports, e.g. encoding="ISO-8859-1"
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
