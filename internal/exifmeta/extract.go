// Package exifmeta extracts a GPS-free metadata record from image bytes.
//
// Only an explicit allow-list of tags is ever read: make, model, lens,
// focal length, f-number, exposure time, ISO, and the original capture
// timestamp. The GPS IFD is never requested and Metadata has no field that
// could carry a location, so a library upgrade cannot start leaking one.
package exifmeta

import (
	"io"
	"math"
	"strconv"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Metadata holds the persisted camera fields. Every field is optional;
// source files may lack EXIF entirely or carry partial tags.
type Metadata struct {
	CameraMake  *string    `json:"cameraMake,omitempty"`
	CameraModel *string    `json:"cameraModel,omitempty"`
	LensModel   *string    `json:"lensModel,omitempty"`
	FocalLength *float64   `json:"focalLength,omitempty"`
	Aperture    *float64   `json:"aperture,omitempty"`
	Shutter     *string    `json:"shutter,omitempty"`
	ISO         *int       `json:"iso,omitempty"`
	TakenAt     *time.Time `json:"takenAt,omitempty"`
}

const exifTimeLayout = "2006:01:02 15:04:05"

// Extract never fails the caller: unreadable or absent EXIF yields an
// empty record.
func Extract(r io.Reader) Metadata {
	x, err := exif.Decode(r)
	if err != nil {
		return Metadata{}
	}

	var meta Metadata
	meta.CameraMake = stringTag(x, exif.Make)
	meta.CameraModel = stringTag(x, exif.Model)
	meta.LensModel = stringTag(x, exif.LensModel)
	meta.FocalLength = ratTag(x, exif.FocalLength)
	meta.Aperture = ratTag(x, exif.FNumber)

	if exposure := ratTag(x, exif.ExposureTime); exposure != nil && *exposure > 0 {
		s := FormatShutter(*exposure)
		meta.Shutter = &s
	}

	if tag, err := x.Get(exif.ISOSpeedRatings); err == nil {
		if iso, err := tag.Int(0); err == nil {
			meta.ISO = &iso
		}
	}

	if tag, err := x.Get(exif.DateTimeOriginal); err == nil {
		if s, err := tag.StringVal(); err == nil {
			if t, err := time.Parse(exifTimeLayout, s); err == nil {
				utc := t.UTC()
				meta.TakenAt = &utc
			}
		}
	}

	return meta
}

// FormatShutter renders an exposure time for display: values of a second
// or more as "{n}s", faster exposures as the conventional "1/{n}".
func FormatShutter(seconds float64) string {
	if seconds >= 1 {
		return strconv.FormatFloat(seconds, 'f', -1, 64) + "s"
	}
	return "1/" + strconv.FormatInt(int64(math.Round(1/seconds)), 10)
}

func stringTag(x *exif.Exif, name exif.FieldName) *string {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	s, err := tag.StringVal()
	if err != nil || s == "" {
		return nil
	}
	return &s
}

func ratTag(x *exif.Exif, name exif.FieldName) *float64 {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return nil
	}
	v := float64(num) / float64(den)
	return &v
}
