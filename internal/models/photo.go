package models

import (
	"time"
)

// Variant is one of the three derived forms of an uploaded image.
// Originals stay private in storage; preview and thumb are public.
type Variant string

const (
	VariantOriginal Variant = "original"
	VariantPreview  Variant = "preview"
	VariantThumb    Variant = "thumb"
)

// Photo is the durable record created by the commit endpoint once all
// three variants are confirmed written to storage. Soft deletion is a
// timestamp, never a row removal.
type Photo struct {
	ID          string     `json:"id"`
	OriginalKey string     `json:"originalKey"`
	PreviewKey  string     `json:"previewKey"`
	ThumbKey    string     `json:"thumbKey"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	IsPublished bool       `json:"isPublished"`
	DeletedAt   *time.Time `json:"deletedAt"`

	CameraMake  *string    `json:"cameraMake,omitempty"`
	CameraModel *string    `json:"cameraModel,omitempty"`
	LensModel   *string    `json:"lensModel,omitempty"`
	FocalLength *float64   `json:"focalLength,omitempty"`
	Aperture    *float64   `json:"aperture,omitempty"`
	Shutter     *string    `json:"shutter,omitempty"`
	ISO         *int       `json:"iso,omitempty"`
	TakenAt     *time.Time `json:"takenAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
