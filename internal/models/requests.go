package models

import (
	"time"
)

// SignUploadRequest is the batch signing request. The orchestrator sends
// one request per source file carrying its three variants, so the uuid
// minted for a request is the file's batch identity.
type SignUploadRequest struct {
	Files []SignUploadFile `json:"files" binding:"required,min=1,max=30,dive"`
}

type SignUploadFile struct {
	Filename    string  `json:"filename" binding:"required"`
	ContentType string  `json:"contentType" binding:"required"`
	Variant     Variant `json:"variant" binding:"required,oneof=original preview thumb"`
}

// SignedUploadItem authorizes exactly one PUT of one content type to one
// key. The URL expires 600 seconds after issuance.
type SignedUploadItem struct {
	Variant Variant `json:"variant"`
	Key     string  `json:"key"`
	URL     string  `json:"url"`
}

type SignUploadResponse struct {
	Items []SignedUploadItem `json:"items"`
}

type CommitPhotoRequest struct {
	OriginalKey string `json:"originalKey" binding:"required"`
	PreviewKey  string `json:"previewKey" binding:"required"`
	ThumbKey    string `json:"thumbKey" binding:"required"`

	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"isPublished"`

	CameraMake  *string    `json:"cameraMake,omitempty"`
	CameraModel *string    `json:"cameraModel,omitempty"`
	LensModel   *string    `json:"lensModel,omitempty"`
	FocalLength *float64   `json:"focalLength,omitempty"`
	Aperture    *float64   `json:"aperture,omitempty"`
	Shutter     *string    `json:"shutter,omitempty"`
	ISO         *int       `json:"iso,omitempty"`
	TakenAt     *time.Time `json:"takenAt,omitempty"`
}

// CommitPhotoResponse is the public-safe projection of a committed photo.
// It never carries storage keys, credentials, or signed URLs.
type CommitPhotoResponse struct {
	ID          string    `json:"id"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UpdatePhotoRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsPublished *bool    `json:"isPublished,omitempty"`

	CameraMake  *string    `json:"cameraMake,omitempty"`
	CameraModel *string    `json:"cameraModel,omitempty"`
	LensModel   *string    `json:"lensModel,omitempty"`
	FocalLength *float64   `json:"focalLength,omitempty"`
	Aperture    *float64   `json:"aperture,omitempty"`
	Shutter     *string    `json:"shutter,omitempty"`
	ISO         *int       `json:"iso,omitempty"`
	TakenAt     *time.Time `json:"takenAt,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminPhoto is one row of the admin list response.
type AdminPhoto struct {
	ID          string     `json:"id"`
	ThumbURL    string     `json:"thumbUrl"`
	Title       string     `json:"title"`
	IsPublished bool       `json:"isPublished"`
	DeletedAt   *time.Time `json:"deletedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type AdminPhotoPage struct {
	Photos     []AdminPhoto `json:"photos"`
	NextCursor *string      `json:"nextCursor"`
}

// Picture is one entry of the public gallery response.
type Picture struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

type PicturePage struct {
	Pictures   []Picture `json:"pictures"`
	NextCursor *string   `json:"nextCursor"`
}
