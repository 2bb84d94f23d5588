// Package uploader runs the admin upload pipeline: per selected file it
// extracts metadata, generates the public derivatives locally, obtains
// signed write authorizations, performs the three direct-to-storage writes,
// and commits the photo record. The original bytes never pass through the
// API server.
package uploader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Jophkins/lastshoot/internal/exifmeta"
	"github.com/Jophkins/lastshoot/internal/models"
	"github.com/Jophkins/lastshoot/internal/variants"
)

// Status is an item's position in the pipeline. Transitions move strictly
// forward; the only back-edge is retry out of error.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusProcessing Status = "processing"
	StatusUploading  Status = "uploading"
	StatusCommitting Status = "committing"
	StatusDone       Status = "done"
	StatusError      Status = "error"
)

// Item tracks one source file across the pipeline's suspension points.
// Err is set only when Status is StatusError.
type Item struct {
	Path   string
	Status Status
	Err    string
}

// Batch owns a set of items and runs one independent pipeline per item.
// Items are mutated only through the batch's lock, so callers may poll
// Items() while a run is in flight.
type Batch struct {
	mu     sync.Mutex
	client *Client
	items  []*Item
	logger *zap.Logger
}

func NewBatch(client *Client, logger *zap.Logger) *Batch {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Batch{client: client, logger: logger}
}

func (b *Batch) Add(paths ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range paths {
		b.items = append(b.items, &Item{Path: p, Status: StatusIdle})
	}
}

// Items returns a snapshot of the current per-item state.
func (b *Batch) Items() []Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Item, len(b.items))
	for i, it := range b.items {
		out[i] = *it
	}
	return out
}

// Run executes one pipeline per runnable item and returns only after every
// started pipeline has settled. A failed item lands in StatusError without
// cancelling or blocking its siblings. Items already done are skipped, so
// re-running a batch retries exactly the idle and errored items.
func (b *Batch) Run(ctx context.Context) {
	b.mu.Lock()
	var runnable []*Item
	for _, it := range b.items {
		if it.Status == StatusIdle || it.Status == StatusError {
			runnable = append(runnable, it)
		}
	}
	b.mu.Unlock()

	var wg sync.WaitGroup
	for _, it := range runnable {
		wg.Add(1)
		go func(it *Item) {
			defer wg.Done()
			b.runItem(ctx, it)
		}(it)
	}
	wg.Wait()
}

func (b *Batch) runItem(ctx context.Context, it *Item) {
	b.setStatus(it, StatusProcessing)

	data, err := os.ReadFile(it.Path)
	if err != nil {
		b.fail(it, err)
		return
	}

	// Extraction never fails the pipeline: missing or corrupt EXIF just
	// yields an empty record.
	meta := exifmeta.Extract(bytes.NewReader(data))

	derived, err := variants.Generate(bytes.NewReader(data))
	if err != nil {
		b.fail(it, err)
		return
	}

	b.setStatus(it, StatusUploading)

	filename := filepath.Base(it.Path)
	contentType := contentTypeForExt(filepath.Ext(filename))

	// One batched signing call covers all three variants of this file.
	signed, err := b.client.Sign(ctx, models.SignUploadRequest{
		Files: []models.SignUploadFile{
			{Filename: filename, ContentType: contentType, Variant: models.VariantOriginal},
			{Filename: filename, ContentType: variants.ContentType, Variant: models.VariantPreview},
			{Filename: filename, ContentType: variants.ContentType, Variant: models.VariantThumb},
		},
	})
	if err != nil {
		b.fail(it, err)
		return
	}

	byVariant := make(map[models.Variant]models.SignedUploadItem, len(signed.Items))
	for _, item := range signed.Items {
		byVariant[item.Variant] = item
	}
	original, okO := byVariant[models.VariantOriginal]
	preview, okP := byVariant[models.VariantPreview]
	thumb, okT := byVariant[models.VariantThumb]
	if !okO || !okP || !okT {
		b.fail(it, errMissingVariant)
		return
	}

	// The three writes share no state and run truly in parallel.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.client.PutObject(gctx, original.URL, original.Key, contentType, data) })
	g.Go(func() error {
		return b.client.PutObject(gctx, preview.URL, preview.Key, variants.ContentType, derived.Preview)
	})
	g.Go(func() error { return b.client.PutObject(gctx, thumb.URL, thumb.Key, variants.ContentType, derived.Thumb) })
	if err := g.Wait(); err != nil {
		b.fail(it, err)
		return
	}

	b.setStatus(it, StatusCommitting)

	// Photos always commit as drafts; publishing is a separate admin action.
	_, err = b.client.Commit(ctx, models.CommitPhotoRequest{
		OriginalKey: original.Key,
		PreviewKey:  preview.Key,
		ThumbKey:    thumb.Key,
		Title:       strings.TrimSuffix(filename, filepath.Ext(filename)),
		IsPublished: false,
		CameraMake:  meta.CameraMake,
		CameraModel: meta.CameraModel,
		LensModel:   meta.LensModel,
		FocalLength: meta.FocalLength,
		Aperture:    meta.Aperture,
		Shutter:     meta.Shutter,
		ISO:         meta.ISO,
		TakenAt:     meta.TakenAt,
	})
	if err != nil {
		b.fail(it, err)
		return
	}

	b.setStatus(it, StatusDone)
}

func (b *Batch) setStatus(it *Item, s Status) {
	b.mu.Lock()
	it.Status = s
	it.Err = ""
	b.mu.Unlock()
	b.logger.Info("upload item status", zap.String("path", it.Path), zap.String("status", string(s)))
}

func (b *Batch) fail(it *Item, err error) {
	b.mu.Lock()
	it.Status = StatusError
	it.Err = err.Error()
	b.mu.Unlock()
	b.logger.Warn("upload item failed", zap.String("path", it.Path), zap.Error(err))
}
