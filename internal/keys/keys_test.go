package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jophkins/lastshoot/internal/models"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		variant models.Variant
		batchID string
		ext     string
		want    string
	}{
		{
			name:    "original keeps caller extension",
			variant: models.VariantOriginal,
			batchID: "b1",
			ext:     "png",
			want:    "original/b1.png",
		},
		{
			name:    "original without extension defaults",
			variant: models.VariantOriginal,
			batchID: "b1",
			ext:     "",
			want:    "original/b1.jpg",
		},
		{
			name:    "preview always re-encoded extension",
			variant: models.VariantPreview,
			batchID: "b2",
			ext:     "png",
			want:    "preview/b2.jpg",
		},
		{
			name:    "thumb always re-encoded extension",
			variant: models.VariantThumb,
			batchID: "b2",
			ext:     "heic",
			want:    "thumb/b2.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.variant, tt.batchID, tt.ext))
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	first := Build(models.VariantPreview, "52c7d9e3", "png")
	second := Build(models.VariantPreview, "52c7d9e3", "png")
	assert.Equal(t, first, second)
}

func TestExtFromFilename(t *testing.T) {
	assert.Equal(t, "jpg", ExtFromFilename("shot.JPG"))
	assert.Equal(t, "png", ExtFromFilename("dir/shot.png"))
	assert.Equal(t, "jpg", ExtFromFilename("noext"))
	assert.Equal(t, "jpeg", ExtFromFilename("a.b.jpeg"))
}

func TestIsPrivate(t *testing.T) {
	assert.True(t, IsPrivate("original/b1.jpg"))
	assert.False(t, IsPrivate("preview/b1.jpg"))
	assert.False(t, IsPrivate("thumb/b1.jpg"))
	assert.False(t, IsPrivate("originals/b1.jpg"))
}
