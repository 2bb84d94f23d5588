package services

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Jophkins/lastshoot/internal/keys"
)

// SignedURLExpiry is how long a presigned PUT stays valid after issuance.
const SignedURLExpiry = 600 * time.Second

const (
	aclHeader     = "x-amz-acl"
	aclPrivate    = "private"
	aclPublicRead = "public-read"
)

// ACLForKey selects the access policy signed into an upload authorization.
// Keys under original/ stay private; every derivative is public-read.
func ACLForKey(key string) string {
	if keys.IsPrivate(key) {
		return aclPrivate
	}
	return aclPublicRead
}

// PresignPut issues a time-limited PUT authorization scoped to exactly one
// key, one content type, and one access policy. Storage rejects a write
// whose headers do not match what was signed, so a leaked URL cannot be
// repurposed for a different object or type.
func (m *MinioService) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	headers := http.Header{}
	headers.Set("Content-Type", contentType)
	headers.Set(aclHeader, ACLForKey(key))

	u, err := m.Client.PresignHeader(ctx, http.MethodPut, m.BucketName, key, SignedURLExpiry, url.Values{}, headers)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
