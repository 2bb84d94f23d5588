package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// JetStream dedupes on MsgId, so the ID must be a pure function of the
// event: a retried publish carries the same ID, a different event never
// does.
func TestEventMsgIDIsDeterministicPerEvent(t *testing.T) {
	payload := []byte(`{"photo_id":"abc-123","is_published":true}`)

	first := eventMsgID(SubjectPhotoCommitted, payload)
	second := eventMsgID(SubjectPhotoCommitted, payload)
	assert.Equal(t, first, second)

	otherSubject := eventMsgID(SubjectPhotoDeleted, payload)
	assert.NotEqual(t, first, otherSubject)

	otherPayload := eventMsgID(SubjectPhotoCommitted, []byte(`{"photo_id":"def-456"}`))
	assert.NotEqual(t, first, otherPayload)
}
