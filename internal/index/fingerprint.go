package index

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/showfolio/showmcp/internal/document"
	"github.com/showfolio/showmcp/internal/store"
)

// Fingerprint computes the content hash of a project record.
//
// The digest covers, in this fixed order: title, description, brief
// overview, the serialized document tree, tag names, media item ids, and
// the record's updatedAt timestamp. Fields are NUL-separated and list
// entries are \x01-separated, so shifting text between adjacent fields
// cannot produce the same hash. Identical inputs always yield the
// identical hash.
func Fingerprint(record *store.ProjectRecord) string {
	h := sha256.New()

	writeField := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	writeField(record.Title)
	writeField(record.Description)
	writeField(record.BriefOverview)
	writeField(string(document.Encode(record.Content)))
	writeField(strings.Join(record.Tags, "\x01"))

	mediaIDs := make([]string, 0, len(record.Media))
	for _, m := range record.Media {
		mediaIDs = append(mediaIDs, m.ID)
	}
	writeField(strings.Join(mediaIDs, "\x01"))

	writeField(record.UpdatedAt.UTC().Format(time.RFC3339Nano))

	return hex.EncodeToString(h.Sum(nil))
}
