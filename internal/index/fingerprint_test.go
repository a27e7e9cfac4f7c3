package index

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/showfolio/showmcp/internal/document"
	"github.com/showfolio/showmcp/internal/store"
)

func fingerprintRecord() *store.ProjectRecord {
	return &store.ProjectRecord{
		ID:            "proj-1",
		Title:         "Realtime Chat",
		Description:   "A chat app",
		BriefOverview: "WebSocket chat with rooms",
		Content: &document.Node{
			Type: "doc",
			Children: []*document.Node{
				{Type: "heading", Level: 2, Text: "Architecture"},
			},
		},
		Media:     []store.MediaItem{{ID: "m1", Type: "image", URL: "https://x/m1.png"}},
		Tags:      []string{"chat", "websocket"},
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint(fingerprintRecord())
	b := Fingerprint(fingerprintRecord())
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprint_ChangesPerField(t *testing.T) {
	base := Fingerprint(fingerprintRecord())

	mutations := map[string]func(*store.ProjectRecord){
		"title":       func(r *store.ProjectRecord) { r.Title = "Other" },
		"description": func(r *store.ProjectRecord) { r.Description = "changed" },
		"overview":    func(r *store.ProjectRecord) { r.BriefOverview = "changed" },
		"content":     func(r *store.ProjectRecord) { r.Content.Children[0].Text = "Design" },
		"tags":        func(r *store.ProjectRecord) { r.Tags = []string{"chat"} },
		"media":       func(r *store.ProjectRecord) { r.Media[0].ID = "m2" },
		"updated_at":  func(r *store.ProjectRecord) { r.UpdatedAt = r.UpdatedAt.Add(time.Second) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			record := fingerprintRecord()
			mutate(record)
			assert.NotEqual(t, base, Fingerprint(record))
		})
	}
}

func TestFingerprint_FieldShiftChangesHash(t *testing.T) {
	a := fingerprintRecord()
	a.Title = "Realtime"
	a.Description = "Chat A chat app"

	b := fingerprintRecord()
	b.Title = "Realtime Chat"
	b.Description = "A chat app"

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprint_NilContent(t *testing.T) {
	record := fingerprintRecord()
	record.Content = nil

	withNil := Fingerprint(record)
	assert.NotEqual(t, Fingerprint(fingerprintRecord()), withNil)
	assert.Equal(t, withNil, Fingerprint(record))
}
