package gmimap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmimap/go-gmimap"
)

func TestLabelList(t *testing.T) {
	l := gmimap.LabelList{gmimap.LabelImportant, "Bo&AO4-te", "&ZeVnLIqe-"}
	assert.True(t, l.Contains(gmimap.LabelImportant))
	assert.False(t, l.Contains(gmimap.LabelInbox))

	decoded, err := l.Decode()
	require.NoError(t, err)
	assert.Equal(t, []string{`\Important`, "Boîte", "日本語"}, decoded)

	_, err = gmimap.LabelList{"&Jjo"}.Decode()
	assert.Error(t, err)
}

func TestBodyStructure(t *testing.T) {
	bs := &gmimap.BodyStructure{}
	assert.False(t, bs.IsMultipart())
	assert.Empty(t, bs.MediaType())
	assert.Empty(t, bs.Parts())

	bs = &gmimap.BodyStructure{Fields: []any{"IMAGE", "PNG", nil, nil, nil, "BASE64", int64(1024)}}
	assert.Equal(t, "image/png", bs.MediaType())

	bs = &gmimap.BodyStructure{Fields: []any{
		[]any{"TEXT", "PLAIN"},
		[]any{[]any{"TEXT", "HTML"}, []any{"IMAGE", "GIF"}, "RELATED"},
		"MIXED",
	}}
	assert.True(t, bs.IsMultipart())
	assert.Equal(t, "multipart/mixed", bs.MediaType())
	parts := bs.Parts()
	require.Len(t, parts, 2)
	assert.Equal(t, "text/plain", parts[0].MediaType())
	assert.Equal(t, "multipart/related", parts[1].MediaType())
}
