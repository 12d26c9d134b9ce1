package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbarchive/pkg/facebook"
)

func att(typ string, children ...*facebook.Attachment) *facebook.Attachment {
	a := &facebook.Attachment{Type: typ}
	if len(children) > 0 {
		a.Subattachments = &facebook.AttachmentList{Data: children}
	}
	return a
}

func typesOf(nodes []*facebook.Attachment) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Type
	}
	return out
}

func TestFlattenAttachmentsNil(t *testing.T) {
	assert.Nil(t, FlattenAttachments(nil))
}

func TestFlattenAttachmentsSingleNode(t *testing.T) {
	root := att("photo")
	nodes := FlattenAttachments(root)

	require.Len(t, nodes, 1)
	assert.Same(t, root, nodes[0])
}

func TestFlattenAttachmentsPreOrder(t *testing.T) {
	// album
	//   photo1
	//   album2
	//     photo2
	//     photo3
	//   photo4
	root := att("album",
		att("photo1"),
		att("album2", att("photo2"), att("photo3")),
		att("photo4"),
	)

	nodes := FlattenAttachments(root)
	assert.Equal(t, []string{"album", "photo1", "album2", "photo2", "photo3", "photo4"}, typesOf(nodes))
}

func TestFlattenAttachmentsEmptySubattachmentList(t *testing.T) {
	root := att("album")
	root.Subattachments = &facebook.AttachmentList{}

	nodes := FlattenAttachments(root)
	assert.Equal(t, []string{"album"}, typesOf(nodes))
}

func TestFlattenAttachmentsSkipsNilChildren(t *testing.T) {
	root := att("album")
	root.Subattachments = &facebook.AttachmentList{
		Data: []*facebook.Attachment{att("photo1"), nil, att("photo2")},
	}

	nodes := FlattenAttachments(root)
	assert.Equal(t, []string{"album", "photo1", "photo2"}, typesOf(nodes))
}

func TestFlattenAttachmentsDeepNesting(t *testing.T) {
	const depth = 10000

	root := att("level0")
	current := root
	for i := 1; i < depth; i++ {
		child := att("nested")
		current.Subattachments = &facebook.AttachmentList{Data: []*facebook.Attachment{child}}
		current = child
	}

	nodes := FlattenAttachments(root)
	assert.Len(t, nodes, depth)
}
