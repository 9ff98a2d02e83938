package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

func TestClauseIndex_AddAndSearch(t *testing.T) {
	idx := NewClauseIndex()
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, "c-1", "doc-1", 1, []float32{1, 0, 0}))
	require.NoError(t, idx.Add(ctx, "c-2", "doc-1", 2, []float32{0, 1, 0}))
	require.NoError(t, idx.Add(ctx, "c-3", "doc-2", 1, []float32{0.9, 0.1, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0, 0}, 2, "")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "c-1", hits[0].ClauseID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 0.001)
	assert.Equal(t, "c-3", hits[1].ClauseID)
}

func TestClauseIndex_SearchScopedToDocument(t *testing.T) {
	idx := NewClauseIndex()
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, "c-1", "doc-1", 1, []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "c-2", "doc-2", 1, []float32{1, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 10, "doc-2")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "c-2", hits[0].ClauseID)
}

func TestClauseIndex_SearchBreaksTiesBySequence(t *testing.T) {
	idx := NewClauseIndex()
	ctx := context.Background()

	// Identical vectors, added out of sequence order with IDs whose
	// lexical order disagrees with their sequence order.
	require.NoError(t, idx.Add(ctx, "z-clause", "doc-1", 2, []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "a-clause", "doc-1", 7, []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "m-clause", "doc-1", 4, []float32{1, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 3, "doc-1")
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, []int{2, 4, 7}, []int{hits[0].SequenceNumber, hits[1].SequenceNumber, hits[2].SequenceNumber})
	assert.Equal(t, "z-clause", hits[0].ClauseID)
}

func TestClauseIndex_AddReplaces(t *testing.T) {
	idx := NewClauseIndex()
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, "c-1", "doc-1", 1, []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "c-1", "doc-1", 1, []float32{0, 1}))

	hits, err := idx.Search(ctx, []float32{0, 1}, 1, "")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1.0, hits[0].Similarity, 0.001)
}

func TestClauseIndex_Delete(t *testing.T) {
	idx := NewClauseIndex()
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, "c-1", "doc-1", 1, []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "c-2", "doc-1", 2, []float32{0, 1}))
	require.NoError(t, idx.Delete(ctx, "c-1"))

	hits, err := idx.Search(ctx, []float32{1, 0}, 10, "")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "c-2", hits[0].ClauseID)
}

func TestClauseIndex_DeleteDocument(t *testing.T) {
	idx := NewClauseIndex()
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, "c-1", "doc-1", 1, []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "c-2", "doc-1", 2, []float32{0, 1}))
	require.NoError(t, idx.Add(ctx, "c-3", "doc-2", 1, []float32{1, 1}))
	require.NoError(t, idx.DeleteDocument(ctx, "doc-1"))

	hits, err := idx.Search(ctx, []float32{1, 0}, 10, "")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "c-3", hits[0].ClauseID)
}

func TestClauseIndex_Related(t *testing.T) {
	idx := NewClauseIndex()
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, "c-1", "doc-1", 1, []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "c-2", "doc-1", 2, []float32{0.9, 0.1}))
	require.NoError(t, idx.Add(ctx, "c-3", "doc-1", 3, []float32{0, 1}))
	require.NoError(t, idx.Add(ctx, "c-4", "doc-2", 1, []float32{1, 0}))

	hits, err := idx.Related(ctx, "c-1", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "c-2", hits[0].ClauseID, "nearest neighbour in the same document")
	assert.Equal(t, "c-3", hits[1].ClauseID)
	for _, hit := range hits {
		assert.NotEqual(t, "c-1", hit.ClauseID, "the anchor clause is excluded")
		assert.Equal(t, "doc-1", hit.DocumentID, "other documents are excluded")
	}
}

func TestClauseIndex_RelatedUnknownClause(t *testing.T) {
	idx := NewClauseIndex()

	_, err := idx.Related(context.Background(), "missing", 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClauseIndex_InvalidInput(t *testing.T) {
	idx := NewClauseIndex()

	err := idx.Add(context.Background(), "", "doc-1", 1, []float32{1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, expected: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, expected: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, expected: -1},
		{name: "mismatched lengths", a: []float32{1, 0}, b: []float32{1}, expected: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, expected: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, cosineSimilarity(tc.a, tc.b), 0.0001)
		})
	}
}
