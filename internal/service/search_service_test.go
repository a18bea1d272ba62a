package service

import (
	"context"
	"testing"

	"greenroots/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFoldsAccents(t *testing.T) {
	repo := &stubSearchRepo{rows: []repository.SearchRow{
		{Type: "tree", ID: uuid.New(), Name: "Chêne vert"},
	}}
	svc := NewSearchService(repo)

	results, err := svc.Search(context.Background(), "  Chêne ")
	require.NoError(t, err)
	assert.Equal(t, "%Chene%", repo.lastPattern)
	require.Len(t, results, 1)
	assert.Equal(t, "tree", results[0].Type)
	assert.Equal(t, "Chêne vert", results[0].Name)
}

func TestSearchNoHits(t *testing.T) {
	repo := &stubSearchRepo{}
	svc := NewSearchService(repo)

	_, err := svc.Search(context.Background(), "sequoia")
	assert.ErrorIs(t, err, ErrNotFound)
}
