package service

import (
	"context"
	"testing"

	"greenroots/internal/dto"
	"greenroots/internal/model"
	"greenroots/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTreeRequest() dto.CreateTreeRequest {
	return dto.CreateTreeRequest{
		Name:           "Chêne vert",
		ScientificName: "Quercus ilex",
		Image:          "oak.jpg",
		Category:       "Arbres fruitiers",
		Description:    "Evergreen oak",
		CO2:            decimal.NewFromInt(25),
		O2:             decimal.NewFromInt(110),
		Price:          decimal.NewFromInt(30),
	}
}

func TestTreeCreate(t *testing.T) {
	repo := newStubTreeRepo()
	links := newStubLinkRepo()
	svc := NewTreeService(repo, newStubForestRepo(), links)

	forestID := uuid.New()
	req := validTreeRequest()
	req.ForestAssociations = []dto.StockAssignment{{ID: forestID.String(), Stock: 40}}

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	t.Run("category slug derives from the category name", func(t *testing.T) {
		assert.Equal(t, "arbres-fruitiers", resp.CategorySlug)
	})

	t.Run("associations are reconciled for the new tree", func(t *testing.T) {
		treeID := uuid.MustParse(resp.ID)
		require.Len(t, links.reconciledTree[treeID], 1)
		assert.Equal(t, forestID, links.reconciledTree[treeID][0].CounterpartID)
		assert.Equal(t, 40, links.reconciledTree[treeID][0].Stock)
	})
}

func TestTreeUpdateAssociations(t *testing.T) {
	repo := newStubTreeRepo()
	links := newStubLinkRepo()
	svc := NewTreeService(repo, newStubForestRepo(), links)

	tree := &model.Tree{Name: "Baobab"}
	require.NoError(t, repo.Insert(context.Background(), tree))
	links.stock[pairKey{tree: tree.ID, forest: uuid.New()}] = 5

	t.Run("payload without associations leaves the junction alone", func(t *testing.T) {
		req := validTreeRequest()
		req.ForestAssociations = nil
		_, err := svc.Update(context.Background(), tree.ID, req)
		require.NoError(t, err)
		_, touched := links.reconciledTree[tree.ID]
		assert.False(t, touched)
	})

	t.Run("empty association list prunes every link", func(t *testing.T) {
		req := validTreeRequest()
		req.ForestAssociations = []dto.StockAssignment{}
		_, err := svc.Update(context.Background(), tree.ID, req)
		require.NoError(t, err)
		assert.Empty(t, links.reconciledTree[tree.ID])
		linked, _ := links.HasLinksForTree(context.Background(), tree.ID)
		assert.False(t, linked)
	})

	t.Run("unknown tree maps to not found", func(t *testing.T) {
		_, err := svc.Update(context.Background(), uuid.New(), validTreeRequest())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTreeDeleteReferentialBlocks(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked while a forest still carries the tree", func(t *testing.T) {
		repo := newStubTreeRepo()
		links := newStubLinkRepo()
		svc := NewTreeService(repo, newStubForestRepo(), links)

		tree := &model.Tree{Name: "Érable"}
		require.NoError(t, repo.Insert(ctx, tree))
		links.stock[pairKey{tree: tree.ID, forest: uuid.New()}] = 3

		assert.ErrorIs(t, svc.Delete(ctx, tree.ID), ErrReferentialBlock)
		_, err := repo.GetByID(ctx, tree.ID)
		assert.NoError(t, err, "tree must survive a blocked delete")
	})

	t.Run("blocked while order lines reference the tree", func(t *testing.T) {
		repo := newStubTreeRepo()
		repo.hasOrderItems = true
		svc := NewTreeService(repo, newStubForestRepo(), newStubLinkRepo())

		tree := &model.Tree{Name: "Érable"}
		require.NoError(t, repo.Insert(ctx, tree))

		assert.ErrorIs(t, svc.Delete(ctx, tree.ID), ErrReferentialBlock)
	})

	t.Run("unreferenced tree deletes", func(t *testing.T) {
		repo := newStubTreeRepo()
		svc := NewTreeService(repo, newStubForestRepo(), newStubLinkRepo())

		tree := &model.Tree{Name: "Érable"}
		require.NoError(t, repo.Insert(ctx, tree))

		require.NoError(t, svc.Delete(ctx, tree.ID))
		_, err := repo.GetByID(ctx, tree.ID)
		assert.ErrorIs(t, svc.Delete(ctx, tree.ID), ErrNotFound)
		assert.Error(t, err)
	})
}

func TestTreeGetWithStockParallelSlices(t *testing.T) {
	repo := newStubTreeRepo()
	svc := NewTreeService(repo, newStubForestRepo(), newStubLinkRepo())

	tree := &model.Tree{Name: "Baobab"}
	require.NoError(t, repo.Insert(context.Background(), tree))
	repo.stockLines = []repository.StockLine{
		{Name: "Amazonie", Stock: 12},
		{Name: "Bornéo", Stock: 3},
	}

	resp, err := svc.GetWithStock(context.Background(), tree.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Amazonie", "Bornéo"}, resp.ForestNames)
	assert.Equal(t, []int{12, 3}, resp.Stocks)
}

func TestForestDeleteReferentialBlock(t *testing.T) {
	ctx := context.Background()
	repo := newStubForestRepo()
	links := newStubLinkRepo()
	svc := NewForestService(repo, newStubTreeRepo(), links)

	forest := &model.Forest{Name: "Amazonie"}
	require.NoError(t, repo.Insert(ctx, forest))
	links.stock[pairKey{tree: uuid.New(), forest: forest.ID}] = 8

	assert.ErrorIs(t, svc.Delete(ctx, forest.ID), ErrReferentialBlock)

	require.NoError(t, links.ReconcileForForest(ctx, forest.ID, nil))
	require.NoError(t, svc.Delete(ctx, forest.ID))
}
