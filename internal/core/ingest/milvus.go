package ingest

import (
	"academiq/config"
	"context"
	"fmt"

	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	milvusentity "github.com/milvus-io/milvus-sdk-go/v2/entity"
)

const milvusVectorDim = 1536

// UpsertMilvusVectors ensures the collection and inserts embeddings.
// Returns assigned IDs and the collection name.
func UpsertMilvusVectors(ctx context.Context, vectors [][]float32, paperID int64, chunks []Chunk) ([]int64, string, error) {
	cli, err := milvusclient.NewClient(ctx, milvusclient.Config{Address: config.Cfg.Milvus.Address})
	if err != nil {
		return nil, "", err
	}
	defer cli.Close()

	collection := config.Cfg.Milvus.Collection
	if collection == "" {
		collection = "paper_chunks"
	}
	exists, err := cli.HasCollection(ctx, collection)
	if err != nil {
		return nil, "", err
	}
	if !exists {
		if err := createChunksCollection(ctx, cli, collection); err != nil {
			return nil, "", err
		}
	}

	// Prepare columns
	paperIDs := make([]int64, len(chunks))
	chunkIdxs := make([]int32, len(chunks))
	pageIdxs := make([]int32, len(chunks))
	contents := make([]string, len(chunks))
	for i, ch := range chunks {
		paperIDs[i] = paperID
		chunkIdxs[i] = ch.ChunkIndex
		pageIdxs[i] = ch.PageIndex
		contents[i] = ch.Content
	}

	// Deterministic primary keys from paperID and chunkIndex to avoid AutoID API differences
	ids := make([]int64, len(chunks))
	for i := range chunks {
		ids[i] = (paperID << 20) + int64(chunks[i].ChunkIndex)
	}
	colID := milvusentity.NewColumnInt64("id", ids)
	colPaper := milvusentity.NewColumnInt64("paper_id", paperIDs)
	colChunk := milvusentity.NewColumnInt32("chunk_index", chunkIdxs)
	colPage := milvusentity.NewColumnInt32("page_index", pageIdxs)
	colContent := milvusentity.NewColumnVarChar("content", contents)
	colVec := milvusentity.NewColumnFloatVector("embedding", milvusVectorDim, vectors)

	if _, err := cli.Insert(ctx, collection, "", colID, colPaper, colChunk, colPage, colContent, colVec); err != nil {
		return nil, "", err
	}
	return ids, collection, nil
}

// DeleteMilvusVectors removes every vector of the paper from the collection.
// Milvus Insert does not enforce primary-key uniqueness, so a re-ingest must
// clear the old vectors first or duplicates and orphaned high-index chunks
// would stay searchable.
func DeleteMilvusVectors(ctx context.Context, paperID int64) error {
	cli, err := milvusclient.NewClient(ctx, milvusclient.Config{Address: config.Cfg.Milvus.Address})
	if err != nil {
		return err
	}
	defer cli.Close()

	collection := config.Cfg.Milvus.Collection
	if collection == "" {
		collection = "paper_chunks"
	}
	exists, err := cli.HasCollection(ctx, collection)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return cli.Delete(ctx, collection, "", paperDeleteExpr(paperID))
}

func paperDeleteExpr(paperID int64) string {
	return fmt.Sprintf("paper_id == %d", paperID)
}

func createChunksCollection(ctx context.Context, cli milvusclient.Client, collection string) error {
	schema := milvusentity.NewSchema().WithName(collection).WithDescription("paper chunks")
	// Primary key is provided by us, no AutoID
	schema.WithField(milvusentity.NewField().WithName("id").WithDataType(milvusentity.FieldTypeInt64).WithIsPrimaryKey(true))
	schema.WithField(milvusentity.NewField().WithName("paper_id").WithDataType(milvusentity.FieldTypeInt64))
	schema.WithField(milvusentity.NewField().WithName("chunk_index").WithDataType(milvusentity.FieldTypeInt32))
	schema.WithField(milvusentity.NewField().WithName("page_index").WithDataType(milvusentity.FieldTypeInt32))
	schema.WithField(milvusentity.NewField().WithName("content").WithDataType(milvusentity.FieldTypeVarChar).WithMaxLength(8192))
	schema.WithField(milvusentity.NewField().WithName("embedding").WithDataType(milvusentity.FieldTypeFloatVector).WithDim(milvusVectorDim))

	if err := cli.CreateCollection(ctx, schema, 2); err != nil {
		return err
	}

	metric, m, efConstruction := hnswIndexParams()
	idx, err := milvusentity.NewIndexHNSW(metric, m, efConstruction)
	if err != nil {
		return err
	}
	return cli.CreateIndex(ctx, collection, "embedding", idx, false)
}

// hnswIndexParams resolves the configured HNSW index settings with defaults.
func hnswIndexParams() (milvusentity.MetricType, int, int) {
	cfg := config.Cfg.Milvus.IndexHNSWConfig
	metric := milvusentity.MetricType(cfg.MetricType)
	if metric == "" {
		metric = milvusentity.IP
	}
	m := cfg.M
	if m <= 0 {
		m = 16
	}
	efConstruction := cfg.EfConstruction
	if efConstruction <= 0 {
		efConstruction = 200
	}
	return metric, m, efConstruction
}
