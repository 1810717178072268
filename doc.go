// Package fieldline is the core of a data-curation engine for nested
// documents: a path/schema model with lineage, flatten/unflatten
// transforms over arbitrarily nested items, a columnar shard writer, and
// an embedding index with a brute-force vector store.
//
// # Quick Start
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore("./data")
//	ds := fieldline.New(store, fieldline.WithLogLevel(slog.LevelInfo))
//
// Write items as columnar shards:
//
//	sch := schema.New(map[string]*schema.Field{
//	    "title": schema.Scalar(schema.DataTypeString),
//	    "chunks": schema.List(schema.Object(map[string]*schema.Field{
//	        "text": schema.Scalar(schema.DataTypeString),
//	    })),
//	})
//	infos, _ := ds.WriteShards(ctx, [][]nested.Item{batch}, sch, "data")
//
// Attach a signal's output schema under the derived namespace:
//
//	out := schema.List(schema.Scalar(schema.DataTypeEmbedding))
//	merged, _ := ds.AttachSignal(ctx, out, "minilm", schema.ParsePath("chunks.*.text"))
//
// Write embedding vectors into index shards and search them:
//
//	ds.WriteEmbeddings(ctx, rowIDs, batch, "data", 0, 1)
//	vs, _ := ds.LoadVectorStore(ctx)
//	results, _ := vs.TopK(query, 10, nil)
//
// The subpackages are usable on their own: schema (paths, merge, signal
// placement), nested (flatten/unflatten, leaf keys), columnar (parquet
// shards), embedindex (vector shards), vectorstore (similarity search),
// and rag (retrieval windows and prompts).
package fieldline
