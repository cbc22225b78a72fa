package prewarm

import (
	"context"

	"github.com/dentiny/duckdb-cache-prewarm/pkg/moerr"
)

func newInvalidModeErr(mode string) *moerr.Error {
	return moerr.NewInvalidInput(context.Background(),
		"invalid prewarm mode %q, valid modes are: buffer, read, prefetch", mode)
}

func newInvalidCacheModeErr(mode string) *moerr.Error {
	return moerr.NewInvalidInput(context.Background(),
		"invalid remote cache mode %q, valid modes are: in_memory, on_disk, both", mode)
}

func newDirectIOErr(strategyName string) *moerr.Error {
	return moerr.NewInvalidInput(context.Background(),
		"%s prewarming strategy is not effective when direct I/O is enabled. "+
			"Direct I/O bypasses the OS page cache. "+
			"Use the BUFFER strategy instead to warm the buffer pool.", strategyName)
}

func newCatalogMissErr(schema, table string) *moerr.Error {
	return moerr.NewCatalogMiss(context.Background(),
		"table %q not found in schema %q", table, schema)
}

func newNonNativeTableErr(schema, table string) *moerr.Error {
	return moerr.NewCatalogMiss(context.Background(),
		"table %s.%s is not a native persistent table", schema, table)
}

func newEmptyTableNameErr() *moerr.Error {
	return moerr.NewInvalidInput(context.Background(), "table name cannot be empty")
}

func newEmptyPatternErr() *moerr.Error {
	return moerr.NewInvalidInput(context.Background(), "glob pattern cannot be empty")
}

func newPrefetchUnsupportedErr() *moerr.Error {
	return moerr.NewNotImplemented(context.Background(),
		"PREFETCH prewarm strategy is not supported on this platform")
}
