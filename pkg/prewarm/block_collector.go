package prewarm

import "context"

// CollectTableBlocks enumerates the persistent block ids of a table (spec
// §4.6). For each persistent segment it records the primary block id and
// every additional block (auxiliary pages for compressed/dictionary-encoded
// columns); INVALID ids and non-persistent segments are skipped. Enumeration
// itself may load a small number of metadata pages as a side effect
// (string-dictionary headers etc.) — this is tolerated, not fixed (spec §4.2).
func CollectTableBlocks(ctx context.Context, table TableEntry) (*BlockIDSet, error) {
	segments, err := table.ColumnSegmentInfo(ctx)
	if err != nil {
		return nil, err
	}

	blockIDs := NewBlockIDSet()
	for _, segment := range segments {
		if !segment.Persistent {
			continue
		}
		blockIDs.Add(segment.BlockID)
		for _, additional := range segment.AdditionalBlocks {
			blockIDs.Add(additional)
		}
	}
	return blockIDs, nil
}
