package prewarm

import "context"

// CollectRemoteBlocks globs pattern through fs and tiles each matched file
// into contiguous, non-overlapping ranges of blockSize (spec §4.7). Ranges
// fully tile the file: their count is ceil(file_size/blockSize), or 1 for an
// empty file, which yields a zero-size sentinel block.
func CollectRemoteBlocks(ctx context.Context, fs FileSystem, pattern string, blockSize uint64) (RemoteFileBlockMap, error) {
	if pattern == "" {
		return nil, newEmptyPatternErr()
	}
	if blockSize == 0 {
		blockSize = 1
	}

	files, err := fs.Glob(ctx, pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return RemoteFileBlockMap{}, nil
	}

	result := make(RemoteFileBlockMap, len(files))
	for _, file := range files {
		ranges, err := tileFile(ctx, fs, file.Path, blockSize)
		if err != nil {
			return nil, err
		}
		result[file.Path] = ranges
	}
	return result, nil
}

// tileFile opens path read-only, reads its size, and divides [0, size) into
// contiguous blockSize ranges, clamping the last one to end at size.
// A zero-size file produces one zero-size sentinel range (spec §4.7,
// invariant: "count equals ceil(file_size/block_size), or 1 when
// file_size == 0").
func tileFile(ctx context.Context, fs FileSystem, path string, blockSize uint64) ([]RemoteBlockInfo, error) {
	handle, err := fs.OpenFile(ctx, path, true)
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	size, err := handle.Size()
	if err != nil {
		return nil, err
	}

	if size == 0 {
		return []RemoteBlockInfo{{FilePath: path, Offset: 0, Size: 0, FileSize: 0}}, nil
	}

	rangeCount := (size + blockSize - 1) / blockSize
	ranges := make([]RemoteBlockInfo, 0, rangeCount)
	for offset := uint64(0); offset < size; offset += blockSize {
		rangeSize := blockSize
		if offset+rangeSize > size {
			rangeSize = size - offset
		}
		ranges = append(ranges, RemoteBlockInfo{
			FilePath: path,
			Offset:   offset,
			Size:     int64(rangeSize),
			FileSize: size,
		})
	}
	return ranges, nil
}
