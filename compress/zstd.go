package compress

// ZstdCompressor provides Zstandard compression for snapshot archives.
//
// This compressor is designed for scenarios where compression ratio is more
// important than compression speed, making it ideal for:
//   - Cold storage of window snapshots between process restarts
//   - Long-term retention of detector state
//   - Network transmission where bandwidth is limited
//
// Performance characteristics:
//   - Compression: ~5-20 ns/byte (depending on compression level)
//   - Decompression: ~2-5 ns/byte
//   - Compression ratio: 5:1 or better for repetitive snapshot scripts
//   - Memory usage: Moderate (pooled encoder/decoder instances)
//
// Two implementations back this type: a pure-Go one (klauspost/compress) used
// when cgo is disabled, and a libzstd binding (valyala/gozstd) used when cgo
// is available. Both produce standard Zstandard frames and interoperate.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(script)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
