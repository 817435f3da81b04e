package compress

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Quadrocube/symtseries/errs"
	"github.com/Quadrocube/symtseries/format"
)

// sampleScript builds a payload shaped like a real snapshot script: repeated
// statement text with numeric noise, the kind of data the codecs see in
// production.
func sampleScript(windows int) []byte {
	var sb strings.Builder
	for i := 0; i < windows; i++ {
		sb.WriteString("if probe == nil then probe = window.new(120, 12, 8) end\n")
		sb.WriteString("probe:clear()\n")
		sb.WriteString("probe:add({0.125, -3.5, 17.25, 0.0078125, 42, -1.5, 8.25, 0.5})\n")
	}

	return []byte(sb.String())
}

func TestCreateCodec_AllTypes(t *testing.T) {
	tests := []struct {
		name  string
		cType format.CompressionType
	}{
		{"none", format.CompressionNone},
		{"zstd", format.CompressionZstd},
		{"s2", format.CompressionS2},
		{"lz4", format.CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := CreateCodec(tt.cType, "snapshot archive")
			require.NoError(t, err)
			require.NotNil(t, codec)
		})
	}
}

func TestCreateCodec_InvalidType(t *testing.T) {
	codec, err := CreateCodec(format.CompressionType(0xEE), "snapshot archive")
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
	require.Nil(t, codec)
	require.Contains(t, err.Error(), "snapshot archive")
}

func TestGetCodec(t *testing.T) {
	for _, cType := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(cType)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
}

func TestCodecs_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":        {},
		"short":        []byte("x"),
		"script small": sampleScript(1),
		"script large": sampleScript(500),
	}

	for _, cType := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		for name, payload := range payloads {
			t.Run(cType.String()+"/"+name, func(t *testing.T) {
				codec, err := GetCodec(cType)
				require.NoError(t, err)

				compressed, err := codec.Compress(payload)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)

				if len(payload) == 0 {
					require.Empty(t, decompressed)
					return
				}

				require.True(t, bytes.Equal(payload, decompressed),
					"round-trip should preserve payload exactly")
			})
		}
	}
}

func TestCodecs_CompressRepetitiveScript(t *testing.T) {
	payload := sampleScript(200)

	for _, cType := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(cType.String(), func(t *testing.T) {
			codec, err := GetCodec(cType)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			// Snapshot scripts repeat statement shapes, so every real codec
			// should shave off well over half.
			require.Less(t, len(compressed), len(payload)/2,
				"%s should compress a repetitive script below 50%%", cType)
		})
	}
}

func TestZstdCompressor_RejectsCorruptedData(t *testing.T) {
	codec := NewZstdCompressor()

	_, err := codec.Decompress([]byte("this is not a zstd frame"))
	require.Error(t, err)
}

func TestS2Compressor_RejectsCorruptedData(t *testing.T) {
	codec := NewS2Compressor()

	_, err := codec.Decompress([]byte{0xFF, 0xFE, 0xFD, 0xFC, 0xFB})
	require.Error(t, err)
}

func TestLZ4Compressor_RoundTripLargePayload(t *testing.T) {
	codec := NewLZ4Compressor()

	// Exceed the initial 4x decompression buffer guess to exercise the
	// adaptive retry path.
	payload := bytes.Repeat([]byte("abcdefgh"), 64*1024)

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(payload))

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}

func TestNoOpCompressor_PassThrough(t *testing.T) {
	codec := NewNoOpCompressor()

	payload := sampleScript(3)
	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, compressed)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}

func TestNoOpCompressor_EmptyData(t *testing.T) {
	codec := NewNoOpCompressor()

	compressed, err := codec.Compress(nil)
	require.NoError(t, err)
	require.Nil(t, compressed)

	decompressed, err := codec.Decompress(nil)
	require.NoError(t, err)
	require.Nil(t, decompressed)
}

func TestCodecs_CrossInstanceRoundTrip(t *testing.T) {
	// Data compressed by one codec instance must decompress with another,
	// since snapshot restore always constructs a fresh codec.
	payload := sampleScript(50)

	compressed, err := NewZstdCompressor().Compress(payload)
	require.NoError(t, err)

	decompressed, err := NewZstdCompressor().Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}

func TestCodecs_ConcurrentUse(t *testing.T) {
	payload := sampleScript(20)
	codec, err := GetCodec(format.CompressionZstd)
	require.NoError(t, err)

	const goroutines = 16
	done := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			compressed, err := codec.Compress(payload)
			if err != nil {
				done <- err
				return
			}
			decompressed, err := codec.Decompress(compressed)
			if err != nil {
				done <- err
				return
			}
			if !bytes.Equal(payload, decompressed) {
				done <- errors.New("round trip changed the payload")
				return
			}
			done <- nil
		}()
	}

	for i := 0; i < goroutines; i++ {
		require.NoError(t, <-done)
	}
}
