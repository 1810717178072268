package embedindex

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"

	"github.com/fieldline-ai/fieldline/nested"
)

// Shard layout: an uncompressed 8-byte header (magic + version) followed by a
// zstd-compressed body of key records and the vector matrix, little-endian
// throughout.
var shardMagic = [4]byte{'F', 'L', 'E', 'I'}

const shardVersion uint32 = 1

func encode(keys []nested.LeafKey, vectors [][]float32, dim int) ([]byte, error) {
	var out bytes.Buffer
	out.Write(shardMagic[:])
	if err := binary.Write(&out, binary.LittleEndian, shardVersion); err != nil {
		return nil, err
	}

	zw, err := zstd.NewWriter(&out)
	if err != nil {
		return nil, err
	}

	if err := writeBody(zw, keys, vectors, dim); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeBody(w io.Writer, keys []nested.LeafKey, vectors [][]float32, dim int) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(keys))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(dim)); err != nil {
		return err
	}

	for _, key := range keys {
		if len(key.RowID) > math.MaxUint16 {
			return fmt.Errorf("row id too long: %d bytes", len(key.RowID))
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(key.RowID))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, key.RowID); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(key.Indices))); err != nil {
			return err
		}
		for _, idx := range key.Indices {
			if err := binary.Write(w, binary.LittleEndian, uint32(idx)); err != nil {
				return err
			}
		}
	}

	for _, vec := range vectors {
		if err := binary.Write(w, binary.LittleEndian, vec); err != nil {
			return err
		}
	}
	return nil
}

func decode(data []byte) (*Index, error) {
	if len(data) < 8 || !bytes.Equal(data[:4], shardMagic[:]) {
		return nil, fmt.Errorf("not an embedding index shard")
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != shardVersion {
		return nil, fmt.Errorf("unsupported embedding index version: %d (expected %d)", version, shardVersion)
	}

	zr, err := zstd.NewReader(bytes.NewReader(data[8:]))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return readBody(zr)
}

func readBody(r io.Reader) (*Index, error) {
	var count, dim uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return nil, err
	}

	idx := &Index{
		Keys:       make([]nested.LeafKey, count),
		Embeddings: make([][]float32, count),
	}

	for i := range idx.Keys {
		var rowIDLen uint16
		if err := binary.Read(r, binary.LittleEndian, &rowIDLen); err != nil {
			return nil, err
		}
		rowID := make([]byte, rowIDLen)
		if _, err := io.ReadFull(r, rowID); err != nil {
			return nil, err
		}
		var numIndices uint16
		if err := binary.Read(r, binary.LittleEndian, &numIndices); err != nil {
			return nil, err
		}
		indices := make([]uint32, numIndices)
		if err := binary.Read(r, binary.LittleEndian, indices); err != nil {
			return nil, err
		}
		key := nested.LeafKey{RowID: string(rowID)}
		if numIndices > 0 {
			key.Indices = make([]int, numIndices)
			for j, v := range indices {
				key.Indices[j] = int(v)
			}
		}
		idx.Keys[i] = key
	}

	for i := range idx.Embeddings {
		vec := make([]float32, dim)
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return nil, err
		}
		idx.Embeddings[i] = vec
	}
	return idx, nil
}
