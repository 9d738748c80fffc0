package operator

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"bpmap/page"
)

// buildShadowPayload encodes the header plus the rebuilt free-stack
// chain as a single blob: the header page, then a count of free-stack
// node pages, then each node's (offset, 4096 bytes). This is the
// "rebuild of the header + root transition" / "initial load of a large
// free-stack chain" case spec.md §4.4 calls out as impractical for a
// single WAL record, so it goes through the shadow file instead.
func (op *Operator) buildShadowPayload() []byte {
	chunks := chunkRanges(op.freeList, page.FreeStackMaxRanges)

	type nodeWrite struct {
		offset page.PageOffset
		bytes  []byte
	}
	var nodeWrites []nodeWrite

	if len(chunks) == 0 {
		op.header.FreeStackTop = page.Null
	} else {
		offsets := make([]page.PageOffset, len(chunks))
		for i := range chunks {
			r, _ := op.allocateRaw(1) // Close never fails allocation on a fresh high-water bump
			offsets[i] = r.Offset
		}
		for i, chunk := range chunks {
			node := page.NewFreeStackNode()
			if i+1 < len(offsets) {
				node.Next = offsets[i+1]
			}
			for _, rng := range chunk {
				node.Push(rng)
			}
			nodeWrites = append(nodeWrites, nodeWrite{offset: offsets[i], bytes: node.Encode()})
		}
		op.header.FreeStackTop = offsets[0]
	}

	var buf bytes.Buffer
	buf.Write(op.header.Encode())
	binary.Write(&buf, binary.LittleEndian, uint32(len(nodeWrites)))
	for _, nw := range nodeWrites {
		binary.Write(&buf, binary.LittleEndian, uint32(nw.offset))
		buf.Write(nw.bytes)
	}
	return buf.Bytes()
}

// allocateRaw bumps the high-water mark directly, bypassing the free
// list: used only while buildShadowPayload is itself rebuilding the free
// list, where consulting it would be circular.
func (op *Operator) allocateRaw(n uint8) (page.PageRange, error) {
	r := page.PageRange{Offset: op.header.NextPageOffset, Count: n}
	op.header.NextPageOffset += page.PageOffset(n)
	return r, nil
}

// chunkRanges splits ranges into groups of at most size entries.
func chunkRanges(ranges []page.PageRange, size int) [][]page.PageRange {
	if len(ranges) == 0 {
		return nil
	}
	var chunks [][]page.PageRange
	for len(ranges) > 0 {
		n := size
		if n > len(ranges) {
			n = len(ranges)
		}
		chunks = append(chunks, ranges[:n])
		ranges = ranges[n:]
	}
	return chunks
}

// applyShadowPayload decodes a staged shadow payload (built by
// buildShadowPayload, whether staged moments ago by this process's own
// Close or left behind by a prior crash) and writes it onto the primary
// file. Passed to walshadow.Recover as its apply callback.
func (op *Operator) applyShadowPayload(payload []byte) error {
	if len(payload) < page.Len {
		return fmt.Errorf("operator: shadow payload too short: %d bytes", len(payload))
	}
	if err := op.primary.WriteAt(0, payload[:page.Len]); err != nil {
		return fmt.Errorf("operator: apply shadow header: %w", err)
	}

	r := bytes.NewReader(payload[page.Len:])
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("operator: decode shadow node count: %w", err)
	}
	for i := uint32(0); i < count; i++ {
		var offset uint32
		if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
			return fmt.Errorf("operator: decode shadow node offset: %w", err)
		}
		nodeBuf := make([]byte, page.Len)
		if _, err := io.ReadFull(r, nodeBuf); err != nil {
			return fmt.Errorf("operator: decode shadow node bytes: %w", err)
		}
		if err := op.primary.WriteAt(page.PageOffset(offset).FileOffset(), nodeBuf); err != nil {
			return fmt.Errorf("operator: apply shadow node at %d: %w", offset, err)
		}
	}
	return nil
}
