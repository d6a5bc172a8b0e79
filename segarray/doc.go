// Package segarray implements a segmented growable array of primitive integers.
//
// # Architecture
//
// An Array is a deque laid out over a SegmentIndex, a table of fixed-size
// Segments. Both the table and every segment are reference counted, so
// Clone and CloneRange share storage and copy nothing up front:
//
//	┌───────── SegmentIndex (refs=2) ─────────┐
//	│  slot 0     │  slot 1     │  slot 2     │
//	└─────┬───────┴─────┬───────┴─────┬───────┘
//	      ▼             ▼             ▼
//	 Segment(refs=1) Segment(refs=1) Segment(refs=1)
//	 [· · · a b c]   [d e f g h i]   [j k · · · ·]
//	  left slack                        right slack
//
// Logical index i lives at segment (left+i)>>bits, offset (left+i)&mask.
// The invariant size+left+right == segments<<bits holds after every call.
//
// # Growth
//
// New arrays start with 16-element segments and double the segment size
// itself up to 1024 elements; beyond that more 1024-element segments are
// added. Insertions open their gap by shifting whichever side touches fewer
// segments, so the cost of Insert is bounded by segments, not elements.
//
// # Copy-on-write
//
// A segment is written in place only when both the table and the segment
// have a reference count of one. Otherwise the table (and then the segment)
// is copied first. Cloning and then setting one element allocates exactly one
// new segment.
//
// # Allocation
//
// Segments and tables are obtained from an Environment. HeapEnv is the
// default, CountingEnv records allocations for tests, and OffHeapEnv keeps
// segment buffers in anonymous mappings that are returned to the OS on
// Release. PooledEnv recycles freed segments for arrays that are rebuilt
// repeatedly.
package segarray
