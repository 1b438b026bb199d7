// Package cabinet builds and reads Microsoft Cabinet archives holding a
// single MSZIP-compressed member.
//
// # Build Pipeline
//
// A build runs three strictly ordered phases over the whole input:
//
//  1. Sequencer splits the input into chunks of at most 32768 bytes and
//     compresses them in order through one compress.Window, producing the
//     folder's DataBlocks with their checksums.
//  2. Planner derives every offset and size of the cabinet from the blocks
//     and the member metadata, yielding a Layout.
//  3. Serialize writes the Layout and the blocks in one forward pass.
//
// Builder drives the three phases:
//
//	builder, err := cabinet.NewBuilder(
//	    cabinet.WithChecksumMode(format.ChecksumCabinet),
//	    cabinet.WithDerivedSetID(),
//	)
//	result, err := builder.Build(dst, src, cabinet.NewMember("hello.txt", modTime))
//
// # Reading
//
// Open parses a complete cabinet held in memory. The reader accepts reserve
// areas and stored or MSZIP folders, but rejects cabinets that belong to a
// split set:
//
//	cab, err := cabinet.Open(data)
//	err = cab.VerifyChecksums(format.ChecksumCabinet)
//	content, err := cab.Extract()
//
// # Thread Safety
//
// A Builder may be used for sequential builds; every build owns a fresh
// window. Concurrent builds need separate Builders. A Cabinet is read-only
// after Open and safe for concurrent readers.
package cabinet
