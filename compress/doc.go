// Package compress implements MSZIP, the deflate-based block compression used
// inside cabinet folders.
//
// # Overview
//
// An MSZIP folder is one logical deflate stream cut into blocks of at most
// 32768 uncompressed bytes. Each block is stored as the two signature bytes
// "CK" followed by a deflate fragment that:
//
//  1. may reference any of the previous 32768 bytes of the folder, even
//     bytes that belong to earlier blocks, and
//  2. ends on a byte boundary, so a decoder can replay it on its own once
//     it holds the same history.
//
// The history is kept in a Window owned by the caller and passed to every
// call. This keeps the codecs stateless and makes the cross-block
// dependency explicit:
//
//	window := compress.NewWindow()
//	encoder, _ := compress.NewMSZipEncoder(flate.DefaultCompression)
//	for _, chunk := range chunks {
//	    payload, err := encoder.EncodeBlock(chunk, window)
//	    if err != nil {
//	        return err
//	    }
//	    blocks = append(blocks, payload)
//	}
//
// Decoding mirrors it with a fresh Window:
//
//	window := compress.NewWindow()
//	var decoder compress.MSZipDecoder
//	for i, payload := range blocks {
//	    chunk, err := decoder.DecodeBlock(payload, sizes[i], window)
//	    ...
//	}
//
// A Window must never be shared between two folders or two concurrent
// builds; doing so silently corrupts the back-references of the second one.
//
// # Deflate Primitive
//
// Entropy coding is delegated to github.com/klauspost/compress/flate. Each
// block is written by a writer primed with the window as preset dictionary
// and closed at the end of the block, which emits a final, byte-aligned
// deflate block.
//
// # Block Bounds
//
//   - Input per block: at most MaxChunkSize (32768) bytes.
//   - Payload per block: at most MaxBlockSize bytes, the buffer size cabinet
//     readers allocate for a compressed block.
package compress
