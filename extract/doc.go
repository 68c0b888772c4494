// Package extract turns uploaded document files into raw text.
//
// Three extractor variants cover the supported formats:
//
//   - TextExtractor: plain-text formats (.txt, .md, .csv, .json), read with
//     undecodable bytes replaced rather than failing
//   - ImageExtractor: raster formats, processed with OCR
//   - PDFExtractor: PDF documents, extracted page by page with per-page
//     failure tolerance
//
// The Dispatcher selects a variant from the filename's extension; files
// with unknown extensions are attempted as text, then as an image.
//
// Best-effort fallbacks are expressed as explicit ordered strategy lists
// (image open strategies, PDF open strategies) so the policy is testable on
// its own.
package extract
