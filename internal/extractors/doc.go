// Package extractors provides implementations of the Extractor interface
// for various document formats. Each extractor knows how to turn one
// upload format into analysable plain text.
//
// Extractors are registered with the ExtractorRegistry at startup.
package extractors
