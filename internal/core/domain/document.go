package domain

import "time"

// Document is a single file scanned from the document store after text
// extraction. Documents are immutable once produced by a scan; identity
// is the Path. The next scan replaces them wholesale, never merges.
type Document struct {
	// Path is the store-relative path, without a leading slash.
	Path string `json:"path"`

	// Folder is the containing folder, or "root" for top-level files.
	Folder string `json:"folder"`

	// Filename is the base name including extension.
	Filename string `json:"filename"`

	// Extension is the lowercase file extension including the dot.
	Extension string `json:"extension"`

	// Text is the extracted plain text, trimmed of surrounding whitespace.
	Text string `json:"text"`

	// ScannedAt is when the text was extracted.
	ScannedAt time.Time `json:"scanned_at"`

	// SizeBytes is the raw file size as reported by the store.
	SizeBytes uint64 `json:"size_bytes"`
}

// Snapshot bundles the documents and derived facts from one scan.
// A snapshot is immutable; a successful scan replaces the previous
// snapshot atomically. It is the only consumer-visible document state.
type Snapshot struct {
	// ID uniquely identifies this scan.
	ID string `json:"id"`

	// ScanDate is when the scan completed.
	ScanDate time.Time `json:"scan_date"`

	// Documents are all files that yielded non-empty text.
	Documents []Document `json:"documents"`

	// Heirs are the heir records parsed from the documents.
	Heirs []HeirRecord `json:"heirs"`

	// Assets are the asset records parsed from the documents.
	Assets []AssetRecord `json:"assets"`
}

// FileEntry is one file in a store listing. Listings drive fingerprinting
// and scan selection; they carry no content.
type FileEntry struct {
	// Path is the display path as reported by the store.
	Path string

	// PathLower is the canonical lowercase path used for identity.
	PathLower string

	// Size is the file size in bytes.
	Size uint64

	// ContentHash is the store's content hash for the file.
	ContentHash string
}
