package domain

import "path"

// AlbumHandle identifies a resolved shared album on OneDrive.
// It is produced by the resolver and consumed by the enumerator;
// it is never persisted across runs.
type AlbumHandle struct {
	// DriveID is the drive containing the album folder.
	DriveID string
	// ItemID is the album's root folder item.
	ItemID string
	// Name is the album's display name. Defaults to "album" when the
	// provider omits one.
	Name string
	// ChildCount is the number of top-level children reported by the
	// provider, or zero when unknown.
	ChildCount int
}

// ImageRecord describes a single downloadable image discovered during
// enumeration. Records are immutable once created.
type ImageRecord struct {
	// Name is the provider-reported file name.
	Name string
	// DownloadURL is a time-limited direct download URL.
	DownloadURL string
	// MIMEType is the image MIME type, e.g. "image/jpeg".
	MIMEType string
	// Size is the file size in bytes as reported by the provider.
	Size int64
	// FolderPath is the ordered sequence of folder names from the album
	// root down to the folder containing this image. Empty for images at
	// the album root.
	FolderPath []string
}

// RelativePath returns the record's path relative to the album root,
// using forward slashes regardless of platform.
func (r ImageRecord) RelativePath() string {
	if len(r.FolderPath) == 0 {
		return r.Name
	}
	return path.Join(append(append([]string{}, r.FolderPath...), r.Name)...)
}
