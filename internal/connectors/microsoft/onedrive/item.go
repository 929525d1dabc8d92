package onedrive

import (
	"strings"

	"github.com/halcyon-labs/drivealbum-cli/internal/core/domain"
)

// DriveItem represents a OneDrive file or folder from the Graph API.
type DriveItem struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Size        int64            `json:"size"`
	WebURL      string           `json:"webUrl"`
	File        *FileInfo        `json:"file,omitempty"`
	Folder      *FolderInfo      `json:"folder,omitempty"`
	Image       *ImageInfo       `json:"image,omitempty"`
	Parent      *ParentReference `json:"parentReference,omitempty"`
	DownloadURL string           `json:"@microsoft.graph.downloadUrl,omitempty"`
}

// FileInfo contains file-specific metadata.
type FileInfo struct {
	MIMEType string `json:"mimeType"`
}

// FolderInfo contains folder-specific metadata.
type FolderInfo struct {
	ChildCount int `json:"childCount"`
}

// ImageInfo is the image facet Graph attaches to photo items.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ParentReference contains parent folder information.
type ParentReference struct {
	DriveID string `json:"driveId"`
	ID      string `json:"id"`
	Path    string `json:"path"`
}

// IsFolder returns true if the item is a folder.
func (d *DriveItem) IsFolder() bool {
	return d.Folder != nil
}

// IsImage returns true if the item is an image: it either carries the image
// facet or a MIME type beginning with "image/".
func (d *DriveItem) IsImage() bool {
	if d.Image != nil {
		return true
	}
	return strings.HasPrefix(d.GetMIMEType(), "image/")
}

// HasDownloadURL reports whether the provider supplied a ready download
// link. Files that are still processing come back without one.
func (d *DriveItem) HasDownloadURL() bool {
	return d.DownloadURL != ""
}

// GetMIMEType returns the file's MIME type, or an empty string for folders
// and items without a file facet.
func (d *DriveItem) GetMIMEType() string {
	if d.File != nil {
		return d.File.MIMEType
	}
	return ""
}

// ToImageRecord converts the item into a domain record. folderPath is the
// path of folder names from the album root to the item's parent; it is
// copied, never aliased.
func (d *DriveItem) ToImageRecord(folderPath []string) domain.ImageRecord {
	mimeType := d.GetMIMEType()
	if mimeType == "" {
		// Graph occasionally omits the file facet on photo items.
		mimeType = "image/jpeg"
	}
	return domain.ImageRecord{
		Name:        d.Name,
		DownloadURL: d.DownloadURL,
		MIMEType:    mimeType,
		Size:        d.Size,
		FolderPath:  append([]string{}, folderPath...),
	}
}
