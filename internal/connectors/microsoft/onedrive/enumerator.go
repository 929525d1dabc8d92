package onedrive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/halcyon-labs/drivealbum-cli/internal/core/domain"
	"github.com/halcyon-labs/drivealbum-cli/internal/logger"
)

// EnumerateImages walks the album's children and returns the downloadable
// images in pre-order: images appear in provider order, and a subfolder's
// images form a contiguous block at the folder's position in its parent's
// child list. When recursive is false, folder children are skipped without
// issuing any listing request for them.
//
// Any page-fetch failure at any depth aborts the whole enumeration; a
// silently truncated album would be worse than an explicit error.
func (c *Client) EnumerateImages(
	ctx context.Context, handle *domain.AlbumHandle, recursive bool,
) ([]domain.ImageRecord, error) {
	return c.enumerateFolder(ctx, handle.DriveID, handle.ItemID, nil, recursive)
}

// EnumerateSharedImages lists the top-level images of a shared item through
// the Shares API itself. Shared albums on foreign drives sometimes deny the
// direct children listing that EnumerateImages uses; this path works with
// nothing but the share reference. Subfolders cannot be descended into here.
func (c *Client) EnumerateSharedImages(ctx context.Context, shareRef string) ([]domain.ImageRecord, error) {
	first := fmt.Sprintf("%s/shares/%s/driveItem/children?$top=%d",
		c.config.BaseURL, shareRef, c.config.PageSize)

	children, err := c.collectPages(ctx, first)
	if err != nil {
		return nil, fmt.Errorf("list shared children: %w", err)
	}

	records := make([]domain.ImageRecord, 0, len(children))
	for i := range children {
		child := &children[i]
		if !child.IsImage() {
			continue
		}
		if !child.HasDownloadURL() {
			logger.Debug("skipping %q: no download URL yet", child.Name)
			continue
		}
		records = append(records, child.ToImageRecord(nil))
	}
	return records, nil
}

// ListingError reports a children-listing failure together with the folder
// it happened on. Callers can tell a failure of the album root apart from
// one deeper in the walk; errors.Is still matches the wrapped domain error.
type ListingError struct {
	ItemID string
	Err    error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("list children of %s: %v", e.ItemID, e.Err)
}

func (e *ListingError) Unwrap() error {
	return e.Err
}

// enumerateFolder lists one folder and recurses depth-first into subfolders.
func (c *Client) enumerateFolder(
	ctx context.Context, driveID, itemID string, folderPath []string, recursive bool,
) ([]domain.ImageRecord, error) {
	first := fmt.Sprintf("%s/drives/%s/items/%s/children?$top=%d",
		c.config.BaseURL, url.PathEscape(driveID), url.PathEscape(itemID), c.config.PageSize)

	// The full child set is assembled before classification so pagination
	// state never straddles a recursive call.
	children, err := c.collectPages(ctx, first)
	if err != nil {
		return nil, &ListingError{ItemID: itemID, Err: err}
	}

	records := make([]domain.ImageRecord, 0, len(children))
	for i := range children {
		child := &children[i]
		switch {
		case child.IsFolder():
			if !recursive {
				continue
			}
			childPath := append(append([]string{}, folderPath...), child.Name)
			sub, err := c.enumerateFolder(ctx, driveID, child.ID, childPath, recursive)
			if err != nil {
				return nil, err
			}
			records = append(records, sub...)
		case child.IsImage():
			if !child.HasDownloadURL() {
				logger.Debug("skipping %q: no download URL yet", child.Name)
				continue
			}
			records = append(records, child.ToImageRecord(folderPath))
		default:
			// Videos, documents and anything else are not ours to fetch.
		}
	}

	return records, nil
}

// childrenPage is one page of a children listing response.
type childrenPage struct {
	Value    []DriveItem `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}

// collectPages follows @odata.nextLink until the continuation field is
// absent, merging every page's items in order. An empty page is the end of
// the listing, not an error.
func (c *Client) collectPages(ctx context.Context, firstURL string) ([]DriveItem, error) {
	var items []DriveItem

	currentURL := firstURL
	for currentURL != "" {
		page, err := c.fetchPage(ctx, currentURL)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Value...)
		currentURL = page.NextLink
	}

	return items, nil
}

// fetchPage fetches and decodes a single listing page.
func (c *Client) fetchPage(ctx context.Context, pageURL string) (*childrenPage, error) {
	resp, err := c.doRequest(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, wrapStatus(resp.StatusCode)
	}

	var page childrenPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: decode children page: %v", domain.ErrMalformedResponse, err)
	}

	return &page, nil
}
