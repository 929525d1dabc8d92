package onedrive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/halcyon-labs/drivealbum-cli/internal/core/domain"
)

// DefaultAlbumName is used when the shares lookup omits a display name.
const DefaultAlbumName = "album"

// ResolveAlbum looks up a share reference via the Graph Shares API and
// returns the album's drive/item identifiers and display name. It issues
// exactly one request and never retries; transient failures surface as
// domain.ErrTransient for the caller to handle.
func (c *Client) ResolveAlbum(ctx context.Context, shareRef string) (*domain.AlbumHandle, error) {
	url := fmt.Sprintf("%s/shares/%s/driveItem", c.config.BaseURL, shareRef)

	resp, err := c.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("shares lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shares lookup: %w", wrapStatus(resp.StatusCode))
	}

	var item DriveItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("%w: decode shared item: %v", domain.ErrMalformedResponse, err)
	}

	if item.ID == "" || item.Parent == nil || item.Parent.DriveID == "" {
		return nil, fmt.Errorf("%w: shared item missing drive or item id", domain.ErrMalformedResponse)
	}

	handle := &domain.AlbumHandle{
		DriveID: item.Parent.DriveID,
		ItemID:  item.ID,
		Name:    item.Name,
	}
	if handle.Name == "" {
		handle.Name = DefaultAlbumName
	}
	if item.Folder != nil {
		handle.ChildCount = item.Folder.ChildCount
	}

	return handle, nil
}
