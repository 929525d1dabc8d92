// Package onedrive resolves shared OneDrive albums and enumerates their
// image contents via the Microsoft Graph API.
//
// The pipeline has three stages:
//   - EncodeShareURL turns a sharing URL into the opaque "u!" share
//     reference the Shares API expects.
//   - Client.ResolveAlbum looks the reference up and yields the album's
//     drive/item identifiers and display name.
//   - Client.EnumerateImages walks the album's children (paginated,
//     optionally recursive) and yields the downloadable image records.
//
// Enumeration is strictly sequential and holds no state between calls; a
// failed page fetch at any depth aborts the whole walk rather than
// returning a silently truncated album.
package onedrive
