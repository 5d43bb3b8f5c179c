// Package models holds structs for modelling data, e.g. Channel data, Video data, etc.
package models

import "github.com/mralexsaavedra/jellytube/internal/parsing"

// Channel identifies one channel being mirrored. Constructed once per sync
// run and treated as immutable afterwards.
type Channel struct {
	ID   string
	Name string
	URL  string
}

// SanitizedName returns the channel name with filesystem-illegal characters
// removed. May be empty when the name consists solely of illegal characters.
func (c Channel) SanitizedName() string {
	return parsing.Sanitize(c.Name)
}

// DirName returns the channel's library directory name. Falls back to the
// channel ID when sanitizing leaves nothing, so the tree never roots at the
// output directory itself.
func (c Channel) DirName() string {
	if name := c.SanitizedName(); name != "" {
		return name
	}
	return c.ID
}

// ChannelInfo is the identity record resolved from the metadata source.
type ChannelInfo struct {
	ID           string
	Name         string
	ThumbnailURL string
}
