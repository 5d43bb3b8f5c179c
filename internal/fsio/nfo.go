package fsio

import (
	"fmt"
	"strings"

	"github.com/mralexsaavedra/jellytube/internal/models"
	"github.com/mralexsaavedra/jellytube/internal/parsing"
)

// xmlReplacer escapes text content for the sidecar. A single-pass replacer
// never rescans its own output, so ampersands cannot double-escape.
var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

func escapeXML(unsafe string) string {
	return xmlReplacer.Replace(unsafe)
}

// renderNfo produces the episode sidecar consumed by the media server. The
// exact element set and formatting are a compatibility contract.
func renderNfo(video models.Video, channel models.Channel) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes" ?>
<episodedetails>
  <title>%s</title>
  <showtitle>%s</showtitle>
  <plot>%s</plot>
  <season>%s</season>
  <aired>%s</aired>
  <uniqueid type="youtube">%s</uniqueid>
  <studio>%s</studio>
</episodedetails>`,
		escapeXML(video.Title),
		escapeXML(channel.Name),
		escapeXML(video.Description),
		video.SeasonYear(),
		parsing.HyphenateDate(video.UploadDate),
		video.ID,
		escapeXML(channel.Name))
}
