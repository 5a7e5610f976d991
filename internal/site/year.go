package site

import (
	"strconv"
	"time"
)

// StampYear writes the four-digit year of now into node.
func StampYear(node TextNode, now time.Time) {
	if node == nil {
		return
	}
	node.SetText(strconv.Itoa(now.Year()))
}
