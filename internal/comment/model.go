package comment

import "time"

// Comment is a post-rental review left by a former booker of an item.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}
