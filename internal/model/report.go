package model

// Report is a free-text user report, optionally linked to an item.
type Report struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	ItemID    *int64 `json:"itemId,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// ResolvedReport is a report decorated with the referenced item's display
// fields for the admin listing. The reference is weak: the item may have
// been deleted since the report was filed.
type ResolvedReport struct {
	Report
	ItemTitle string `json:"itemTitle,omitempty"`
	ItemImage string `json:"itemImage,omitempty"`
}
