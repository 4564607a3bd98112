package database

// MongoDB operators used across repositories (avoids duplicated literals)
const (
	BSONSet     = "$set"
	BSONInc     = "$inc"
	BSONMatch   = "$match"
	BSONGroup   = "$group"
	BSONSum     = "$sum"
	BSONRegex   = "$regex"
	BSONOptions = "$options"
	BSONOr      = "$or"
)
