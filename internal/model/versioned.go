package model

// Versioned is implemented by rows guarded by optimistic concurrency
type Versioned interface {
	GetRowVersion() string
}

// VersionColumn is the column holding the row version token
const VersionColumn = "row_version"
