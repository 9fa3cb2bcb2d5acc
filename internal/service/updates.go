package service

import "strings"

// updates collects column values for a partial update; nil fields are skipped
type updates map[string]interface{}

func setField[V any](u updates, column string, value *V) {
	if value != nil {
		u[column] = *value
	}
}

func (u updates) set(column string, value *string) {
	setField(u, column, value)
}

func (u updates) trimmed(column string, value *string) {
	if value != nil {
		u[column] = strings.TrimSpace(*value)
	}
}
