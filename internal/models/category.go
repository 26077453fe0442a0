// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a flat taxonomy entry. Articles reference categories by name
// only; there is no enforced link, so a category may exist with zero
// articles and duplicate names are not rejected. Name is stored exactly as
// submitted, with no trimming or normalization.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
