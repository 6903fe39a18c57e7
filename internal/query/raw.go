// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import (
	"encoding/json"
	"fmt"
)

// Raw is a pre-serialized native query, used when the query body comes from
// outside the typed model (a file, stdin). The bytes must already be a valid
// JSON object carrying its own queryType.
type Raw []byte

func (Raw) queryType() string { return "raw" }

// MarshalJSON emits the stored bytes unchanged.
func (r Raw) MarshalJSON() ([]byte, error) {
	if !json.Valid(r) {
		return nil, fmt.Errorf("raw query is not valid JSON")
	}
	return r, nil
}
