package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// IDList is a list of positive ids. It unmarshals from a JSON array of
// integers or from a comma-separated string such as "1,2".
type IDList []int64

// UnmarshalJSON implements json.Unmarshaler.
func (l *IDList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		ids := IDList{}
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", part)
			}
			ids = append(ids, id)
		}
		*l = ids
		return nil
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	if ids == nil {
		ids = []int64{}
	}
	*l = ids
	return nil
}
