package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseID reads a numeric path parameter. Anything unparsable becomes 0,
// which never names a stored row, so lookups fall through to not found.
func parseID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil {
		return 0
	}
	return uint(id)
}

// flexID accepts a JSON number or a numeric string.
type flexID uint

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	*f = flexID(id)
	return nil
}

// idList accepts a JSON array mixing numbers and strings. Entries are kept
// as text; the services layer decides which of them name real items.
type idList []string

func (l *idList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("menu_ids must be an array: %w", err)
	}
	out := make(idList, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '"' {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return err
			}
			out = append(out, s)
			continue
		}
		out = append(out, string(item))
	}
	*l = out
	return nil
}
