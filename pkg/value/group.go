package value

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-informal/pkg/model"
)

// GroupValue returns the value of the first checked member of a radio
// group, or Absent when none is checked.
func GroupValue(members []*html.Node) any {
	for _, member := range members {
		if v := GetAs(member, model.CategoryRadio); !model.IsAbsent(v) {
			return v
		}
	}
	return model.Absent
}
