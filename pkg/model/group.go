package model

// MergeGroup folds the descriptors of controls sharing a name into one
// field. The first member supplies the category and validator list; the
// group is required when any member is. Options collect every member's own
// value so group-aware adapters can resolve the checked member.
func MergeGroup(members []Field) Field {
	if len(members) == 0 {
		return Field{}
	}
	merged := members[0]
	merged.Messages = cloneMessages(merged.Messages)
	merged.Options = nil
	for _, member := range members {
		if member.Required {
			merged.Required = true
		}
		if merged.Validators == nil && member.Validators != nil {
			merged.Validators = append([]string{}, member.Validators...)
		}
		if len(merged.Filters) == 0 && len(member.Filters) > 0 {
			merged.Filters = append([]string(nil), member.Filters...)
		}
		for name, msg := range member.Messages {
			if merged.Messages == nil {
				merged.Messages = make(map[string]string)
			}
			if _, exists := merged.Messages[name]; !exists {
				merged.Messages[name] = msg
			}
		}
		merged.Options = append(merged.Options, Option{Value: member.OwnValue()})
	}
	return merged
}

func cloneMessages(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
