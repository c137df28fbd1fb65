package research

import "encoding/json"

// DecodeProfile reads a profile from loosely-shaped JSON. Anything that is not
// an object, and any field that is not a string, is treated as absent.
func DecodeProfile(raw json.RawMessage) EntityProfile {
	fields := stringFields(raw)
	return EntityProfile{
		Name:        fields["name"],
		Summary:     fields["summary"],
		Description: fields["description"],
		Source:      fields["source"],
	}
}

// DecodeArticles reads a news batch from loosely-shaped JSON. A non-array
// yields an empty batch; non-object items become empty records so the batch
// keeps its length and order.
func DecodeArticles(raw json.RawMessage) []ArticleRecord {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []ArticleRecord{}
	}
	out := make([]ArticleRecord, 0, len(items))
	for _, item := range items {
		fields := stringFields(item)
		out = append(out, ArticleRecord{
			Title:       fields["title"],
			Description: fields["description"],
			URL:         fields["url"],
		})
	}
	return out
}

func stringFields(raw json.RawMessage) map[string]string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
		}
	}
	return out
}
