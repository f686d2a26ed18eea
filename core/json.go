package core

import "encoding/json"

// OverlayJSON merges the top-level keys of updated over existing and returns
// the combined document. Keys present only in existing survive, so a writer
// that knows about fewer fields never truncates a document written by a
// newer one. An empty or unparseable existing document is replaced outright.
func OverlayJSON(existing, updated []byte) ([]byte, error) {
	if len(existing) == 0 {
		return updated, nil
	}
	var base map[string]json.RawMessage
	if err := json.Unmarshal(existing, &base); err != nil {
		return updated, nil
	}
	var over map[string]json.RawMessage
	if err := json.Unmarshal(updated, &over); err != nil {
		return nil, err
	}
	for k, v := range over {
		base[k] = v
	}
	return json.Marshal(base)
}
