package storage

import "encoding/json"

// mergePatch merges an untyped partial body onto dst, which must be a
// pointer to the stored record. Fields absent from the partial keep their
// current values; explicit nulls clear pointer fields.
func mergePatch(dst any, partial Partial) error {
	raw, err := json.Marshal(partial)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// patchBool reads a bool field out of a partial, reporting whether the key
// was present with a boolean value.
func patchBool(partial Partial, key string) (bool, bool) {
	v, ok := partial[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}
