package config

import "reflect"

// diffEvent lists the top-level Root fields that differ, named by their
// config tag.
func diffEvent(old, new Root) Event {
	var changed []string
	ov, nv := reflect.ValueOf(old), reflect.ValueOf(new)
	t := ov.Type()
	for i := 0; i < t.NumField(); i++ {
		if reflect.DeepEqual(ov.Field(i).Interface(), nv.Field(i).Interface()) {
			continue
		}
		key := t.Field(i).Tag.Get(tagName)
		if key == "" {
			key = t.Field(i).Name
		}
		changed = append(changed, key)
	}
	return Event{ChangedKeys: changed, Old: old, New: new}
}
