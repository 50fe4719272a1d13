package event

import "encoding/json"

// Event is one record emitted by the realtime API. Payloads are open-ended:
// beyond "type" and "event_id" the schema varies per event, so everything is
// kept as a raw map and read through typed accessors that degrade to zero
// values when a field is missing or has the wrong shape.
type Event map[string]any

func Parse(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return e, nil
}

func (e Event) Type() string {
	return e.Str("type")
}

func (e Event) EventID() string {
	return e.Str("event_id")
}

// Str walks the given key path and returns the string at the end,
// or "" if any step is missing or not the expected shape.
func (e Event) Str(path ...string) string {
	v := e.lookup(path)
	s, _ := v.(string)
	return s
}

// Num walks the given key path and returns the number at the end as a
// float64, or 0 if absent. JSON numbers unmarshal as float64.
func (e Event) Num(path ...string) float64 {
	v := e.lookup(path)
	n, _ := v.(float64)
	return n
}

// Int is Num truncated to int.
func (e Event) Int(path ...string) int {
	return int(e.Num(path...))
}

// Obj walks the given key path and returns the object at the end,
// or nil if absent.
func (e Event) Obj(path ...string) Event {
	v := e.lookup(path)
	m, _ := v.(map[string]any)
	return Event(m)
}

func (e Event) lookup(path []string) any {
	var cur any = map[string]any(e)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[key]
		if !ok {
			return nil
		}
	}
	return cur
}

// DeltaText returns the streamed text fragment carried by a delta event:
// the "delta" field when present, otherwise "transcript", otherwise "".
func (e Event) DeltaText() string {
	if s := e.Str("delta"); s != "" {
		return s
	}
	return e.Str("transcript")
}
