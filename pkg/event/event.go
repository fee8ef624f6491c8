// Package event parses ILS event objects out of unpacked payload values.
// Services report both success and failure conditions as event-shaped
// objects; textcode is the only required key.
package event

import "fmt"

// Event is one parsed ILS event.
type Event struct {
	Code       int64
	Textcode   string
	Payload    any
	Desc       string
	Debug      string
	Note       string
	ServerTime string
	ILSPerm    string
	ILSPermLoc int64
	Success    bool
}

// Parse reads an event out of an unpacked value. Returns nil when the
// value is not an object or carries no textcode.
func Parse(value any) *Event {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	textcode, ok := obj["textcode"].(string)
	if !ok || textcode == "" {
		return nil
	}

	evt := &Event{
		Code:       -1,
		Textcode:   textcode,
		Payload:    obj["payload"],
		ILSPermLoc: -1,
		Success:    textcode == "SUCCESS",
	}

	if code, ok := asInt(obj["ilsevent"]); ok {
		evt.Code = code
	}
	if permloc, ok := asInt(obj["ilspermloc"]); ok {
		evt.ILSPermLoc = permloc
	}

	evt.Desc, _ = obj["desc"].(string)
	evt.Debug, _ = obj["debug"].(string)
	evt.Note, _ = obj["note"].(string)
	evt.ServerTime, _ = obj["servertime"].(string)
	evt.ILSPerm, _ = obj["ilsperm"].(string)

	return evt
}

// asInt accepts the number shapes an unpacked value can hold.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// String renders the event the way shell tools print it.
func (e *Event) String() string {
	s := fmt.Sprintf("Event: %d:%s", e.Code, e.Textcode)
	if e.Desc != "" {
		s += " -> " + e.Desc
	}
	if e.Note != "" {
		s += "\n" + e.Note
	}
	return s
}
