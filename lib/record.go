package lib

import "encoding/json"

// Record is a single row or document read from a source.
type Record struct {
	source  string
	key     map[string]any
	payload map[string]any
}

func NewRecord(source string, key map[string]any, payload map[string]any) Record {
	return Record{
		source:  source,
		key:     key,
		payload: payload,
	}
}

// Source is the name of the table or collection the record was read from.
func (r Record) Source() string {
	return r.source
}

func (r Record) Key() map[string]any {
	return r.key
}

func (r Record) Payload() map[string]any {
	return r.payload
}

// KeyFor builds a record key out of the given columns of payload. Columns missing from the payload are skipped.
func KeyFor(payload map[string]any, columns []string) map[string]any {
	key := make(map[string]any, len(columns))
	for _, column := range columns {
		if value, ok := payload[column]; ok {
			key[column] = value
		}
	}
	return key
}

type recordJSON struct {
	Source  string         `json:"source"`
	Key     map[string]any `json:"key,omitempty"`
	Payload map[string]any `json:"payload"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{Source: r.source, Key: r.key, Payload: r.payload})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var rec recordJSON
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	*r = NewRecord(rec.Source, rec.Key, rec.Payload)
	return nil
}
