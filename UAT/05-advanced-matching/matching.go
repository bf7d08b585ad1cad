package matching

// Data is a complex struct where we might only care about matching some fields.
type Data struct {
	ID        int
	Payload   string
	Timestamp int64
}

// UseService calls process with a Data built around payload.
func UseService(process func(d Data) bool, payload string) bool {
	const (
		id        = 123
		timestamp = 1600000000
	)

	return process(Data{
		ID:        id,
		Payload:   payload,
		Timestamp: timestamp,
	})
}
