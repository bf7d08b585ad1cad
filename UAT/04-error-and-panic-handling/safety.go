package safety

import "fmt"

// Fetch loads the record for id, retrying once when the first attempt fails.
func Fetch(load func(id int) (string, error), id int) (string, error) {
	record, err := load(id)
	if err == nil {
		return record, nil
	}

	record, err = load(id)
	if err != nil {
		return "", fmt.Errorf("fetch %d: %w", id, err)
	}

	return record, nil
}

// SafeRun runs work and converts a panic into an error.
func SafeRun(work func(step int) (int, error)) (result int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered: %v", r)
		}
	}()

	return work(1)
}
