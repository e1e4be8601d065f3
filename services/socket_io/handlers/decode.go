package handlers

import "encoding/json"

// decodeArg converts a socket.io event argument (a decoded JSON value) into a
// typed payload.
func decodeArg(arg interface{}, out interface{}) error {
	raw, err := json.Marshal(arg)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
