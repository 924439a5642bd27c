package depgraph

import "encoding/json"

// JSON renders snap as indented JSON for the `zls graph --format=json`
// debug output. Plain encoding/json is used deliberately: this is a
// direct struct marshal with no schema negotiation or streaming need, so
// no third-party encoder in the pack would do anything but wrap the same
// call.
func JSON(snap Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}
