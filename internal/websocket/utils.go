// internal/websocket/utils.go
package websocket

import "encoding/json"

// mapToStruct converts a decoded message payload into target.
func mapToStruct(data interface{}, target interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, target)
}

// MapToStruct is mapToStruct for handlers outside this package.
func MapToStruct(data interface{}, target interface{}) error {
	return mapToStruct(data, target)
}
