package repository

import "encoding/json"

// JSONB 列的序列化/反序列化在 repository 边界完成，
// 领域模型只见强类型（[]string / map 等）。

func marshalJSON(v any) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func unmarshalStringList(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func unmarshalStringMap(raw []byte) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
