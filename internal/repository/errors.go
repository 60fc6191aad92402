package repository

import "errors"

// 输入类错误（调用方可修正后重试，HTTP 层映射为 400）
var (
	// ErrNoFields 空的部分更新被拒绝，不做静默接受
	ErrNoFields = errors.New("no fields to update")

	// ErrMissingField 插入时必填字段缺失，用 %w 包装具体字段名
	ErrMissingField = errors.New("missing required field")
)
