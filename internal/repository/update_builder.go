package repository

import (
	"encoding/json"
	"fmt"
	"strings"
)

// updateBuilder 稀疏 UPDATE 语句构建器
// 只为调用方显式提供的字段生成赋值子句，缺席字段保持原值。
// 各 Postgres repository 共用，代替逐实体手写 COALESCE 拼接。
type updateBuilder struct {
	sets []string
	args []any
	next int
}

// newUpdateBuilder firstArg 是第一个赋值参数的占位符序号
// （WHERE 条件参数通常占用 $1..$n，赋值从其后开始）
func newUpdateBuilder(firstArg int) *updateBuilder {
	return &updateBuilder{next: firstArg}
}

// Set 追加一个普通字段赋值
func (b *updateBuilder) Set(column string, value any) {
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, b.next))
	b.args = append(b.args, value)
	b.next++
}

// SetJSON 追加一个 JSONB 字段赋值（值先序列化）
func (b *updateBuilder) SetJSON(column string, value any) {
	data, _ := json.Marshal(value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d::jsonb", column, b.next))
	b.args = append(b.args, string(data))
	b.next++
}

func (b *updateBuilder) Empty() bool { return len(b.sets) == 0 }

// Assignments 返回 "col = $2, col2 = $3" 形式的子句
func (b *updateBuilder) Assignments() string { return strings.Join(b.sets, ", ") }

func (b *updateBuilder) Args() []any { return b.args }
