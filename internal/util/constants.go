package util

const (
	// NotAnswered 未作答题目在判分明细中的占位
	NotAnswered = "Not answered"
	// TechnologyAll 结果列表中关闭技术过滤的取值（不区分大小写）
	TechnologyAll = "all"
)
