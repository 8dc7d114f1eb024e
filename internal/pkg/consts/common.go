package consts

// 资讯类型
const (
	NewsKindArticle  int8 = 1
	NewsKindSelfTest int8 = 2
)

// 列表排序方式
const (
	OrderHot = 1
	OrderNew = 2
)

// ContextTotal 分类参数为 0 时表示全部分类
const ContextTotal = 0

// PageSize 列表页固定分页大小
const PageSize = 15
