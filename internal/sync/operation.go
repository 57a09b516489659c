package sync

// OperationKind -- вид staged-операции. Builder накапливает явный
// тегированный вариант, а push интерпретирует его; неоднозначного
// "неявного" состояния нет.
type OperationKind string

const (
	OpCreate   OperationKind = "create"
	OpUpdate   OperationKind = "update"
	OpRecreate OperationKind = "recreate"
	OpPull     OperationKind = "pull"
	OpLink     OperationKind = "link"
)

// UpdateFields сужает частичное обновление до выбранных полей.
// Пустая структура означает полное обновление.
type UpdateFields struct {
	Title   bool
	Images  bool
	Pricing bool
}

// Any сообщает, было ли обновление сужено хотя бы до одного поля.
func (f UpdateFields) Any() bool {
	return f.Title || f.Images || f.Pricing
}

// Operation -- полностью описанная staged-операция.
type Operation struct {
	Kind      OperationKind
	ProductID int
	Fields    UpdateFields
	Filters   map[string]string
}
