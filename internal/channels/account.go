package channels

// Account -- одно сконфигурированное подключение к каналу.
// Identifiers заполняются после успешных операций синхронизации
// и при снятии идентификаторов (identifier setup); остальные поля
// приходят из конфигурации и здесь не меняются.
type Account struct {
	ID          int
	Name        string
	Channel     Channel
	Credentials map[string]string
	Settings    map[string]string
	Identifiers map[string]string
	Active      bool
}

// Credential возвращает значение учётных данных по ключу.
func (a *Account) Credential(key string) string {
	if a.Credentials == nil {
		return ""
	}
	return a.Credentials[key]
}

// Setting возвращает значение настройки по ключу.
func (a *Account) Setting(key string) string {
	if a.Settings == nil {
		return ""
	}
	return a.Settings[key]
}

// Identifier возвращает сохранённый маркетплейс-идентификатор по ключу.
func (a *Account) Identifier(key string) string {
	if a.Identifiers == nil {
		return ""
	}
	return a.Identifiers[key]
}

// CloneIdentifiers возвращает копию карты идентификаторов. Операции читают
// идентификаторы в начале и записывают новую карту целиком в конце --
// частичных записей по ходу вызова нет.
func (a *Account) CloneIdentifiers() map[string]string {
	cloned := make(map[string]string, len(a.Identifiers))
	for k, v := range a.Identifiers {
		cloned[k] = v
	}
	return cloned
}
