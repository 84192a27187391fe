package ports

// Logger — абстракция логирования приложения.
// msg — строка формата, args — ее аргументы.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// With возвращает логгер с дополнительными полями (пары ключ-значение)
	With(keyvals ...interface{}) Logger

	// Sync сбрасывает буферизованные записи
	Sync() error
}
